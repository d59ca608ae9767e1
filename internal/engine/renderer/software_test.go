package renderer

import (
	"testing"

	"github.com/MkFair/rbfx/internal/engine/camera"
	"github.com/MkFair/rbfx/internal/engine/material"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/internal/engine/scene"
	"github.com/MkFair/rbfx/pkg/math"
)

func gbufferPath() *renderpath.RenderPath {
	return &renderpath.RenderPath{
		Name:       "gbuffer",
		Outputs:    []string{"position", "smoothposition", "facenormal", "smoothnormal"},
		ClearDepth: 1,
	}
}

// quadModel builds a unit quad in the XY plane at z=0, facing +Z, with
// lightmap UVs covering the full [0,1] range.
func quadModel(name string) *model.Model {
	normal := math.Vec3{Z: 1}
	vertex := func(x, y float32) model.Vertex {
		v := model.Vertex{
			Position: math.Vec3{X: x, Y: y},
			Normal:   normal,
		}
		v.UVs[LightmapUVChannel] = math.Vec2{X: x, Y: y}
		return v
	}
	vertices := []model.Vertex{vertex(0, 0), vertex(1, 0), vertex(1, 1), vertex(0, 1)}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return model.NewBuilder(name).AddGeometry(vertices, indices).Build()
}

func bakeMaterial(layer, geometryID float32) *material.Material {
	m := material.New("bake")
	m.SetVec4(ParamLMOffset, math.Vec4{1, 1, 0, 0})
	m.SetFloat(ParamLightmapLayer, layer)
	m.SetFloat(ParamLightmapGeometry, geometryID)
	return m
}

func TestSoftwareDeviceDrawsQuad(t *testing.T) {
	device := NewSoftwareDevice()
	defer device.Close()

	target, err := device.ScreenBuffer(4, 4)
	if err != nil {
		t.Fatalf("ScreenBuffer() failed: %v", err)
	}
	defer target.Release()

	batches := []Batch{{
		Model:     quadModel("models/quad"),
		Material:  bakeMaterial(0, 7),
		Transform: math.Identity(),
	}}
	if err := device.Draw(target, gbufferPath(), batches); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	positions, err := device.ReadOutput(target, "position", nil)
	if err != nil {
		t.Fatalf("ReadOutput() failed: %v", err)
	}
	if len(positions) != 16 {
		t.Fatalf("expected 16 texels, got %d", len(positions))
	}

	// Texel (1, 2) samples UV (0.375, 0.625); the quad maps UVs to world
	// positions directly.
	texel := positions[2*4+1]
	if !nearVec2(texel.XY(), math.Vec2{X: 0.375, Y: 0.625}) {
		t.Errorf("position = %v", texel)
	}
	if texel[3] != 7 {
		t.Errorf("geometry id = %v, want 7", texel[3])
	}

	normals, err := device.ReadOutput(target, "facenormal", nil)
	if err != nil {
		t.Fatalf("ReadOutput() failed: %v", err)
	}
	if !nearVec3(normals[2*4+1].XYZ(), math.Vec3{Z: 1}) {
		t.Errorf("face normal = %v", normals[2*4+1])
	}
}

func TestSoftwareDeviceDepthLayering(t *testing.T) {
	device := NewSoftwareDevice()
	defer device.Close()

	target, err := device.ScreenBuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer target.Release()

	quad := quadModel("models/quad")
	batches := []Batch{
		{Model: quad, Material: bakeMaterial(1, 1), Transform: math.Identity()},
		{Model: quad, Material: bakeMaterial(0.5, 2), Transform: math.Identity()},
	}
	if err := device.Draw(target, gbufferPath(), batches); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	positions, _ := device.ReadOutput(target, "position", nil)
	for i, texel := range positions {
		if texel[3] != 2 {
			t.Errorf("texel %d: geometry id = %v, want the lower layer to win", i, texel[3])
		}
	}
}

func TestSoftwareDeviceLMOffsetRestrictsRegion(t *testing.T) {
	device := NewSoftwareDevice()
	defer device.Close()

	target, err := device.ScreenBuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer target.Release()

	// Scale the quad's UVs into the lower-left quadrant of the target.
	m := bakeMaterial(0, 3)
	m.SetVec4(ParamLMOffset, math.Vec4{0.5, 0.5, 0, 0})

	batches := []Batch{{Model: quadModel("models/quad"), Material: m, Transform: math.Identity()}}
	if err := device.Draw(target, gbufferPath(), batches); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	positions, _ := device.ReadOutput(target, "position", nil)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x < 2 && y < 2
			covered := positions[y*4+x][3] != 0
			if covered != inside {
				t.Errorf("texel (%d, %d): covered = %v, want %v", x, y, covered, inside)
			}
		}
	}
}

func TestSoftwareDeviceEmptyScene(t *testing.T) {
	device := NewSoftwareDevice()
	defer device.Close()

	target, err := device.ScreenBuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer target.Release()

	if err := device.Draw(target, gbufferPath(), nil); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	for _, output := range gbufferPath().Outputs {
		texels, err := device.ReadOutput(target, output, nil)
		if err != nil {
			t.Fatalf("ReadOutput(%s) failed: %v", output, err)
		}
		for i, texel := range texels {
			if texel != (math.Vec4{}) {
				t.Errorf("%s texel %d = %v, want zero", output, i, texel)
			}
		}
	}
}

func TestViewCullsOutsideFrustum(t *testing.T) {
	device := NewSoftwareDevice()
	defer device.Close()

	s := scene.New()

	inside := s.CreateChild()
	sm := inside.CreateStaticModel()
	sm.SetMaterial(bakeMaterial(0, 1))
	sm.SetModel(quadModel("models/inside"))

	outside := s.CreateChild()
	outside.SetPosition(math.Vec3{X: 1000})
	sm = outside.CreateStaticModel()
	sm.SetMaterial(bakeMaterial(0, 2))
	sm.SetModel(quadModel("models/outside"))

	cam := camera.New()
	cam.SetOrthographic(true)
	cam.SetPosition(math.Vec3{X: 0.5, Y: 0.5, Z: -1})
	cam.SetDirection(math.Vec3{Z: 1})
	cam.SetOrthoSize(math.Vec2{X: 2, Y: 2})
	cam.SetNearClip(1)
	cam.SetFarClip(2)

	target, err := device.ScreenBuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer target.Release()

	view := NewView(device)
	view.Define(target, s, cam, gbufferPath())
	view.Update()

	if view.NumBatches() != 1 {
		t.Fatalf("NumBatches() = %d, want 1", view.NumBatches())
	}
	if err := view.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	positions, err := view.Output("position", nil)
	if err != nil {
		t.Fatalf("Output() failed: %v", err)
	}
	for i, texel := range positions {
		if texel[3] != 1 {
			t.Errorf("texel %d: geometry id = %v, want 1", i, texel[3])
		}
	}
}

func nearVec2(got, want math.Vec2) bool {
	return got.Sub(want).Length() < 1e-4
}

func nearVec3(got, want math.Vec3) bool {
	return got.Sub(want).Length() < 1e-4
}
