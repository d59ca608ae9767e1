package renderer

import (
	"fmt"
	stdmath "math"

	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/pkg/math"
)

// SoftwareDevice is a CPU rasterizer implementing Device. It produces the
// same geometry buffers as the OpenGL device and needs no window or GPU,
// which makes it the default for headless baking and for tests.
type SoftwareDevice struct {
	views map[*model.Model]*model.View
}

// NewSoftwareDevice creates a software rasterizer device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{views: make(map[*model.Model]*model.View)}
}

// BeginFrame implements Device. The software device never loses context.
func (d *SoftwareDevice) BeginFrame() bool { return true }

// EndFrame implements Device.
func (d *SoftwareDevice) EndFrame() {}

// Close implements Device.
func (d *SoftwareDevice) Close() {
	d.views = nil
}

// softwareTarget holds per-output float buffers and a depth buffer.
type softwareTarget struct {
	width   int
	height  int
	outputs map[string][]math.Vec4
	depth   []float32
}

func (t *softwareTarget) Width() int  { return t.width }
func (t *softwareTarget) Height() int { return t.height }
func (t *softwareTarget) Release()    { t.outputs = nil; t.depth = nil }

// ScreenBuffer implements Device.
func (d *SoftwareDevice) ScreenBuffer(width, height int) (Target, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	return &softwareTarget{
		width:   width,
		height:  height,
		outputs: make(map[string][]math.Vec4),
		depth:   make([]float32, width*height),
	}, nil
}

// ReadOutput implements Device.
func (d *SoftwareDevice) ReadOutput(target Target, output string, dst []math.Vec4) ([]math.Vec4, error) {
	t, ok := target.(*softwareTarget)
	if !ok {
		return nil, fmt.Errorf("target does not belong to the software device")
	}
	buffer, ok := t.outputs[output]
	if !ok {
		return nil, fmt.Errorf("output %q was not rendered", output)
	}
	return append(dst[:0], buffer...), nil
}

// Draw implements Device.
func (d *SoftwareDevice) Draw(target Target, path *renderpath.RenderPath, batches []Batch) error {
	t, ok := target.(*softwareTarget)
	if !ok {
		return fmt.Errorf("target does not belong to the software device")
	}

	t.clear(path)

	for _, batch := range batches {
		view, err := d.modelView(batch.Model)
		if err != nil {
			return fmt.Errorf("drawing %s: %w", batch.Model.Name(), err)
		}
		d.drawBatch(t, batch, view)
	}
	return nil
}

func (t *softwareTarget) clear(path *renderpath.RenderPath) {
	size := t.width * t.height
	for _, output := range path.Outputs {
		buffer := t.outputs[output]
		if len(buffer) != size {
			buffer = make([]math.Vec4, size)
			t.outputs[output] = buffer
		} else {
			clear(buffer)
		}
	}
	for i := range t.depth {
		t.depth[i] = path.ClearDepth
	}
}

// modelView returns the cached unpacked form of a model.
func (d *SoftwareDevice) modelView(m *model.Model) (*model.View, error) {
	if view, ok := d.views[m]; ok {
		return view, nil
	}
	view := &model.View{}
	if err := view.Import(m); err != nil {
		return nil, err
	}
	d.views[m] = view
	return view, nil
}

func (d *SoftwareDevice) drawBatch(t *softwareTarget, batch Batch, view *model.View) {
	lmOffset := batch.Material.Vec4(ParamLMOffset)
	depth := batch.Material.Float(ParamLightmapLayer)
	geometryID := batch.Material.Float(ParamLightmapGeometry)

	for _, geometry := range view.Geometries() {
		if len(geometry.LODs) == 0 {
			continue
		}
		// Only the most detailed LOD is baked.
		lod := geometry.LODs[0]
		for i := 0; i+2 < len(lod.Indices); i += 3 {
			v0 := lod.Vertices[lod.Indices[i]]
			v1 := lod.Vertices[lod.Indices[i+1]]
			v2 := lod.Vertices[lod.Indices[i+2]]
			t.rasterize(batch.Transform, lmOffset, depth, geometryID, v0, v1, v2)
		}
	}
}

// rasterize draws one triangle projected through its lightmap UVs.
func (t *softwareTarget) rasterize(transform math.Mat4, lmOffset math.Vec4, depth, geometryID float32, v0, v1, v2 model.Vertex) {
	uvToPixel := func(uv math.Vec2) math.Vec2 {
		scaled := uv.Mul(lmOffset.XY()).Add(lmOffset.ZW())
		return math.Vec2{X: scaled.X * float32(t.width), Y: scaled.Y * float32(t.height)}
	}
	p0 := uvToPixel(v0.UVs[LightmapUVChannel])
	p1 := uvToPixel(v1.UVs[LightmapUVChannel])
	p2 := uvToPixel(v2.UVs[LightmapUVChannel])

	area := p1.Sub(p0).Cross(p2.Sub(p0))
	if area == 0 {
		return
	}

	w0 := transform.TransformVec3(v0.Position)
	w1 := transform.TransformVec3(v1.Position)
	w2 := transform.TransformVec3(v2.Position)
	faceNormal := w1.Sub(w0).Cross(w2.Sub(w0)).Normalize()

	n0 := transform.TransformDirection(v0.Normal)
	n1 := transform.TransformDirection(v1.Normal)
	n2 := transform.TransformDirection(v2.Normal)

	minX := clampInt(int(stdmath.Floor(float64(math.MinF(p0.X, math.MinF(p1.X, p2.X))))), 0, t.width)
	maxX := clampInt(int(stdmath.Ceil(float64(math.MaxF(p0.X, math.MaxF(p1.X, p2.X))))), 0, t.width)
	minY := clampInt(int(stdmath.Floor(float64(math.MinF(p0.Y, math.MinF(p1.Y, p2.Y))))), 0, t.height)
	maxY := clampInt(int(stdmath.Ceil(float64(math.MaxF(p0.Y, math.MaxF(p1.Y, p2.Y))))), 0, t.height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			sample := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}

			// Barycentric weights. Both windings are drawn, so normalize
			// by the signed area instead of culling.
			b0 := p1.Sub(sample).Cross(p2.Sub(sample)) / area
			b1 := p2.Sub(sample).Cross(p0.Sub(sample)) / area
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			index := y*t.width + x
			if depth > t.depth[index] {
				continue
			}
			t.depth[index] = depth

			position := w0.Scale(b0).Add(w1.Scale(b1)).Add(w2.Scale(b2))
			normal := n0.Scale(b0).Add(n1.Scale(b1)).Add(n2.Scale(b2)).Normalize()

			t.write("position", index, math.Vec4{position.X, position.Y, position.Z, geometryID})
			t.write("smoothposition", index, math.Vec4{position.X, position.Y, position.Z, 1})
			t.write("facenormal", index, math.Vec4{faceNormal.X, faceNormal.Y, faceNormal.Z, 1})
			t.write("smoothnormal", index, math.Vec4{normal.X, normal.Y, normal.Z, 1})
		}
	}
}

func (t *softwareTarget) write(output string, index int, value math.Vec4) {
	if buffer, ok := t.outputs[output]; ok {
		buffer[index] = value
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
