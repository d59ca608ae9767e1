package bake

import (
	"testing"

	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/resource"
	"github.com/MkFair/rbfx/pkg/math"
)

const testManifest = `
models:
  - name: models/floor
    primitive: quad
    size: [4, 4]
  - name: models/crate
    primitive: box
    size: [1, 1, 1]
charts:
  - width: 64
    height: 64
    elements:
      - model: models/floor
        region: { scale: [0.5, 0.5] }
      - model: models/crate
        position: [1, 0, 0]
        scale: [2, 2, 2]
        region: { scale: [0.5, 0.5], offset: [0.5, 0.5] }
`

func TestParseManifest(t *testing.T) {
	res := resource.NewCache()
	charts, err := parseManifest([]byte(testManifest), res)
	if err != nil {
		t.Fatalf("parseManifest() failed: %v", err)
	}

	if len(charts) != 1 {
		t.Fatalf("got %d charts", len(charts))
	}
	chart := charts[0]
	if chart.Width != 64 || chart.Height != 64 {
		t.Errorf("chart size = %dx%d", chart.Width, chart.Height)
	}
	if len(chart.Elements) != 2 {
		t.Fatalf("got %d elements", len(chart.Elements))
	}

	if _, err := res.Model("models/floor"); err != nil {
		t.Errorf("floor model not registered: %v", err)
	}

	crate := chart.Elements[1]
	if got := crate.StaticModel.Node().Position(); got != (math.Vec3{X: 1}) {
		t.Errorf("crate position = %v", got)
	}
	if got := crate.StaticModel.Node().Scale(); got != (math.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("crate scale = %v", got)
	}
	if got := crate.Region.Offset; got != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("crate region offset = %v", got)
	}

	// Region defaults to the full chart when omitted except scale.
	floor := chart.Elements[0]
	if got := floor.Region.Scale; got != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("floor region scale = %v", got)
	}
	if got := floor.Region.Offset; got != (math.Vec2{}) {
		t.Errorf("floor region offset = %v", got)
	}
}

func TestParseManifestUnknownModel(t *testing.T) {
	data := []byte(`
charts:
  - width: 8
    height: 8
    elements:
      - model: models/missing
`)
	if _, err := parseManifest(data, resource.NewCache()); err == nil {
		t.Error("expected error for unregistered model reference")
	}
}

func TestParseManifestInvalidChartSize(t *testing.T) {
	data := []byte("charts:\n  - width: 0\n    height: 8\n")
	if _, err := parseManifest(data, resource.NewCache()); err == nil {
		t.Error("expected error for zero-width chart")
	}
}

func TestBuildQuad(t *testing.T) {
	quad := buildQuad("models/quad", 4, 2)

	box := model.BoundingBox(quad)
	if box.Min != (math.Vec3{X: -2, Y: -1}) || box.Max != (math.Vec3{X: 2, Y: 1}) {
		t.Errorf("bounding box = %v..%v", box.Min, box.Max)
	}
}

func TestBuildBox(t *testing.T) {
	crate := buildBox("models/crate", math.Vec3{X: 2, Y: 4, Z: 6})

	box := model.BoundingBox(crate)
	if box.Min != (math.Vec3{X: -1, Y: -2, Z: -3}) || box.Max != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("bounding box = %v..%v", box.Min, box.Max)
	}

	// Lightmap UVs of all faces stay inside [0,1] and faces never share
	// UV cells.
	var view model.View
	if err := view.Import(crate); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	lod := view.Geometries()[0].LODs[0]
	if len(lod.Vertices) != 24 {
		t.Fatalf("got %d vertices, want 24", len(lod.Vertices))
	}
	for i, vertex := range lod.Vertices {
		uv := vertex.UVs[1]
		if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
			t.Errorf("vertex %d lightmap UV %v out of range", i, uv)
		}
	}
}

func TestBuildPrimitiveErrors(t *testing.T) {
	if _, err := buildPrimitive(modelDef{Name: "m", Primitive: "sphere"}); err == nil {
		t.Error("expected error for unknown primitive")
	}
	if _, err := buildPrimitive(modelDef{Name: "m", Primitive: "quad", Size: []float32{1}}); err == nil {
		t.Error("expected error for bad quad size")
	}
	if _, err := buildPrimitive(modelDef{Name: "m", Primitive: "box", Size: []float32{1, 1}}); err == nil {
		t.Error("expected error for bad box size")
	}
}
