package model

import (
	"testing"

	"github.com/MkFair/rbfx/pkg/math"
)

func quadVertices() []Vertex {
	verts := []Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 1, Y: 1, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 1, Z: 0}},
	}
	for i := range verts {
		verts[i].Normal = math.Vec3{X: 0, Y: 0, Z: 1}
		verts[i].UVs[0] = verts[i].Position.XY()
	}
	return verts
}

func TestBuilderImportRoundTrip(t *testing.T) {
	m := NewBuilder("models/quad").
		AddGeometry(quadVertices(), []uint32{0, 1, 2, 0, 2, 3}).
		Build()

	if m.Name() != "models/quad" {
		t.Errorf("Name() = %q", m.Name())
	}

	var view View
	if err := view.Import(m); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	geoms := view.Geometries()
	if len(geoms) != 1 || len(geoms[0].LODs) != 1 {
		t.Fatalf("expected 1 geometry with 1 lod, got %d", len(geoms))
	}

	lod := geoms[0].LODs[0]
	if len(lod.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(lod.Vertices))
	}
	if len(lod.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(lod.Indices))
	}

	want := quadVertices()
	for i, v := range lod.Vertices {
		if v.Position != want[i].Position {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, want[i].Position)
		}
		if v.Normal != want[i].Normal {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, want[i].Normal)
		}
		if v.UVs[0] != want[i].UVs[0] {
			t.Errorf("vertex %d uv0 = %v, want %v", i, v.UVs[0], want[i].UVs[0])
		}
	}
}

func TestImportRejectsMissingPositions(t *testing.T) {
	m := New("models/bad", []Geometry{{
		LODs: []LOD{{
			ElementMask: ElementNormal,
			VertexData:  []float32{0, 0, 1},
			Indices:     nil,
		}},
	}})

	var view View
	if err := view.Import(m); err == nil {
		t.Error("expected import error for format without positions")
	}
}

func TestImportRejectsMalformedStream(t *testing.T) {
	m := New("models/bad", []Geometry{{
		LODs: []LOD{{
			ElementMask: ElementPosition,
			VertexData:  []float32{0, 0}, // not a multiple of the stride
			Indices:     nil,
		}},
	}})

	var view View
	if err := view.Import(m); err == nil {
		t.Error("expected import error for truncated vertex data")
	}
}

func TestImportRejectsOutOfRangeIndex(t *testing.T) {
	m := New("models/bad", []Geometry{{
		LODs: []LOD{{
			ElementMask: ElementPosition,
			VertexData:  []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Indices:     []uint32{0, 1, 7},
		}},
	}})

	var view View
	if err := view.Import(m); err == nil {
		t.Error("expected import error for out-of-range index")
	}
}

func TestImportRejectsNonTriangleIndices(t *testing.T) {
	m := New("models/bad", []Geometry{{
		LODs: []LOD{{
			ElementMask: ElementPosition,
			VertexData:  []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Indices:     []uint32{0, 1},
		}},
	}})

	var view View
	if err := view.Import(m); err == nil {
		t.Error("expected import error for non-triangle index list")
	}
}

func TestCalculateBoundingBox(t *testing.T) {
	m := NewBuilder("models/quad").
		AddGeometry(quadVertices(), []uint32{0, 1, 2, 0, 2, 3}).
		Build()

	var view View
	if err := view.Import(m); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	box := view.CalculateBoundingBox()
	if box.Min != (math.Vec3{X: 0, Y: 0, Z: 0}) || box.Max != (math.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("bounding box = %v..%v", box.Min, box.Max)
	}
}

func TestVertexStride(t *testing.T) {
	tests := []struct {
		mask uint32
		want int
	}{
		{ElementPosition, 3},
		{ElementPosition | ElementNormal, 6},
		{ElementPosition | ElementNormal | ElementUV0, 8},
		{ElementPosition | ElementNormal | ElementUV0 | ElementUV1, 10},
	}
	for _, tt := range tests {
		if got := VertexStride(tt.mask); got != tt.want {
			t.Errorf("VertexStride(%b) = %d, want %d", tt.mask, got, tt.want)
		}
	}
}
