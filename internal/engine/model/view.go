package model

import (
	"fmt"

	"github.com/MkFair/rbfx/pkg/math"
)

// LODView is the editable vertex/index form of one geometry LOD.
type LODView struct {
	Vertices []Vertex
	Indices  []uint32
}

// GeometryView is the editable form of one geometry.
type GeometryView struct {
	LODs []LODView
}

// View is an editable per-LOD vertex/index unpacking of a model, used by
// mesh preprocessing such as seam detection.
type View struct {
	geometries []GeometryView
}

// Import unpacks a model's interleaved vertex streams into the view.
// It fails on malformed streams or vertex formats without positions.
func (v *View) Import(m *Model) error {
	if m == nil {
		return fmt.Errorf("no model")
	}

	v.geometries = v.geometries[:0]
	for geometryIndex, geometry := range m.Geometries() {
		geometryView := GeometryView{}
		for lodIndex, lod := range geometry.LODs {
			lodView, err := importLOD(lod)
			if err != nil {
				return fmt.Errorf("geometry %d lod %d: %w", geometryIndex, lodIndex, err)
			}
			geometryView.LODs = append(geometryView.LODs, lodView)
		}
		v.geometries = append(v.geometries, geometryView)
	}
	return nil
}

func importLOD(lod LOD) (LODView, error) {
	if lod.ElementMask&ElementPosition == 0 {
		return LODView{}, fmt.Errorf("vertex format has no positions")
	}

	stride := VertexStride(lod.ElementMask)
	if stride == 0 || len(lod.VertexData)%stride != 0 {
		return LODView{}, fmt.Errorf("vertex data length %d does not match stride %d", len(lod.VertexData), stride)
	}
	if len(lod.Indices)%3 != 0 {
		return LODView{}, fmt.Errorf("index count %d is not a triangle list", len(lod.Indices))
	}

	numVertices := len(lod.VertexData) / stride
	vertices := make([]Vertex, numVertices)
	for i := 0; i < numVertices; i++ {
		data := lod.VertexData[i*stride : (i+1)*stride]
		offset := 0

		vertex := Vertex{}
		vertex.Position = math.Vec3{X: data[0], Y: data[1], Z: data[2]}
		offset += 3
		if lod.ElementMask&ElementNormal != 0 {
			vertex.Normal = math.Vec3{X: data[offset], Y: data[offset+1], Z: data[offset+2]}
			offset += 3
		}
		for channel := 0; channel < MaxUVChannels; channel++ {
			if lod.ElementMask&ElementUV(channel) != 0 {
				vertex.UVs[channel] = math.Vec2{X: data[offset], Y: data[offset+1]}
				offset += 2
			}
		}
		vertices[i] = vertex
	}

	for _, index := range lod.Indices {
		if int(index) >= numVertices {
			return LODView{}, fmt.Errorf("index %d out of range (%d vertices)", index, numVertices)
		}
	}

	return LODView{Vertices: vertices, Indices: append([]uint32(nil), lod.Indices...)}, nil
}

// Geometries returns the unpacked geometry views.
func (v *View) Geometries() []GeometryView {
	return v.geometries
}

// CalculateBoundingBox returns the bounding box of all imported vertices.
func (v *View) CalculateBoundingBox() math.BoundingBox {
	var box math.BoundingBox
	for _, geometry := range v.geometries {
		for _, lod := range geometry.LODs {
			for _, vertex := range lod.Vertices {
				box = box.MergePoint(vertex.Position)
			}
		}
	}
	return box
}

// BoundingBox returns the bounding box of a model without keeping the
// unpacked form around.
func BoundingBox(m *Model) math.BoundingBox {
	var view View
	if err := view.Import(m); err != nil {
		return math.BoundingBox{}
	}
	return view.CalculateBoundingBox()
}
