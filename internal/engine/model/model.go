// Package model provides static model resources and an editable vertex view
// used by mesh preprocessing.
package model

import (
	"github.com/MkFair/rbfx/pkg/math"
)

// MaxUVChannels is the number of UV sets a vertex can carry.
const MaxUVChannels = 4

// Element flags describing which attributes a vertex stream contains.
const (
	ElementPosition uint32 = 1 << iota
	ElementNormal
	ElementUV0
	ElementUV1
	ElementUV2
	ElementUV3
)

// ElementUV returns the element flag for the given UV channel.
func ElementUV(channel int) uint32 {
	return ElementUV0 << uint(channel)
}

// floatsPerElement returns the float count contributed by one element flag.
func floatsPerElement(flag uint32) int {
	switch flag {
	case ElementPosition, ElementNormal:
		return 3
	case ElementUV0, ElementUV1, ElementUV2, ElementUV3:
		return 2
	}
	return 0
}

// VertexStride returns the float stride of an interleaved vertex with the
// given element mask.
func VertexStride(mask uint32) int {
	stride := 0
	for flag := ElementPosition; flag <= ElementUV3; flag <<= 1 {
		if mask&flag != 0 {
			stride += floatsPerElement(flag)
		}
	}
	return stride
}

// LOD is one level of detail of a geometry: interleaved vertex data plus
// triangle indices.
type LOD struct {
	ElementMask uint32
	VertexData  []float32
	Indices     []uint32
}

// Geometry is one renderable geometry of a model, with one or more LODs.
type Geometry struct {
	LODs []LOD
}

// Model is an immutable static model resource.
type Model struct {
	name       string
	geometries []Geometry
}

// New creates a model resource from geometry data.
func New(name string, geometries []Geometry) *Model {
	return &Model{name: name, geometries: geometries}
}

// Name returns the resource name.
func (m *Model) Name() string {
	return m.name
}

// Geometries returns the model's geometry list.
func (m *Model) Geometries() []Geometry {
	return m.geometries
}

// Builder assembles a model resource from per-vertex data. It exists so
// tests and loaders can construct models without hand-packing interleaved
// streams.
type Builder struct {
	name       string
	geometries []Geometry
}

// NewBuilder creates a model builder.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// AddGeometry appends a geometry with a single LOD built from vertices and
// indices.
func (b *Builder) AddGeometry(vertices []Vertex, indices []uint32) *Builder {
	return b.AddGeometryLODs([][]Vertex{vertices}, [][]uint32{indices})
}

// AddGeometryLODs appends a geometry with one LOD per vertex/index pair.
func (b *Builder) AddGeometryLODs(vertices [][]Vertex, indices [][]uint32) *Builder {
	geometry := Geometry{}
	for lod := range vertices {
		mask := ElementPosition | ElementNormal
		for channel := 0; channel < MaxUVChannels; channel++ {
			mask |= ElementUV(channel)
		}

		data := make([]float32, 0, len(vertices[lod])*VertexStride(mask))
		for _, v := range vertices[lod] {
			data = append(data, v.Position.X, v.Position.Y, v.Position.Z)
			data = append(data, v.Normal.X, v.Normal.Y, v.Normal.Z)
			for channel := 0; channel < MaxUVChannels; channel++ {
				data = append(data, v.UVs[channel].X, v.UVs[channel].Y)
			}
		}

		geometry.LODs = append(geometry.LODs, LOD{
			ElementMask: mask,
			VertexData:  data,
			Indices:     append([]uint32(nil), indices[lod]...),
		})
	}
	b.geometries = append(b.geometries, geometry)
	return b
}

// Build returns the assembled model.
func (b *Builder) Build() *Model {
	return New(b.name, b.geometries)
}

// Vertex is one unpacked model vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UVs      [MaxUVChannels]math.Vec2
}
