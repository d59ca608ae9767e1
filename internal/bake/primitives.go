package bake

import (
	"fmt"

	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/pkg/math"
)

// buildPrimitive constructs a manifest model definition as a mesh with
// lightmap UVs in channel 1.
func buildPrimitive(def modelDef) (*model.Model, error) {
	switch def.Primitive {
	case "quad":
		if len(def.Size) != 2 {
			return nil, fmt.Errorf("quad size needs 2 components, got %d", len(def.Size))
		}
		return buildQuad(def.Name, def.Size[0], def.Size[1]), nil
	case "box":
		if len(def.Size) != 3 {
			return nil, fmt.Errorf("box size needs 3 components, got %d", len(def.Size))
		}
		return buildBox(def.Name, math.Vec3{X: def.Size[0], Y: def.Size[1], Z: def.Size[2]}), nil
	default:
		return nil, fmt.Errorf("unknown primitive %q", def.Primitive)
	}
}

// buildQuad builds a width x height quad in the XY plane facing +Z,
// centered at the origin, with UVs spanning [0,1] in both channels.
func buildQuad(name string, width, height float32) *model.Model {
	hw, hh := width/2, height/2
	vertex := func(x, y, u, v float32) model.Vertex {
		vtx := model.Vertex{
			Position: math.Vec3{X: x, Y: y},
			Normal:   math.Vec3{Z: 1},
		}
		vtx.UVs[0] = math.Vec2{X: u, Y: v}
		vtx.UVs[1] = math.Vec2{X: u, Y: v}
		return vtx
	}
	vertices := []model.Vertex{
		vertex(-hw, -hh, 0, 0),
		vertex(hw, -hh, 1, 0),
		vertex(-hw, hh, 0, 1),
		vertex(hw, hh, 1, 1),
	}
	indices := []uint32{0, 1, 2, 1, 3, 2}
	return model.NewBuilder(name).AddGeometry(vertices, indices).Build()
}

// buildBox builds an axis-aligned box centered at the origin. Each face
// gets its own cell in a 3x2 lightmap atlas, so faces never share UVs.
func buildBox(name string, size math.Vec3) *model.Model {
	h := size.Scale(0.5)

	// Per face: normal and the two in-plane axes spanning it.
	faces := [6]struct {
		normal, u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{Y: 1}, math.Vec3{X: 1}},
	}

	var vertices []model.Vertex
	var indices []uint32
	for i, face := range faces {
		cell := math.Vec2{X: float32(i%3) / 3, Y: float32(i/3) / 2}
		origin := face.normal.Mul(h)
		du := face.u.Mul(h)
		dv := face.v.Mul(h)

		base := uint32(len(vertices))
		for corner := 0; corner < 4; corner++ {
			su := float32(corner%2)*2 - 1
			sv := float32(corner/2)*2 - 1
			uv := cell.Add(math.Vec2{
				X: float32(corner%2) / 3,
				Y: float32(corner/2) / 2,
			})

			vtx := model.Vertex{
				Position: origin.Add(du.Scale(su)).Add(dv.Scale(sv)),
				Normal:   face.normal,
			}
			vtx.UVs[0] = uv
			vtx.UVs[1] = uv
			vertices = append(vertices, vtx)
		}
		indices = append(indices, base, base+1, base+2, base+1, base+3, base+2)
	}

	return model.NewBuilder(name).AddGeometry(vertices, indices).Build()
}
