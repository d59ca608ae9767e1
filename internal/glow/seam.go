// Package glow implements the lightmap geometry baking pipeline: UV seam
// detection on models, per-chart baking scene assembly with multi-tap
// supersampling, and geometry buffer rendering.
package glow

import "github.com/MkFair/rbfx/pkg/math"

// Seam is a pair of edges that coincide in model space but are split in
// lightmap UV space. Positions and OtherPositions hold the UV endpoints of
// the two sides, matched by index.
type Seam struct {
	Positions      [2]math.Vec2
	OtherPositions [2]math.Vec2
}

// Transformed returns the seam mapped into chart space: uv' = uv*scale + offset.
func (s Seam) Transformed(scale, offset math.Vec2) Seam {
	apply := func(uv math.Vec2) math.Vec2 {
		return uv.Mul(scale).Add(offset)
	}
	return Seam{
		Positions:      [2]math.Vec2{apply(s.Positions[0]), apply(s.Positions[1])},
		OtherPositions: [2]math.Vec2{apply(s.OtherPositions[0]), apply(s.OtherPositions[1])},
	}
}
