package glow

import "github.com/MkFair/rbfx/pkg/math"

// NumMultiTapSamples is the number of times each chart element is
// replicated in a baking scene.
const NumMultiTapSamples = 25

// multiTapOffsets are UV offsets in texels, ordered from farthest to the
// centered tap so that later taps render at lower depth and win.
var multiTapOffsets = [NumMultiTapSamples]math.Vec2{
	{X: 1.0, Y: 1.0},
	{X: 1.0, Y: -1.0},
	{X: -1.0, Y: 1.0},
	{X: -1.0, Y: -1.0},

	{X: 1.0, Y: 0.5},
	{X: 1.0, Y: -0.5},
	{X: -1.0, Y: 0.5},
	{X: -1.0, Y: -0.5},
	{X: 0.5, Y: 1.0},
	{X: 0.5, Y: -1.0},
	{X: -0.5, Y: 1.0},
	{X: -0.5, Y: -1.0},

	{X: 1.0, Y: 0.0},
	{X: -1.0, Y: 0.0},
	{X: 0.0, Y: 1.0},
	{X: 0.0, Y: -1.0},

	{X: 0.5, Y: 0.5},
	{X: 0.5, Y: -0.5},
	{X: -0.5, Y: 0.5},
	{X: -0.5, Y: -0.5},

	{X: 0.5, Y: 0.0},
	{X: -0.5, Y: 0.0},
	{X: 0.0, Y: 0.5},
	{X: 0.0, Y: -0.5},

	{X: 0.0, Y: 0.0},
}
