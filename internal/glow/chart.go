package glow

import (
	"github.com/MkFair/rbfx/internal/engine/scene"
	"github.com/MkFair/rbfx/pkg/math"
)

// Region is the normalized UV rectangle a chart element occupies in its
// lightmap.
type Region struct {
	Scale  math.Vec2
	Offset math.Vec2
}

// ScaleOffset packs the region as a vec4 shader parameter.
func (r Region) ScaleOffset() math.Vec4 {
	return math.Vec4{r.Scale.X, r.Scale.Y, r.Offset.X, r.Offset.Y}
}

// ChartElement is one placed instance allotted a region of the chart.
// Elements without a static model, or with a static model lacking a mesh,
// occupy their region but produce no geometry.
type ChartElement struct {
	StaticModel *scene.StaticModel
	Region      Region
}

// Chart is one lightmap: a texture of Width x Height texels shared by a
// set of placed instances.
type Chart struct {
	Index  int
	Width  int
	Height int

	// PhysicalWidth and PhysicalHeight size the offscreen render target.
	// Zero values fall back to the texel dimensions.
	PhysicalWidth  int
	PhysicalHeight int

	Elements []ChartElement
}

// PhysicalSize returns the render target size for the chart.
func (c *Chart) PhysicalSize() (int, int) {
	width, height := c.PhysicalWidth, c.PhysicalHeight
	if width < 1 {
		width = c.Width
	}
	if height < 1 {
		height = c.Height
	}
	return width, height
}

// TexelSize returns the UV extent of one texel.
func (c *Chart) TexelSize() math.Vec2 {
	return math.Vec2{X: 1 / float32(c.Width), Y: 1 / float32(c.Height)}
}
