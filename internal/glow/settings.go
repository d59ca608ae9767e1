package glow

// Settings configures baking scene generation.
type Settings struct {
	// Material is the resource name of the baking material cloned per tap.
	Material string

	// UVChannel is the vertex UV channel holding lightmap coordinates.
	UVChannel int

	// RenderPath is the resource name of the geometry buffer render path.
	RenderPath string
}
