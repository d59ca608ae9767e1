// Package math provides math types and functions for 3D rendering and baking.
package math

// Tolerances shared across geometry comparisons.
//
// LargeEpsilon is intentionally loose: seam detection compares positions,
// normals and UVs against the same constant.
const (
	Epsilon      float32 = 1e-6
	LargeEpsilon float32 = 5e-5
	LargeValue   float32 = 1e8
)

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// MaxF returns the larger of a and b.
func MaxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// MinF returns the smaller of a and b.
func MinF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
