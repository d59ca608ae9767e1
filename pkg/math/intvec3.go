package math

import "math"

// IntVec3 is a 3D integer vector. Comparable, so it can key maps
// such as spatial hash cells.
type IntVec3 struct {
	X, Y, Z int
}

// Add returns v + other.
func (v IntVec3) Add(other IntVec3) IntVec3 {
	return IntVec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// FloorToInt returns the component-wise floor of v as an IntVec3.
func (v Vec3) FloorToInt() IntVec3 {
	return IntVec3{
		X: int(math.Floor(float64(v.X))),
		Y: int(math.Floor(float64(v.Y))),
		Z: int(math.Floor(float64(v.Z))),
	}
}
