package math

// Vec4 is a 4-component vector. The array layout matches GPU texel and
// uniform storage, so readback buffers can reinterpret it directly.
type Vec4 [4]float32

// NewVec4 builds a Vec4 from components.
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// XYZ returns the first three components as Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// XY returns the first two components as Vec2.
func (v Vec4) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// ZW returns the last two components as Vec2.
func (v Vec4) ZW() Vec2 {
	return Vec2{v[2], v[3]}
}
