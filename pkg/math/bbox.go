package math

// BoundingBox is an axis-aligned bounding box. The zero value is an
// undefined (empty) box; merging into it defines it.
type BoundingBox struct {
	Min, Max Vec3

	defined bool
}

// NewBoundingBox returns a box spanning min to max.
func NewBoundingBox(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max, defined: true}
}

// Defined reports whether the box contains at least one merged point.
func (b BoundingBox) Defined() bool {
	return b.defined
}

// Size returns the box extents, or zero for an undefined box.
func (b BoundingBox) Size() Vec3 {
	if !b.defined {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box center point.
func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// MergePoint expands the box to contain the point.
func (b BoundingBox) MergePoint(p Vec3) BoundingBox {
	if !b.defined {
		return BoundingBox{Min: p, Max: p, defined: true}
	}
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p), defined: true}
}

// Merge expands the box to contain another box.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	if !other.defined {
		return b
	}
	if !b.defined {
		return other
	}
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max), defined: true}
}

// Transformed returns the axis-aligned box containing this box
// transformed by m.
func (b BoundingBox) Transformed(m Mat4) BoundingBox {
	if !b.defined {
		return b
	}
	var out BoundingBox
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	for _, c := range corners {
		out = out.MergePoint(m.TransformVec3(c))
	}
	return out
}

// Intersects reports whether two defined boxes overlap.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	if !b.defined || !other.defined {
		return false
	}
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}
