package math

import "testing"

func TestBoundingBoxMergePoint(t *testing.T) {
	var b BoundingBox
	if b.Defined() {
		t.Fatal("zero box should be undefined")
	}

	b = b.MergePoint(Vec3{1, 2, 3})
	if !b.Defined() {
		t.Fatal("box should be defined after merging a point")
	}
	if b.Min != (Vec3{1, 2, 3}) || b.Max != (Vec3{1, 2, 3}) {
		t.Errorf("single-point box = %v..%v, want point 1,2,3", b.Min, b.Max)
	}

	b = b.MergePoint(Vec3{-1, 5, 0})
	want := NewBoundingBox(Vec3{-1, 2, 0}, Vec3{1, 5, 3})
	if b.Min != want.Min || b.Max != want.Max {
		t.Errorf("merged box = %v..%v, want %v..%v", b.Min, b.Max, want.Min, want.Max)
	}
}

func TestBoundingBoxMerge(t *testing.T) {
	a := NewBoundingBox(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	b := NewBoundingBox(Vec3{-2, 0.5, 0}, Vec3{0.5, 3, 0.5})

	got := a.Merge(b)
	if got.Min != (Vec3{-2, 0, 0}) || got.Max != (Vec3{1, 3, 1}) {
		t.Errorf("Merge() = %v..%v", got.Min, got.Max)
	}

	// Merging an undefined box is a no-op.
	got = a.Merge(BoundingBox{})
	if got.Min != a.Min || got.Max != a.Max {
		t.Errorf("Merge(undefined) changed the box: %v..%v", got.Min, got.Max)
	}
}

func TestBoundingBoxSizeCenter(t *testing.T) {
	b := NewBoundingBox(Vec3{-1, -2, -3}, Vec3{1, 2, 3})
	if b.Size() != (Vec3{2, 4, 6}) {
		t.Errorf("Size() = %v, want {2 4 6}", b.Size())
	}
	if b.Center() != (Vec3{0, 0, 0}) {
		t.Errorf("Center() = %v, want origin", b.Center())
	}
}

func TestBoundingBoxTransformed(t *testing.T) {
	b := NewBoundingBox(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	got := b.Transformed(Translate(10, 0, 0))
	if got.Min != (Vec3{10, 0, 0}) || got.Max != (Vec3{11, 1, 1}) {
		t.Errorf("Transformed() = %v..%v", got.Min, got.Max)
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := NewBoundingBox(Vec3{0, 0, 0}, Vec3{2, 2, 2})
	b := NewBoundingBox(Vec3{1, 1, 1}, Vec3{3, 3, 3})
	c := NewBoundingBox(Vec3{5, 5, 5}, Vec3{6, 6, 6})

	if !a.Intersects(b) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint boxes should not intersect")
	}
	if a.Intersects(BoundingBox{}) {
		t.Error("undefined box should never intersect")
	}
}

func TestFloorToInt(t *testing.T) {
	got := (Vec3{1.7, -0.3, 2.0}).FloorToInt()
	want := IntVec3{1, -1, 2}
	if got != want {
		t.Errorf("FloorToInt() = %v, want %v", got, want)
	}
}
