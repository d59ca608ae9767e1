package scene

import (
	"github.com/MkFair/rbfx/pkg/math"
)

// SpatialIndex is a spatial hash grid over static model components. It is
// a lookup accelerator only; the scene graph stays authoritative.
type SpatialIndex struct {
	cellSize float32
	cells    map[math.IntVec3][]*StaticModel
}

// NewSpatialIndex creates an index with the given cell size.
func NewSpatialIndex(cellSize float32) *SpatialIndex {
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[math.IntVec3][]*StaticModel),
	}
}

// Clear drops all indexed components.
func (si *SpatialIndex) Clear() {
	clear(si.cells)
}

// Insert registers a component under every cell its world box covers.
func (si *SpatialIndex) Insert(sm *StaticModel, box math.BoundingBox) {
	if !box.Defined() {
		return
	}
	min := si.cellCoord(box.Min)
	max := si.cellCoord(box.Max)

	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				cell := math.IntVec3{X: x, Y: y, Z: z}
				si.cells[cell] = append(si.cells[cell], sm)
			}
		}
	}
}

// Query returns the components whose cells overlap the box, deduplicated,
// in insertion order within each cell walk.
func (si *SpatialIndex) Query(box math.BoundingBox) []*StaticModel {
	if !box.Defined() {
		return nil
	}
	min := si.cellCoord(box.Min)
	max := si.cellCoord(box.Max)

	seen := make(map[*StaticModel]struct{})
	var results []*StaticModel

	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				for _, sm := range si.cells[math.IntVec3{X: x, Y: y, Z: z}] {
					if _, ok := seen[sm]; ok {
						continue
					}
					seen[sm] = struct{}{}
					results = append(results, sm)
				}
			}
		}
	}
	return results
}

func (si *SpatialIndex) cellCoord(p math.Vec3) math.IntVec3 {
	return p.Scale(1 / si.cellSize).FloorToInt()
}
