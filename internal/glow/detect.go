package glow

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/pkg/math"
)

// indexPair is an edge named by its two vertex indices, smaller first.
type indexPair struct {
	first, second uint32
}

func orderedIndexPair(a, b uint32) indexPair {
	if a < b {
		return indexPair{first: a, second: b}
	}
	return indexPair{first: b, second: a}
}

func compareIndexPairs(a, b indexPair) int {
	if c := cmp.Compare(a.first, b.first); c != 0 {
		return c
	}
	return cmp.Compare(a.second, b.second)
}

// CollectModelSeams finds the UV seams of a model in the given UV channel.
// A seam is a pair of edges with matching positions and normals whose UVs
// diverge, excluding pairs that lie on the same UV line. Import failures
// degrade to an empty seam list.
func CollectModelSeams(m *model.Model, uvChannel int) []Seam {
	var view model.View
	if err := view.Import(m); err != nil {
		logger.Error("failed to import model",
			zap.String("model", m.Name()),
			zap.Error(err),
		)
		return nil
	}

	positionEpsilonSquared := math.LargeEpsilon * math.LargeEpsilon
	normalEpsilonSquared := math.LargeEpsilon * math.LargeEpsilon
	uvEpsilonSquared := math.LargeEpsilon * math.LargeEpsilon

	// Spatial hash step: fine enough to distinguish vertices, never finer
	// than the position tolerance.
	boundingBox := view.CalculateBoundingBox()
	epsilonStep := math.Vec3{X: math.LargeEpsilon, Y: math.LargeEpsilon, Z: math.LargeEpsilon}
	hashStep := boundingBox.Size().Scale(1 / math.LargeValue).Max(epsilonStep)
	computeHash := func(position math.Vec3) math.IntVec3 {
		return position.Sub(boundingBox.Min).Div(hashStep).FloorToInt()
	}

	var seams []Seam
	for _, geometry := range view.Geometries() {
		for _, lod := range geometry.LODs {
			vertices := lod.Vertices

			// Collect unique edges.
			var edges []indexPair
			for face := 0; face+2 < len(lod.Indices); face += 3 {
				indexA := lod.Indices[face]
				indexB := lod.Indices[face+1]
				indexC := lod.Indices[face+2]

				edges = append(edges,
					orderedIndexPair(indexA, indexB),
					orderedIndexPair(indexB, indexC),
					orderedIndexPair(indexC, indexA),
				)
			}
			slices.SortFunc(edges, compareIndexPairs)
			edges = slices.Compact(edges)

			// Hash each edge under both endpoints.
			edgeHash := make(map[math.IntVec3][]indexPair)
			for _, edge := range edges {
				for _, index := range [2]uint32{edge.first, edge.second} {
					cell := computeHash(vertices[index].Position)
					edgeHash[cell] = append(edgeHash[cell], edge)
				}
			}

			var candidates []indexPair
			for _, edge := range edges {
				// Gather candidate edges from the 3x3x3 neighborhood of
				// both endpoints.
				candidates = candidates[:0]
				for _, index := range [2]uint32{edge.first, edge.second} {
					cell := computeHash(vertices[index].Position)
					for x := -1; x <= 1; x++ {
						for y := -1; y <= 1; y++ {
							for z := -1; z <= 1; z++ {
								neighbor := cell.Add(math.IntVec3{X: x, Y: y, Z: z})
								candidates = append(candidates, edgeHash[neighbor]...)
							}
						}
					}
				}
				slices.SortFunc(candidates, compareIndexPairs)
				candidates = slices.Compact(candidates)

				edgePos0 := vertices[edge.first].Position
				edgePos1 := vertices[edge.second].Position
				edgeNormal0 := vertices[edge.first].Normal
				edgeNormal1 := vertices[edge.second].Normal
				edgeUV0 := vertices[edge.first].UVs[uvChannel]
				edgeUV1 := vertices[edge.second].UVs[uvChannel]

				for _, candidate := range candidates {
					if candidate == edge {
						continue
					}

					// Orient the candidate the same way as the edge.
					if vertices[candidate.first].Position.Sub(edgePos1).LengthSquared() < positionEpsilonSquared {
						candidate.first, candidate.second = candidate.second, candidate.first
					}

					candidatePos0 := vertices[candidate.first].Position
					candidatePos1 := vertices[candidate.second].Position
					candidateNormal0 := vertices[candidate.first].Normal
					candidateNormal1 := vertices[candidate.second].Normal
					candidateUV0 := vertices[candidate.first].UVs[uvChannel]
					candidateUV1 := vertices[candidate.second].UVs[uvChannel]

					// Skip if edge geometry is different.
					samePos0 := edgePos0.Sub(candidatePos0).LengthSquared() < positionEpsilonSquared
					samePos1 := edgePos1.Sub(candidatePos1).LengthSquared() < positionEpsilonSquared
					sameNormal0 := edgeNormal0.Sub(candidateNormal0).LengthSquared() < normalEpsilonSquared
					sameNormal1 := edgeNormal1.Sub(candidateNormal1).LengthSquared() < normalEpsilonSquared
					if !samePos0 || !samePos1 || !sameNormal0 || !sameNormal1 {
						continue
					}

					// Skip if not a seam.
					sameUV0 := edgeUV0.Sub(candidateUV0).LengthSquared() < uvEpsilonSquared
					sameUV1 := edgeUV1.Sub(candidateUV1).LengthSquared() < uvEpsilonSquared
					if sameUV0 && sameUV1 {
						continue
					}

					// Skip if both sides lie on the same UV line.
					edgeUVDelta := edgeUV1.Sub(edgeUV0)
					cross0 := edgeUVDelta.Cross(candidateUV0.Sub(edgeUV0))
					cross1 := edgeUVDelta.Cross(candidateUV1.Sub(edgeUV0))
					if cross0*cross0 < uvEpsilonSquared && cross1*cross1 < uvEpsilonSquared {
						continue
					}

					seams = append(seams, Seam{
						Positions:      [2]math.Vec2{edgeUV0, edgeUV1},
						OtherPositions: [2]math.Vec2{candidateUV0, candidateUV1},
					})
				}
			}
		}
	}
	return seams
}
