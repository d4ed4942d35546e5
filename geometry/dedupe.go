package geometry

import (
	"github.com/spaghettifunk/geometry-tools/core"
	"github.com/spaghettifunk/geometry-tools/math"
)

// sameVertex reports whether two vertices of the config carry the same
// attributes within K_FLOAT_EPSILON.
func (c *Config) sameVertex(a, b int) bool {
	if !c.Positions[a].Compare(c.Positions[b], math.K_FLOAT_EPSILON) {
		return false
	}
	if len(c.Normals) > 0 && !c.Normals[a].Compare(c.Normals[b], math.K_FLOAT_EPSILON) {
		return false
	}
	if len(c.UVs) > 0 && !c.UVs[a].Compare(c.UVs[b], math.K_FLOAT_EPSILON) {
		return false
	}
	return true
}

// reassignIndex redirects every index equal to from onto to and pulls in
// all indices higher than from by 1, keeping the index list consistent
// after a vertex is removed.
func reassignIndex(indices []uint32, from, to uint32) {
	for i := range indices {
		if indices[i] == from {
			indices[i] = to
		} else if indices[i] > from {
			indices[i]--
		}
	}
}

// DeduplicateVertices collapses vertices whose attributes match within
// K_FLOAT_EPSILON, rewriting the index list to reference the survivors.
// Loaders emit one vertex per face corner, so a welded mesh is usually much
// smaller. The attribute arrays are replaced; derived tangents and bounds
// are invalidated and should be recomputed afterwards.
func (c *Config) DeduplicateVertices() {
	vertexCount := len(c.Positions)
	if vertexCount == 0 {
		return
	}

	uniquePositions := make([]math.Vec3, 0, vertexCount)
	uniqueNormals := make([]math.Vec3, 0, len(c.Normals))
	uniqueUVs := make([]math.Vec2, 0, len(c.UVs))

	// Tracks, per inspected vertex, where it ended up among the uniques.
	uniqueOf := make([]int, 0, vertexCount)
	foundCount := uint32(0)

	for v := 0; v < vertexCount; v++ {
		found := false
		for u := 0; u < len(uniquePositions); u++ {
			if c.sameVertex(v, uniqueOf[u]) {
				// Reassign indices, do not copy.
				reassignIndex(c.Indices, uint32(v)-foundCount, uint32(u))
				found = true
				foundCount++
				break
			}
		}

		if !found {
			uniqueOf = append(uniqueOf, v)
			uniquePositions = append(uniquePositions, c.Positions[v])
			if len(c.Normals) > 0 {
				uniqueNormals = append(uniqueNormals, c.Normals[v])
			}
			if len(c.UVs) > 0 {
				uniqueUVs = append(uniqueUVs, c.UVs[v])
			}
		}
	}

	removedCount := vertexCount - len(uniquePositions)
	core.LogDebug("deduplicate vertices: removed %d vertices, orig/now %d/%d", removedCount, vertexCount, len(uniquePositions))

	c.Positions = uniquePositions
	if len(c.Normals) > 0 {
		c.Normals = uniqueNormals
	}
	if len(c.UVs) > 0 {
		c.UVs = uniqueUVs
	}
	c.Tangents = nil
}
