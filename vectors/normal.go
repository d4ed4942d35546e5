// Package vectors computes derived per-vertex attributes for triangulated
// mesh data: smooth normals, tangents, bitangents and tangent handedness.
// Inputs are flat attribute arrays plus a triangle index list; every call is
// a pure transform with no retained state.
package vectors

import (
	"runtime"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/spaghettifunk/geometry-tools/math"
)

/**
 * @brief Calculates smooth per-vertex normals by accumulating the
 * unnormalized face normal of every triangle incident to each vertex and
 * normalizing once all faces are processed. Weighting is by face count, not
 * face area, which matches the renderer this library was extracted from.
 *
 * Triangles are expected in the winding order the consuming renderer uses;
 * no winding correction is attempted. A vertex whose accumulated normal
 * cancels to exactly zero is returned as the zero vector rather than NaN.
 *
 * If either positions or indices is empty, the result is empty and no error
 * is returned.
 */
func CalculateSmoothNormals(positions []math.Vec3, indices []uint32) ([]math.Vec3, error) {
	if len(positions) == 0 || len(indices) == 0 {
		return []math.Vec3{}, nil
	}
	if err := validateIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	normals := make([]math.Vec3, len(positions))
	accumulateFaceNormals(positions, normals, indices)
	for i := range normals {
		normals[i] = normals[i].NormalizedOrZero()
	}
	return normals, nil
}

/**
 * @brief Calculates smooth per-vertex normals like CalculateSmoothNormals,
 * distributing the face accumulation across goroutines with one partial sum
 * slice per goroutine, merged before the normalize pass. Results match the
 * serial path up to float32 rounding, since per-vertex contributions are
 * summed in a different order.
 *
 * goroutines <= 0 selects one goroutine per CPU.
 */
func CalculateSmoothNormalsParallel(positions []math.Vec3, indices []uint32, goroutines int) ([]math.Vec3, error) {
	if len(positions) == 0 || len(indices) == 0 {
		return []math.Vec3{}, nil
	}
	if err := validateIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	faceCount := len(indices) / 3
	if goroutines <= 0 {
		goroutines = runtime.NumCPU()
	}
	goroutines = math.Clamp(goroutines, 1, faceCount)

	partials := make([][]math.Vec3, goroutines)
	for g := range partials {
		partials[g] = make([]math.Vec3, len(positions))
	}

	parallel.WithNumGoroutines(goroutines).For(faceCount, func(face, grID int) {
		i0 := indices[face*3+0]
		i1 := indices[face*3+1]
		i2 := indices[face*3+2]

		normal := faceNormal(positions[i0], positions[i1], positions[i2])

		sums := partials[grID]
		sums[i0] = sums[i0].Add(normal)
		sums[i1] = sums[i1].Add(normal)
		sums[i2] = sums[i2].Add(normal)
	})

	normals := make([]math.Vec3, len(positions))
	for _, sums := range partials {
		for i := range normals {
			normals[i] = normals[i].Add(sums[i])
		}
	}
	for i := range normals {
		normals[i] = normals[i].NormalizedOrZero()
	}
	return normals, nil
}

// accumulateFaceNormals adds the unnormalized face normal of every triangle
// into the three vertex slots it references. normals must already be zeroed
// and sized to positions.
func accumulateFaceNormals(positions []math.Vec3, normals []math.Vec3, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		normal := faceNormal(positions[i0], positions[i1], positions[i2])

		normals[i0] = normals[i0].Add(normal)
		normals[i1] = normals[i1].Add(normal)
		normals[i2] = normals[i2].Add(normal)
	}
}

// faceNormal returns the unnormalized normal of a triangle, following the
// winding order of the supplied vertices.
func faceNormal(v0, v1, v2 math.Vec3) math.Vec3 {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	return edge1.Cross(edge2)
}
