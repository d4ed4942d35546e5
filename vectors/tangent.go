package vectors

import (
	"github.com/spaghettifunk/geometry-tools/math"
)

// Default directions substituted when a tangent or bitangent degenerates to
// the zero vector. Arbitrary but finite, so degenerate UV mappings never
// produce NaN or zero-length outputs.
var (
	DefaultTangent   = math.NewVec3Right()
	DefaultBitangent = math.NewVec3Up()
)

/**
 * @brief Calculates per-vertex unit tangents and bitangents aligned to the
 * UV parameterization. Each face's tangent pair is accumulated into the
 * three vertices it references; the summed bitangent is then
 * re-orthogonalized against the supplied per-vertex normal before both
 * vectors are normalized.
 *
 * Degenerate geometry (zero UV area, identical positions, cancellation
 * across faces) is corrected by substituting the default axes rather than
 * reported as an error, so structurally valid meshes always receive finite
 * unit vectors.
 *
 * positions, normals and uvs must share a length or an
 * AttributeCountMismatchError is returned. Empty inputs yield empty outputs.
 */
func CalculateTangentsBitangents(positions []math.Vec3, normals []math.Vec3, uvs []math.Vec2, indices []uint32) ([]math.Vec3, []math.Vec3, error) {
	if len(positions) != len(normals) || len(positions) != len(uvs) {
		return nil, nil, &AttributeCountMismatchError{
			Positions: len(positions),
			Normals:   len(normals),
			UVs:       len(uvs),
		}
	}
	if err := validateIndices(indices, len(positions)); err != nil {
		return nil, nil, err
	}

	tangents := make([]math.Vec3, len(positions))
	bitangents := make([]math.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		tangent, bitangent := faceTangentBitangent(
			positions[i0], positions[i1], positions[i2],
			uvs[i0], uvs[i1], uvs[i2],
		)

		tangents[i0] = tangents[i0].Add(tangent)
		tangents[i1] = tangents[i1].Add(tangent)
		tangents[i2] = tangents[i2].Add(tangent)

		bitangents[i0] = bitangents[i0].Add(bitangent)
		bitangents[i1] = bitangents[i1].Add(bitangent)
		bitangents[i2] = bitangents[i2].Add(bitangent)
	}

	for i := range tangents {
		tangents[i], bitangents[i] = finalizeTangentBitangent(tangents[i], bitangents[i], normals[i])
	}

	return tangents, bitangents, nil
}

/**
 * @brief Calculates the tangent sign, which is often stored in the W
 * component of a 4-component tangent vector. The bitangent can then be
 * regenerated as normal.Cross(tangent).MulScalar(w), a step normally done
 * by shader code on the GPU.
 *
 * A zero cross product still returns 1.0 to avoid generating black
 * bitangents downstream; the result is never 0.
 */
func CalculateTangentW(normal, tangent, bitangent math.Vec3) float32 {
	if tangent.Cross(bitangent).Dot(normal) >= 0.0 {
		return 1.0
	}
	return -1.0
}

/**
 * @brief Calculates per-vertex tangents packed as 4-component vectors with
 * the handedness sign in W. The explicit bitangent array is discarded;
 * callers reconstruct it on demand from the normal, tangent and sign.
 */
func CalculateTangents(positions []math.Vec3, normals []math.Vec3, uvs []math.Vec2, indices []uint32) ([]math.Vec4, error) {
	tangents, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, indices)
	if err != nil {
		return nil, err
	}

	packed := make([]math.Vec4, len(tangents))
	for i := range tangents {
		w := CalculateTangentW(normals[i], tangents[i], bitangents[i])
		packed[i] = tangents[i].ToVec4(w)
	}
	return packed, nil
}

// faceTangentBitangent computes the unaveraged tangent pair of a single
// triangle from its positions and UVs. Degenerate faces contribute the
// default axes instead of zero or non-finite vectors.
func faceTangentBitangent(p0, p1, p2 math.Vec3, uv0, uv1, uv2 math.Vec2) (math.Vec3, math.Vec3) {
	posA := p1.Sub(p0)
	posB := p2.Sub(p0)

	uvA := uv1.Sub(uv0)
	uvB := uv2.Sub(uv0)

	// Twice the signed area of the UV triangle. A zero area means the UV
	// mapping is degenerate, so fall back to a finite reciprocal; the
	// resulting direction is arbitrary but never infinite or NaN.
	div := uvA.X*uvB.Y - uvB.X*uvA.Y
	r := float32(1.0)
	if div != 0.0 {
		r = 1.0 / div
	}

	tangent := posA.MulScalar(uvB.Y).Sub(posB.MulScalar(uvA.Y)).MulScalar(r)
	bitangent := posB.MulScalar(uvA.X).Sub(posA.MulScalar(uvB.X)).MulScalar(r)

	// All UVs or all positions identical leave a zero-length result.
	if tangent.LengthSquared() == 0.0 {
		tangent = DefaultTangent
	}
	if bitangent.LengthSquared() == 0.0 {
		bitangent = DefaultBitangent
	}

	return tangent, bitangent
}

// finalizeTangentBitangent applies the per-vertex post-processing to the
// accumulated sums: default-axis substitution for cancelled sums,
// Gram-Schmidt orthogonalization of the bitangent against the vertex
// normal, and a saturating normalize of both vectors.
func finalizeTangentBitangent(tangent, bitangent, normal math.Vec3) (math.Vec3, math.Vec3) {
	if tangent.LengthSquared() == 0.0 {
		tangent = DefaultTangent
	}
	if bitangent.LengthSquared() == 0.0 {
		bitangent = DefaultBitangent
	}

	// The interpolated normal is generally not orthogonal to the summed
	// bitangent, so project the normal component out. Skip when the two
	// are parallel; the projection would leave nothing to normalize.
	if bitangent.Cross(normal).LengthSquared() != 0.0 {
		bitangent = bitangent.Sub(normal.MulScalar(normal.Dot(bitangent))).NormalizedOrZero()
	}

	return tangent.NormalizedOrZero(), bitangent.NormalizedOrZero()
}
