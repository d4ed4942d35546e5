package vectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/geometry-tools/math"
)

func cubePositions() []math.Vec3 {
	return []math.Vec3{
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: 0.5},
	}
}

func cubeNormals() []math.Vec3 {
	return []math.Vec3{
		{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1},
		{Y: 1}, {Y: 1}, {Y: 1}, {Y: 1},
		{Z: -1}, {Z: -1}, {Z: -1}, {Z: -1},
		{Y: -1}, {Y: -1}, {Y: -1}, {Y: -1},
		{X: 1}, {X: 1}, {X: 1}, {X: 1},
		{X: -1}, {X: -1}, {X: -1}, {X: -1},
	}
}

func cubeUVs() []math.Vec2 {
	return []math.Vec2{
		{X: 0.375, Y: 1.0}, {X: 0.625, Y: 1.0},
		{X: 0.375, Y: 0.75}, {X: 0.625, Y: 0.75},
		{X: 0.375, Y: 0.75}, {X: 0.625, Y: 0.75},
		{X: 0.375, Y: 0.5}, {X: 0.625, Y: 0.5},
		{X: 0.375, Y: 0.5}, {X: 0.625, Y: 0.5},
		{X: 0.375, Y: 0.25}, {X: 0.625, Y: 0.25},
		{X: 0.375, Y: 0.25}, {X: 0.625, Y: 0.25},
		{X: 0.375, Y: 0.0}, {X: 0.625, Y: 0.0},
		{X: 0.625, Y: 1.0}, {X: 0.875, Y: 1.0},
		{X: 0.625, Y: 0.75}, {X: 0.875, Y: 0.75},
		{X: 0.125, Y: 1.0}, {X: 0.375, Y: 1.0},
		{X: 0.125, Y: 0.75}, {X: 0.375, Y: 0.75},
	}
}

func cubeIndices() []uint32 {
	return []uint32{
		0, 1, 2, 2, 1, 3, 4, 5, 6, 6, 5, 7,
		8, 9, 10, 10, 9, 11, 12, 13, 14, 14, 13, 15,
		16, 17, 18, 18, 17, 19, 20, 21, 22, 22, 21, 23,
	}
}

func TestTangentsThreeVerticesNormalized(t *testing.T) {
	values3d := []math.Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	values2d := []math.Vec2{
		{X: 1, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: 1},
	}

	tangents, bitangents, err := CalculateTangentsBitangents(values3d, values3d, values2d, []uint32{0, 1, 2})
	require.NoError(t, err)

	// Ensure vectors are normalized.
	for i := range tangents {
		assert.InEpsilon(t, 1.0, tangents[i].Length(), epsilon)
		assert.InEpsilon(t, 1.0, bitangents[i].Length(), epsilon)
	}
}

func TestTangentsBasicCubeNoWeirdFloats(t *testing.T) {
	tangents, bitangents, err := CalculateTangentsBitangents(cubePositions(), cubeNormals(), cubeUVs(), cubeIndices())
	require.NoError(t, err)

	for i := range tangents {
		assert.InEpsilon(t, 1.0, tangents[i].Length(), epsilon)
		assert.InEpsilon(t, 1.0, bitangents[i].Length(), epsilon)
		// The sides of the cube have axis-aligned UVs, so the tangent
		// frame stays orthogonal.
		assert.InDelta(t, 0.0, tangents[i].Dot(bitangents[i]), epsilon)
	}
}

func TestTangentsNoVertices(t *testing.T) {
	tangents, bitangents, err := CalculateTangentsBitangents(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, tangents)
	assert.Empty(t, bitangents)
}

func TestTangentsIncorrectNormalsCount(t *testing.T) {
	_, _, err := CalculateTangentsBitangents(nil, []math.Vec3{{}}, nil, nil)

	var mismatch *AttributeCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Positions)
	assert.Equal(t, 1, mismatch.Normals)
	assert.Equal(t, 0, mismatch.UVs)
}

func TestTangentsIncorrectUVsCount(t *testing.T) {
	_, _, err := CalculateTangentsBitangents(nil, nil, []math.Vec2{{}}, nil)

	var mismatch *AttributeCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.UVs)
}

func TestTangentsInvalidIndexCount(t *testing.T) {
	positions := []math.Vec3{{X: 1}}
	normals := []math.Vec3{{Z: 1}}
	uvs := []math.Vec2{{}}

	_, _, err := CalculateTangentsBitangents(positions, normals, uvs, []uint32{0})

	var indexErr *InvalidIndexCountError
	require.ErrorAs(t, err, &indexErr)
	assert.Equal(t, 1, indexErr.Count)
}

func TestTangentsIndexOutOfRange(t *testing.T) {
	positions := []math.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}
	uvs := []math.Vec2{{}, {X: 1}, {Y: 1}}

	_, _, err := CalculateTangentsBitangents(positions, normals, uvs, []uint32{0, 1, 7})

	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, uint32(7), rangeErr.Index)
}

func TestTangentsSingleTrianglePinnedDirections(t *testing.T) {
	// Reference scenario: the tangent follows the V axis of this mapping
	// and the bitangent comes out along +X.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}
	uvs := []math.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
	}

	tangents, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, []uint32{0, 1, 2})
	require.NoError(t, err)

	for i := range tangents {
		assert.True(t, tangents[i].Compare(math.Vec3{X: 0, Y: 1, Z: 0}, epsilon),
			"tangent %d = %v", i, tangents[i])
		assert.True(t, bitangents[i].Compare(math.Vec3{X: 1, Y: 0, Z: 0}, epsilon),
			"bitangent %d = %v", i, bitangents[i])
	}
}

func TestTangentsDegenerateUVsFallBackToDefaults(t *testing.T) {
	// All UVs identical: zero UV area and zero-length tangent sums, so
	// every vertex receives the default axes instead of NaN.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}
	uvs := []math.Vec2{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}

	tangents, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, []uint32{0, 1, 2})
	require.NoError(t, err)

	for i := range tangents {
		assert.Equal(t, DefaultTangent, tangents[i])
		assert.Equal(t, DefaultBitangent, bitangents[i])
	}
}

func TestTangentsCancellingFacesFallBackToDefaults(t *testing.T) {
	// Vertex 0 is shared by two faces with mirrored UV deltas. Each face
	// contributes a finite tangent pair, but the contributions are exact
	// negatives, so the accumulated sums at vertex 0 cancel to zero and
	// the default axes must be substituted during finalization.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}}
	uvs := []math.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: -1, Y: 0},
		{X: -1, Y: -1},
	}
	indices := []uint32{0, 1, 2, 0, 3, 4}

	tangents, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, indices)
	require.NoError(t, err)

	assert.True(t, tangents[0].Compare(DefaultTangent, epsilon),
		"tangent 0 = %v", tangents[0])
	assert.True(t, bitangents[0].Compare(DefaultBitangent, epsilon),
		"bitangent 0 = %v", bitangents[0])

	// The unshared vertices keep their single face's directions and stay
	// unit length.
	for i := 1; i < len(tangents); i++ {
		assert.InDelta(t, 1.0, tangents[i].Length(), epsilon)
		assert.InDelta(t, 1.0, bitangents[i].Length(), epsilon)
	}
}

func TestTangentsBitangentParallelToNormalSkipsOrthogonalization(t *testing.T) {
	// When the supplied normal is parallel to the accumulated bitangent,
	// projecting the normal component out would leave nothing to
	// normalize. The bitangent must come back as a finite unit vector, not
	// a zeroed residual.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	normals := []math.Vec3{{Y: 1}, {Y: 1}, {Y: 1}}
	uvs := []math.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
	}

	tangents, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, []uint32{0, 1, 2})
	require.NoError(t, err)

	for i := range tangents {
		assert.True(t, tangents[i].Compare(math.Vec3{X: 1, Y: 0, Z: 0}, epsilon),
			"tangent %d = %v", i, tangents[i])
		assert.True(t, bitangents[i].Compare(math.Vec3{X: 0, Y: 1, Z: 0}, epsilon),
			"bitangent %d = %v", i, bitangents[i])
	}

	tangent, bitangent := finalizeTangentBitangent(
		math.NewVec3(2, 0, 0), math.NewVec3(0, 3, 0), math.NewVec3(0, 1, 0))
	assert.True(t, tangent.Compare(math.Vec3{X: 1, Y: 0, Z: 0}, epsilon))
	assert.True(t, bitangent.Compare(math.Vec3{X: 0, Y: 1, Z: 0}, epsilon))
}

func TestTangentWShouldFlip(t *testing.T) {
	// cross(tangent, bitangent) is in the opposite direction of the
	// normal. This occurs on the side with mirrored UVs.
	tangent := math.NewVec3(0, 1, 0)
	bitangent := math.NewVec3(1, 0, 0)
	normal := math.NewVec3(0, 0, 1)

	assert.Equal(t, float32(-1.0), CalculateTangentW(normal, tangent, bitangent))
}

func TestTangentWShouldNotFlip(t *testing.T) {
	// cross(tangent, bitangent) is in the same direction as the normal.
	tangent := math.NewVec3(1, 0, 0)
	bitangent := math.NewVec3(0, 1, 0)
	normal := math.NewVec3(0, 0, 1)

	assert.Equal(t, float32(1.0), CalculateTangentW(normal, tangent, bitangent))
}

func TestTangentWShouldNotBeZero(t *testing.T) {
	// cross(tangent, bitangent) is orthogonal to the normal; the sign
	// must still be 1 and never 0.
	tangent := math.NewVec3(1, 0, 0)
	bitangent := math.NewVec3(0, 1, 0)
	normal := math.NewVec3(1, 0, 0)

	assert.Equal(t, float32(1.0), CalculateTangentW(normal, tangent, bitangent))
}

func TestPackedTangentsRoundTrip(t *testing.T) {
	positions := cubePositions()
	normals := cubeNormals()
	uvs := cubeUVs()
	indices := cubeIndices()

	packed, err := CalculateTangents(positions, normals, uvs, indices)
	require.NoError(t, err)

	_, bitangents, err := CalculateTangentsBitangents(positions, normals, uvs, indices)
	require.NoError(t, err)

	// Reconstructing the bitangent as cross(normal, tangent) * w must
	// match the explicit bitangent on a well-conditioned mesh.
	for i := range packed {
		reconstructed := normals[i].Cross(packed[i].ToVec3()).MulScalar(packed[i].W)
		assert.True(t, reconstructed.Compare(bitangents[i], epsilon),
			"vertex %d: reconstructed %v, expected %v", i, reconstructed, bitangents[i])
	}
}

func TestPackedTangentsMismatchedCounts(t *testing.T) {
	_, err := CalculateTangents(nil, []math.Vec3{{}}, nil, nil)

	var mismatch *AttributeCountMismatchError
	require.ErrorAs(t, err, &mismatch)
}
