package vectors

import (
	"github.com/spaghettifunk/geometry-tools/buffer"
	"github.com/spaghettifunk/geometry-tools/math"
)

// In-place variants of the attribute calculators operating on caller-owned
// strided storage. No allocation happens beyond per-face scratch values and
// no reference to the views is retained past the call; the caller guarantees
// the buffers stay valid and correctly sized for the call's duration.

/**
 * @brief Calculates smooth per-vertex normals from the position view and
 * writes them into the normal view, which is zeroed first and fully
 * overwritten. Both views must share a length. The padding float of each
 * output slot is preserved.
 */
func UpdateSmoothNormals(positions buffer.Vec3Buffer, normals buffer.Vec3Buffer, indices []uint32) error {
	if positions.Len() != normals.Len() {
		return &BufferLengthMismatchError{
			Buffer:      "normal",
			Len:         normals.Len(),
			VertexCount: positions.Len(),
		}
	}
	if err := validateIndices(indices, positions.Len()); err != nil {
		return err
	}

	for i := 0; i < normals.Len(); i++ {
		normals.Set(i, math.Vec3{})
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := int(indices[i+0])
		i1 := int(indices[i+1])
		i2 := int(indices[i+2])

		normal := faceNormal(positions.At(i0), positions.At(i1), positions.At(i2))

		normals.Set(i0, normals.At(i0).Add(normal))
		normals.Set(i1, normals.At(i1).Add(normal))
		normals.Set(i2, normals.At(i2).Add(normal))
	}

	for i := 0; i < normals.Len(); i++ {
		normals.Set(i, normals.At(i).NormalizedOrZero())
	}
	return nil
}

/**
 * @brief Calculates per-vertex tangents and bitangents from the position,
 * normal and UV views and writes them into the two output views, which are
 * fully overwritten. All five views must share a length.
 */
func UpdateTangentsBitangents(positions, normals buffer.Vec3Buffer, uvs buffer.Vec2Buffer, indices []uint32, outTangents, outBitangents buffer.Vec3Buffer) error {
	if positions.Len() != normals.Len() || positions.Len() != uvs.Len() {
		return &AttributeCountMismatchError{
			Positions: positions.Len(),
			Normals:   normals.Len(),
			UVs:       uvs.Len(),
		}
	}
	if outTangents.Len() != positions.Len() {
		return &BufferLengthMismatchError{
			Buffer:      "tangent",
			Len:         outTangents.Len(),
			VertexCount: positions.Len(),
		}
	}
	if outBitangents.Len() != positions.Len() {
		return &BufferLengthMismatchError{
			Buffer:      "bitangent",
			Len:         outBitangents.Len(),
			VertexCount: positions.Len(),
		}
	}
	if err := validateIndices(indices, positions.Len()); err != nil {
		return err
	}

	for i := 0; i < positions.Len(); i++ {
		outTangents.Set(i, math.Vec3{})
		outBitangents.Set(i, math.Vec3{})
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := int(indices[i+0])
		i1 := int(indices[i+1])
		i2 := int(indices[i+2])

		tangent, bitangent := faceTangentBitangent(
			positions.At(i0), positions.At(i1), positions.At(i2),
			uvs.At(i0), uvs.At(i1), uvs.At(i2),
		)

		outTangents.Set(i0, outTangents.At(i0).Add(tangent))
		outTangents.Set(i1, outTangents.At(i1).Add(tangent))
		outTangents.Set(i2, outTangents.At(i2).Add(tangent))

		outBitangents.Set(i0, outBitangents.At(i0).Add(bitangent))
		outBitangents.Set(i1, outBitangents.At(i1).Add(bitangent))
		outBitangents.Set(i2, outBitangents.At(i2).Add(bitangent))
	}

	for i := 0; i < positions.Len(); i++ {
		tangent, bitangent := finalizeTangentBitangent(outTangents.At(i), outBitangents.At(i), normals.At(i))
		outTangents.Set(i, tangent)
		outBitangents.Set(i, bitangent)
	}
	return nil
}
