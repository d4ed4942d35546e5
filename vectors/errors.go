package vectors

import "fmt"

// AttributeCountMismatchError is returned when the per-vertex attribute
// arrays disagree on the vertex count. All three observed lengths are
// reported for diagnostics.
type AttributeCountMismatchError struct {
	Positions int
	Normals   int
	UVs       int
}

func (e *AttributeCountMismatchError) Error() string {
	return fmt.Sprintf("vector source lengths do not match: %d positions, %d normals, %d uvs",
		e.Positions, e.Normals, e.UVs)
}

// BufferLengthMismatchError is returned by the in-place calculators when a
// view does not hold one slot per position. Buffer names which view
// disagreed.
type BufferLengthMismatchError struct {
	Buffer      string
	Len         int
	VertexCount int
}

func (e *BufferLengthMismatchError) Error() string {
	return fmt.Sprintf("%s view holds %d slots, expected %d", e.Buffer, e.Len, e.VertexCount)
}

// InvalidIndexCountError is returned when the index buffer length is not a
// multiple of 3, meaning it cannot describe a list of triangles.
type InvalidIndexCountError struct {
	Count int
}

func (e *InvalidIndexCountError) Error() string {
	return fmt.Sprintf("index count %d is not divisible by 3", e.Count)
}

// OutOfRangeError is returned when an index references a vertex past the
// end of the attribute arrays. Indices are validated up front, so a call
// that fails this way has produced no partial output.
type OutOfRangeError struct {
	Index       uint32
	VertexCount int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("vertex index %d out of range (vertex count %d)", e.Index, e.VertexCount)
}

// validateIndices checks that indices describe whole triangles and that
// every index references a valid vertex.
func validateIndices(indices []uint32, vertexCount int) error {
	if len(indices)%3 != 0 {
		return &InvalidIndexCountError{Count: len(indices)}
	}
	for _, index := range indices {
		if int(index) >= vertexCount {
			return &OutOfRangeError{Index: index, VertexCount: vertexCount}
		}
	}
	return nil
}
