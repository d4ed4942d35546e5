// Package buffer provides bounds-checked views over caller-owned float32
// storage, so a host managing its own memory (for example across a language
// boundary) can hand flat arrays to the attribute calculators without any
// copying or allocation on this side.
//
// 3-component vectors are stored one per 4-float slot, mirroring the 16-byte
// alignment of SIMD vector types on the other side of such a boundary. The
// fourth float of each slot is ignored on read and preserved on write, so a
// caller that packs data into the padding keeps it. Texture coordinates use
// plain 2-float slots.
package buffer

import (
	"fmt"

	"github.com/spaghettifunk/geometry-tools/math"
)

const (
	// Vec3Stride is the number of floats occupied by one 3-component vector.
	Vec3Stride = 4
	// Vec2Stride is the number of floats occupied by one texture coordinate.
	Vec2Stride = 2
)

// SlotCountError is returned when the supplied storage cannot hold the
// requested number of slots.
type SlotCountError struct {
	Needed int
	Got    int
}

func (e *SlotCountError) Error() string {
	return fmt.Sprintf("buffer too small: need %d floats, got %d", e.Needed, e.Got)
}

// Vec3Buffer is a view of count 3-component vectors stored in 4-float slots.
// The zero value is an empty buffer.
type Vec3Buffer struct {
	data  []float32
	count int
}

// NewVec3Buffer wraps data as a view of count vectors. data must hold at
// least count*4 floats.
func NewVec3Buffer(data []float32, count int) (Vec3Buffer, error) {
	if needed := count * Vec3Stride; len(data) < needed {
		return Vec3Buffer{}, &SlotCountError{Needed: needed, Got: len(data)}
	}
	return Vec3Buffer{data: data, count: count}, nil
}

// Len returns the number of vectors in the view.
func (b Vec3Buffer) Len() int {
	return b.count
}

// At returns the vector in slot i. The padding float is not read. Panics
// when i is outside the view, even if the backing slice extends further.
func (b Vec3Buffer) At(i int) math.Vec3 {
	b.check(i)
	base := i * Vec3Stride
	return math.Vec3{X: b.data[base], Y: b.data[base+1], Z: b.data[base+2]}
}

// Set writes v into slot i, leaving the padding float untouched. Panics
// when i is outside the view, even if the backing slice extends further.
func (b Vec3Buffer) Set(i int, v math.Vec3) {
	b.check(i)
	base := i * Vec3Stride
	b.data[base] = v.X
	b.data[base+1] = v.Y
	b.data[base+2] = v.Z
}

func (b Vec3Buffer) check(i int) {
	if i < 0 || i >= b.count {
		panic(fmt.Sprintf("slot index %d out of range (count %d)", i, b.count))
	}
}

// Vec2Buffer is a view of count texture coordinates stored in 2-float slots.
type Vec2Buffer struct {
	data  []float32
	count int
}

// NewVec2Buffer wraps data as a view of count coordinates. data must hold
// at least count*2 floats.
func NewVec2Buffer(data []float32, count int) (Vec2Buffer, error) {
	if needed := count * Vec2Stride; len(data) < needed {
		return Vec2Buffer{}, &SlotCountError{Needed: needed, Got: len(data)}
	}
	return Vec2Buffer{data: data, count: count}, nil
}

// Len returns the number of coordinates in the view.
func (b Vec2Buffer) Len() int {
	return b.count
}

// At returns the coordinate in slot i. Panics when i is outside the view.
func (b Vec2Buffer) At(i int) math.Vec2 {
	b.check(i)
	base := i * Vec2Stride
	return math.Vec2{X: b.data[base], Y: b.data[base+1]}
}

// Set writes v into slot i. Panics when i is outside the view.
func (b Vec2Buffer) Set(i int, v math.Vec2) {
	b.check(i)
	base := i * Vec2Stride
	b.data[base] = v.X
	b.data[base+1] = v.Y
}

func (b Vec2Buffer) check(i int) {
	if i < 0 || i >= b.count {
		panic(fmt.Sprintf("slot index %d out of range (count %d)", i, b.count))
	}
}
