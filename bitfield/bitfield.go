// Package bitfield provides the mask/extract/pack helpers used by the packed
// game encodings. Every helper panics with an error wrapping ErrPrecondition
// when asked for a field that does not fit the word.
package bitfield

import (
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by every panic raised for a field that does not fit.
var ErrPrecondition = errors.New("bitfield: precondition violated")

// Field is one value to pack together with its width in bits.
type Field struct {
	Value uint64
	Size  int
}

// F is shorthand for Field{Value: value, Size: size}.
func F(value uint64, size int) Field {
	return Field{Value: value, Size: size}
}

func checkRange(start, size, width int) {
	if start < 0 || size < 0 || start+size > width {
		panic(fmt.Errorf("%w: range [%d, %d) outside a %d-bit word", ErrPrecondition, start, start+size, width))
	}
}

// Mask32 returns a mask with bits [start, start+size) set.
func Mask32(start, size int) uint32 {
	checkRange(start, size, 32)
	return ((uint32(1) << size) - 1) << start
}

// Extract32 returns the size bits of b starting at start, shifted down to bit 0.
func Extract32(b uint32, start, size int) uint32 {
	return (b & Mask32(start, size)) >> start
}

// Pack32 packs the fields one after another, starting at bit 0.
func Pack32(fields ...Field) uint32 {
	return uint32(pack(32, fields))
}

// Mask64 returns a mask with bits [start, start+size) set.
func Mask64(start, size int) uint64 {
	checkRange(start, size, 64)
	return ((uint64(1) << size) - 1) << start
}

// Extract64 returns the size bits of b starting at start, shifted down to bit 0.
func Extract64(b uint64, start, size int) uint64 {
	return (b & Mask64(start, size)) >> start
}

// Pack64 packs the fields one after another, starting at bit 0.
func Pack64(fields ...Field) uint64 {
	return pack(64, fields)
}

func pack(width int, fields []Field) uint64 {
	if len(fields) == 0 {
		panic(fmt.Errorf("%w: nothing to pack", ErrPrecondition))
	}
	var out uint64
	start := 0
	for i, f := range fields {
		if f.Size <= 0 || start+f.Size > width {
			panic(fmt.Errorf("%w: field %d of size %d does not fit at bit %d of a %d-bit word", ErrPrecondition, i, f.Size, start, width))
		}
		if f.Value>>f.Size != 0 {
			panic(fmt.Errorf("%w: value %d does not fit in %d bits", ErrPrecondition, f.Value, f.Size))
		}
		out |= f.Value << start
		start += f.Size
	}
	return out
}
