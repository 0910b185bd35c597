package memutils

import "golang.org/x/exp/constraints"

// BlockAlignment is the alignment, in bytes, of every block header and payload handed out by the heap
const BlockAlignment = 16

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two
func AlignUp[T constraints.Integer](value T, alignment T) T {
	return (value + alignment - 1) &^ (alignment - 1)
}

// AlignDown rounds value down to a multiple of alignment, which must be a power of two
func AlignDown[T constraints.Integer](value T, alignment T) T {
	return value &^ (alignment - 1)
}
