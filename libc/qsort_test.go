package libc_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/libc"
)

func writeInts(t *testing.T, r *libc.Runtime, values []int32) heap.Ptr {
	base := r.Malloc(len(values) * 4)
	require.NotEqual(t, heap.Null, base)

	memory := r.Heap().Memory()
	for i, v := range values {
		binary.LittleEndian.PutUint32(memory[int(base)+i*4:], uint32(v))
	}
	return base
}

func readInts(r *libc.Runtime, base heap.Ptr, n int) []int32 {
	memory := r.Heap().Memory()
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(memory[int(base)+i*4:]))
	}
	return values
}

func compareInts(r *libc.Runtime) libc.CompareFunc {
	memory := r.Heap().Memory()
	return func(a, b heap.Ptr) int {
		x := int32(binary.LittleEndian.Uint32(memory[a:]))
		y := int32(binary.LittleEndian.Uint32(memory[b:]))
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

func TestQsortSortedInputDoesNotSwap(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	base := writeInts(t, r, []int32{-3, 1, 1, 2, 8, 13})
	require.Zero(t, r.Qsort(base, 6, 4, compareInts(r)))
	require.Equal(t, []int32{-3, 1, 1, 2, 8, 13}, readInts(r, base, 6))
}

func TestQsortReversedInputIsWorstCase(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	for k := 0; k <= 12; k++ {
		values := make([]int32, k)
		for i := range values {
			values[i] = int32(k - i)
		}

		base := writeInts(t, r, values)
		require.Equal(t, k*(k-1)/2, r.Qsort(base, k, 4, compareInts(r)), "length %d", k)

		sorted := readInts(r, base, k)
		for i := range sorted {
			require.Equal(t, int32(i+1), sorted[i])
		}
		r.Free(base)
	}
}

func TestQsortIsStable(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	// Sort pairs by their first value only
	base := writeInts(t, r, []int32{2, 0, 1, 1, 2, 2, 1, 3})
	memory := r.Heap().Memory()
	swaps := r.Qsort(base, 4, 8, func(a, b heap.Ptr) int {
		return int(int32(binary.LittleEndian.Uint32(memory[a:]))) - int(int32(binary.LittleEndian.Uint32(memory[b:])))
	})

	require.Equal(t, 3, swaps)
	require.Equal(t, []int32{1, 1, 1, 3, 2, 0, 2, 2}, readInts(r, base, 8))
}

func TestQsortLargeElements(t *testing.T) {
	r := newRuntime(t, nil, 1<<16)

	const size = 300
	base := r.Malloc(3 * size)
	for i, fill := range []byte{'c', 'a', 'b'} {
		r.Memset(base+heap.Ptr(i*size), int(fill), size)
	}

	r.Qsort(base, 3, size, func(a, b heap.Ptr) int {
		return r.Memcmp(a, b, 1)
	})

	payload, err := r.Heap().Payload(base)
	require.NoError(t, err)
	for i, want := range []byte{'a', 'b', 'c'} {
		element := payload[i*size : (i+1)*size]
		for _, c := range element {
			require.Equal(t, want, c)
		}
	}
}
