package libc

import (
	"github.com/zigu-os/freestand/heap"
)

// CompareFunc orders the elements at a and b: negative if a sorts first, positive if b does
type CompareFunc func(a, b heap.Ptr) int

// Qsort sorts nmemb elements of size bytes starting at base. It is an insertion sort: stable,
// O(n²) comparisons, and free of allocations inside the arena. Elements of any size are swapped
// whole. It returns the number of swaps performed, which is 0 for input that is already sorted.
func (r *Runtime) Qsort(base heap.Ptr, nmemb, size int, compar CompareFunc) int {
	if nmemb < 2 || size <= 0 {
		return 0
	}

	data := r.span(base, nmemb*size)
	scratch := make([]byte, size)
	element := func(i int) heap.Ptr {
		return base + heap.Ptr(i*size)
	}

	swaps := 0
	for i := 1; i < nmemb; i++ {
		for j := i; j > 0 && compar(element(j), element(j-1)) < 0; j-- {
			current := data[j*size : (j+1)*size]
			previous := data[(j-1)*size : j*size]

			copy(scratch, current)
			copy(current, previous)
			copy(previous, scratch)
			swaps++
		}
	}

	return swaps
}
