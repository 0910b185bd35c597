package libc

import (
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/memutils"
)

// Memcpy copies n bytes from src to dst and returns dst. The regions must not overlap.
func (r *Runtime) Memcpy(dst, src heap.Ptr, n int) heap.Ptr {
	if n == 0 {
		return dst
	}
	memutils.Copy(r.span(dst, n), r.span(src, n), n)
	return dst
}

// Memmove is Memcpy for regions that may overlap
func (r *Runtime) Memmove(dst, src heap.Ptr, n int) heap.Ptr {
	if n == 0 {
		return dst
	}
	memutils.Move(r.span(dst, n), r.span(src, n), n)
	return dst
}

// Memset fills n bytes at dst with the low byte of c and returns dst
func (r *Runtime) Memset(dst heap.Ptr, c int, n int) heap.Ptr {
	if n == 0 {
		return dst
	}
	memutils.Set(r.span(dst, n), byte(c), n)
	return dst
}

// Memcmp compares n bytes as unsigned values and returns their first difference, or 0
func (r *Runtime) Memcmp(a, b heap.Ptr, n int) int {
	if n == 0 {
		return 0
	}
	return memutils.Compare(r.span(a, n), r.span(b, n), n)
}

// Strlen returns the number of bytes before the terminator of s
func (r *Runtime) Strlen(s heap.Ptr) int {
	return memutils.Strlen(r.str(s))
}

func (r *Runtime) Strnlen(s heap.Ptr, maxLen int) int {
	return memutils.Strnlen(r.str(s), maxLen)
}

// Strcmp compares two NUL-terminated strings bytewise as unsigned values
func (r *Runtime) Strcmp(a, b heap.Ptr) int {
	return memutils.Strcmp(r.str(a), r.str(b))
}

func (r *Runtime) Strncmp(a, b heap.Ptr, n int) int {
	if n == 0 {
		return 0
	}
	return memutils.Strncmp(r.str(a), r.str(b), n)
}

// Strchr returns the address of the first c in s, or Null. Searching for 0 finds the terminator.
func (r *Runtime) Strchr(s heap.Ptr, c int) heap.Ptr {
	return offsetOrNull(s, memutils.Strchr(r.str(s), byte(c)))
}

// Strrchr returns the address of the last c in s, or Null
func (r *Runtime) Strrchr(s heap.Ptr, c int) heap.Ptr {
	return offsetOrNull(s, memutils.Strrchr(r.str(s), byte(c)))
}

// Strcpy copies src including its terminator into dst and returns dst
func (r *Runtime) Strcpy(dst, src heap.Ptr) heap.Ptr {
	memutils.Strcpy(r.str(dst), r.str(src))
	return dst
}

// Strncpy copies at most n bytes of src and pads dst with NUL up to n. dst is not terminated when
// src is n bytes or longer.
func (r *Runtime) Strncpy(dst, src heap.Ptr, n int) heap.Ptr {
	if n == 0 {
		return dst
	}
	memutils.Strncpy(r.span(dst, n), r.str(src), n)
	return dst
}

// Strstr returns the address of the first occurrence of needle in haystack, or Null. An empty
// needle matches at haystack.
func (r *Runtime) Strstr(haystack, needle heap.Ptr) heap.Ptr {
	return offsetOrNull(haystack, memutils.Strstr(r.str(haystack), r.str(needle)))
}

// Strcat appends src to the end of dst and returns dst
func (r *Runtime) Strcat(dst, src heap.Ptr) heap.Ptr {
	memutils.Strcat(r.str(dst), r.str(src))
	return dst
}

// Strdup copies s into a new block, or returns Null with errno set to ENOMEM
func (r *Runtime) Strdup(s heap.Ptr) heap.Ptr {
	length := r.Strlen(s)

	dup := r.Malloc(length + 1)
	if dup == heap.Null {
		return heap.Null
	}

	r.Memcpy(dup, s, length+1)
	return dup
}

// CString copies a Go string into a new NUL-terminated block. The caller must Free it.
func (r *Runtime) CString(s string) heap.Ptr {
	ptr := r.Malloc(len(s) + 1)
	if ptr == heap.Null {
		return heap.Null
	}

	buf := r.span(ptr, len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return ptr
}

// GoString copies the NUL-terminated string at s into a Go string
func (r *Runtime) GoString(s heap.Ptr) string {
	text := r.str(s)
	return string(text[:memutils.Strlen(text)])
}

func offsetOrNull(base heap.Ptr, index int) heap.Ptr {
	if index < 0 {
		return heap.Null
	}
	return base + heap.Ptr(index)
}
