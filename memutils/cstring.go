package memutils

import "bytes"

// The functions in this file treat a byte slice as a NUL-terminated string starting at index 0. If a
// slice contains no NUL, the end of the slice is treated as the terminator so that no function reads
// outside the view it was handed. Functions that write (Strcpy, Strncpy, Strcat) panic with an index
// error when the destination is too small, rather than writing past it.

func at(s []byte, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// Strlen returns the number of bytes before the terminator
func Strlen(s []byte) int {
	n := bytes.IndexByte(s, 0)
	if n < 0 {
		return len(s)
	}
	return n
}

// Strnlen returns the number of bytes before the terminator, examining at most maxLen bytes
func Strnlen(s []byte, maxLen int) int {
	if maxLen < len(s) {
		s = s[:maxLen]
	}
	return Strlen(s)
}

// Strcmp compares two strings as unsigned chars and returns the difference between the first
// pair of bytes that differ
func Strcmp(a, b []byte) int {
	for i := 0; ; i++ {
		ca, cb := at(a, i), at(b, i)
		if ca != cb || ca == 0 {
			return int(ca) - int(cb)
		}
	}
}

// Strncmp is Strcmp limited to the first n bytes
func Strncmp(a, b []byte, n int) int {
	for i := 0; i < n; i++ {
		ca, cb := at(a, i), at(b, i)
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == 0 {
			return 0
		}
	}

	return 0
}

// Strchr returns the index of the first occurrence of c, or -1. Searching for 0 returns the
// index of the terminator.
func Strchr(s []byte, c byte) int {
	n := Strlen(s)
	if c == 0 {
		return n
	}
	return bytes.IndexByte(s[:n], c)
}

// Strrchr returns the index of the last occurrence of c, or -1. Searching for 0 returns the
// index of the terminator.
func Strrchr(s []byte, c byte) int {
	n := Strlen(s)
	if c == 0 {
		return n
	}
	return bytes.LastIndexByte(s[:n], c)
}

// Strcpy copies src, including its terminator, to dst and returns the length of the copied string
func Strcpy(dst, src []byte) int {
	n := Strlen(src)
	copy(dst[:n], src)
	dst[n] = 0
	return n
}

// Strncpy copies at most n bytes of src to dst. If src is shorter than n, the remainder of the n
// bytes is filled with NUL; if it is not, dst is not terminated.
func Strncpy(dst, src []byte, n int) {
	i := copy(dst[:n], src[:Strnlen(src, n)])
	for ; i < n; i++ {
		dst[i] = 0
	}
}

// Strstr returns the index of the first occurrence of needle in haystack, or -1. An empty needle
// matches at index 0.
func Strstr(haystack, needle []byte) int {
	needle = needle[:Strlen(needle)]
	if len(needle) == 0 {
		return 0
	}
	return bytes.Index(haystack[:Strlen(haystack)], needle)
}

// Strcat appends src, including its terminator, to the end of the string in dst and returns the
// length of the combined string
func Strcat(dst, src []byte) int {
	start := Strlen(dst)
	return start + Strcpy(dst[start:], src)
}
