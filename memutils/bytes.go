package memutils

// Copy copies n bytes from src to dst. The regions should not overlap; use Move when they might.
func Copy(dst, src []byte, n int) {
	copy(dst[:n], src[:n])
}

// Move copies n bytes from src to dst. The two slices may view overlapping parts of the same
// backing array: the builtin copy picks the iteration direction from the slice addresses, so the
// destination always ends up holding the original source bytes.
func Move(dst, src []byte, n int) {
	copy(dst[:n], src[:n])
}

// Set fills the first n bytes of s with c
func Set(s []byte, c byte, n int) {
	region := s[:n]
	for i := range region {
		region[i] = c
	}
}

// Compare compares the first n bytes of a and b as unsigned chars. It returns the difference
// between the first pair of bytes that differ, or 0 if the regions are equal.
func Compare(a, b []byte, n int) int {
	a, b = a[:n], b[:n]
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}

	return 0
}
