//go:build !unix

package mmap

import "github.com/cockroachdb/errors"

// Supported reports whether anonymous mappings are available on this platform
const Supported = false

var errUnsupported = errors.New("anonymous mappings are not supported on this platform")

// Reserve maps size bytes of zeroed, private, read-write memory. The region is page aligned.
func Reserve(size int) ([]byte, error) {
	return nil, errUnsupported
}

// Release unmaps a region returned by Reserve
func Release(data []byte) error {
	return errUnsupported
}
