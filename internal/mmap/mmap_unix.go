//go:build unix

// Package mmap reserves anonymous, private memory regions for heap arenas.
package mmap

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Supported reports whether anonymous mappings are available on this platform
const Supported = true

// Reserve maps size bytes of zeroed, private, read-write memory. The region is page aligned.
func Reserve(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap of %d bytes failed", size)
	}
	return data, nil
}

// Release unmaps a region returned by Reserve
func Release(data []byte) error {
	return errors.Wrap(unix.Munmap(data), "munmap failed")
}
