// File: pool/storage_linux.go
//go:build linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux mmap-backed block storage. Blocks live outside the Go heap and
// are unmapped explicitly on pool close.

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type mmapStorage struct{}

// MmapStorage returns block storage backed by anonymous private mappings.
func MmapStorage() Storage { return mmapStorage{} }

func (mmapStorage) Alloc(n int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap block: %w", err)
	}
	return buf, nil
}

func (mmapStorage) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("munmap block: %w", err)
	}
	return nil
}
