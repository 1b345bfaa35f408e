// File: pool/storage_stub.go
//go:build !linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without the mmap backend: heap storage.

package pool

// MmapStorage falls back to heap-backed storage on this platform.
func MmapStorage() Storage { return HeapStorage() }
