// File: pool/storage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Block storage backends. A Storage hands out the raw byte buffers that
// back pool blocks and takes them back when the pool is closed.

package pool

// Storage abstracts raw block memory.
//
// Buffers never move after Alloc. Free is called once per buffer, only
// from FixedPool.Close.
type Storage interface {
	// Alloc returns a zeroed buffer of exactly n bytes.
	Alloc(n int) ([]byte, error)

	// Free returns a buffer obtained from Alloc.
	Free(buf []byte) error
}

// heapStorage allocates blocks on the Go heap. The pool keeps every
// buffer referenced until Close, so the collector reclaims them together
// with the pool.
type heapStorage struct{}

// HeapStorage returns the default, garbage-collected block storage.
func HeapStorage() Storage { return heapStorage{} }

func (heapStorage) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }

func (heapStorage) Free([]byte) error { return nil }
