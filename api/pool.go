// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract allocation APIs: raw slot pools and typed object pools.

package api

import "unsafe"

// RawPool hands out fixed-size, uninitialized memory slots.
//
// A slot returned by Acquire holds SlotSize() bytes of unspecified content
// (fresh or previously released). Release returns a slot to the pool;
// callers must not touch a slot after releasing it. RawPool never manages
// element lifetime.
//
// Implementations are single-owner: one goroutine drives the pool at a
// time, no internal locking exists on the hot path.
type RawPool interface {
	// Acquire returns a pointer to one free slot, growing the pool's
	// block chain if needed. Fails only when block storage cannot be
	// allocated; the pool is left unchanged in that case.
	Acquire() (unsafe.Pointer, error)

	// Release pushes a previously acquired slot back for reuse.
	// A nil pointer is a no-op. Double release and foreign pointers are
	// caller contract violations unless the implementation detects them.
	Release(p unsafe.Pointer)

	// SlotSize returns the fixed byte size of every slot.
	SlotSize() uintptr

	// Stats exposes allocation accounting for observability.
	Stats() PoolStats

	// Close releases all block storage. Outstanding slots are invalidated.
	Close() error
}

// TypedPool layers object lifetime on top of raw slots.
type TypedPool[T any] interface {
	// Construct acquires a slot and places v into it, returning the
	// typed handle to the live object.
	Construct(v T) (*T, error)

	// Destruct runs the element teardown exactly once, then recycles
	// the slot. A nil handle is a no-op.
	Destruct(obj *T)

	// SlotSize returns the byte size backing each element.
	SlotSize() uintptr
}
