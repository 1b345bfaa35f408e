// File: pool/typed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed construct/destruct layer over raw slots. This is the only place
// element lifetime is managed; FixedPool itself never constructs or
// destroys elements.

package pool

import (
	"unsafe"

	"github.com/momentics/slabpool/api"
)

// Pool is a typed object pool over FixedPool.
//
// Slot memory is raw storage the garbage collector does not scan, so
// element types must not be the sole owners of GC-managed memory: any
// pointer stored inside a pooled element has to stay reachable from
// ordinary Go memory for as long as the element is checked out.
type Pool[T any] struct {
	raw  *FixedPool
	fini func(*T)
}

var _ api.TypedPool[int] = (*Pool[int])(nil)

// New creates a typed pool sized for T.
func New[T any](cfg Config) (*Pool[T], error) {
	return NewWithFinalizer[T](cfg, nil)
}

// NewWithFinalizer creates a typed pool whose Destruct runs fini exactly
// once per element before the slot is recycled. fini may be nil.
func NewWithFinalizer[T any](cfg Config, fini func(*T)) (*Pool[T], error) {
	var zero T
	raw, err := NewFixedPool(unsafe.Sizeof(zero), cfg)
	if err != nil {
		return nil, err
	}
	return &Pool[T]{raw: raw, fini: fini}, nil
}

// Construct acquires a slot and places v into it. The whole element is
// overwritten, so stale bytes from earlier occupants never leak through.
func (p *Pool[T]) Construct(v T) (*T, error) {
	slot, err := p.raw.Acquire()
	if err != nil {
		return nil, err
	}
	obj := (*T)(slot)
	*obj = v
	return obj, nil
}

// Destruct runs the finalizer, clears the element and recycles its slot.
// A nil handle is a no-op. The handle must not be used afterwards.
func (p *Pool[T]) Destruct(obj *T) {
	if obj == nil {
		return
	}
	if p.fini != nil {
		p.fini(obj)
	}
	var zero T
	*obj = zero
	p.raw.Release(unsafe.Pointer(obj))
}

// SlotSize returns the byte size backing each element:
// max(sizeof(T), pointer size).
func (p *Pool[T]) SlotSize() uintptr { return p.raw.SlotSize() }

// Raw exposes the underlying slot pool.
func (p *Pool[T]) Raw() *FixedPool { return p.raw }

// Stats returns the underlying pool's accounting snapshot.
func (p *Pool[T]) Stats() api.PoolStats { return p.raw.Stats() }

// Close tears down the pool and all its blocks. Outstanding elements are
// invalidated without running finalizers.
func (p *Pool[T]) Close() error { return p.raw.Close() }
