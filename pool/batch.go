// Package pool — bulk construct/destruct without extra bookkeeping.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Batch collects live handles from one typed pool so a caller can tear a
// whole working set down in one call. Not thread-safe, like the pool it
// feeds from.

package pool

// Batch is a minimal collection of live handles from a single Pool[T].
type Batch[T any] struct {
	pool *Pool[T]
	objs []*T
}

// NewBatch creates a batch with the given capacity hint.
func NewBatch[T any](p *Pool[T], capacity int) *Batch[T] {
	return &Batch[T]{
		pool: p,
		objs: make([]*T, 0, capacity),
	}
}

// Construct builds one element and tracks its handle.
func (b *Batch[T]) Construct(v T) (*T, error) {
	obj, err := b.pool.Construct(v)
	if err != nil {
		return nil, err
	}
	b.objs = append(b.objs, obj)
	return obj, nil
}

// Len returns the number of live handles in the batch.
func (b *Batch[T]) Len() int {
	return len(b.objs)
}

// Get retrieves the handle at index.
func (b *Batch[T]) Get(idx int) *T {
	return b.objs[idx]
}

// DestructAll destroys every tracked element, newest first, and resets
// the batch.
func (b *Batch[T]) DestructAll() {
	for i := len(b.objs) - 1; i >= 0; i-- {
		b.pool.Destruct(b.objs[i])
		b.objs[i] = nil
	}
	b.objs = b.objs[:0]
}

// Reset forgets all handles without destructing them.
func (b *Batch[T]) Reset() {
	for i := range b.objs {
		b.objs[i] = nil
	}
	b.objs = b.objs[:0]
}
