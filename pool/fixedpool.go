// File: pool/fixedpool.go
// Package pool implements fixed-size slot allocation over a chain of blocks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/slabpool/api"
	"github.com/momentics/slabpool/internal/normalize"
)

// ptrSize is the minimum slot payload: a free slot must be able to hold
// one free-list link without spilling into the next slot.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Config holds parameters immutable for a pool's lifetime.
type Config struct {
	InitialBlockCapacity int     // slots in the first block
	MaxBlockCapacity     int     // growth saturation point, in slots
	Storage              Storage // block backend; HeapStorage when nil
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		InitialBlockCapacity: 16,
		MaxBlockCapacity:     1024,
		Storage:              HeapStorage(),
	}
}

// FixedPool carves fixed-size slots out of large pre-allocated blocks and
// recycles released slots through an intrusive LIFO free list threaded
// through the slots' own memory.
//
// FixedPool is single-owner: exactly one goroutine drives it at a time.
// Release preconditions (same-pool origin, no double release) are caller
// contract; wrap the pool in a GuardPool to have them checked.
type FixedPool struct {
	slotSize uintptr
	maxCap   int
	storage  Storage

	blocks   []*block       // oldest first; tail is the carving block
	tailUsed int            // slots carved from the tail block so far
	freeHead unsafe.Pointer // most recently released slot, nil when empty
	freeLen  int

	totalAcquire int64
	totalRelease int64
	grows        int
	closed       bool
}

// Compile-time interface check.
var _ api.RawPool = (*FixedPool)(nil)

// NewFixedPool creates a pool of elemSize-byte slots. The effective slot
// size is raised to the size of a native pointer when elemSize is
// smaller, so a free slot can always carry its link. The initial block is
// allocated eagerly; storage failure propagates and leaves nothing behind.
func NewFixedPool(elemSize uintptr, cfg Config) (*FixedPool, error) {
	if elemSize == 0 {
		return nil, api.ErrInvalidSlotSize
	}
	initial, max, err := normalize.Capacity(cfg.InitialBlockCapacity, cfg.MaxBlockCapacity)
	if err != nil {
		return nil, err
	}
	st := cfg.Storage
	if st == nil {
		st = HeapStorage()
	}
	slotSize := elemSize
	if slotSize < ptrSize {
		slotSize = ptrSize
	}
	first, err := newBlock(initial, slotSize, st)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrStorageExhausted, err)
	}
	return &FixedPool{
		slotSize: slotSize,
		maxCap:   max,
		storage:  st,
		blocks:   []*block{first},
	}, nil
}

// SlotSize returns the fixed byte size of every slot:
// max(element size, pointer size).
func (p *FixedPool) SlotSize() uintptr { return p.slotSize }

// Acquire returns one free slot in O(1) amortized time. Priority order:
// free-list head, unused tail of the newest block, then a freshly grown
// block. The returned memory is uninitialized or stale.
func (p *FixedPool) Acquire() (unsafe.Pointer, error) {
	if p.closed {
		return nil, api.ErrPoolClosed
	}
	if p.freeHead != nil {
		slot := p.freeHead
		p.freeHead = *(*unsafe.Pointer)(slot)
		p.freeLen--
		p.totalAcquire++
		return slot, nil
	}
	tail := p.blocks[len(p.blocks)-1]
	if p.tailUsed == tail.capacity {
		if err := p.grow(); err != nil {
			return nil, err
		}
		tail = p.blocks[len(p.blocks)-1]
	}
	slot := tail.slot(p.tailUsed)
	p.tailUsed++
	p.totalAcquire++
	return slot, nil
}

// grow appends one block of min(2*tailCap, maxCap) slots. On storage
// failure the chain and tailUsed stay untouched.
func (p *FixedPool) grow() error {
	prev := p.blocks[len(p.blocks)-1].capacity
	nb, err := newBlock(nextBlockCapacity(prev, p.maxCap), p.slotSize, p.storage)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrStorageExhausted, err)
	}
	p.blocks = append(p.blocks, nb)
	p.tailUsed = 0
	p.grows++
	return nil
}

// Release pushes ptr onto the free list. The current head is written into
// the first pointer-size bytes at ptr, destroying any element residue
// there. A nil ptr is a no-op.
func (p *FixedPool) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	*(*unsafe.Pointer)(ptr) = p.freeHead
	p.freeHead = ptr
	p.freeLen++
	p.totalRelease++
}

// owns reports whether ptr is a slot boundary inside any owned block.
func (p *FixedPool) owns(ptr unsafe.Pointer) bool {
	for _, b := range p.blocks {
		if b.owns(ptr) {
			return true
		}
	}
	return false
}

// Stats returns a snapshot of allocation accounting.
func (p *FixedPool) Stats() api.PoolStats {
	return api.PoolStats{
		SlotSize:     p.slotSize,
		TotalAcquire: p.totalAcquire,
		TotalRelease: p.totalRelease,
		InUse:        p.totalAcquire - p.totalRelease,
		Blocks:       len(p.blocks),
		TailUsed:     p.tailUsed,
		FreeListLen:  p.freeLen,
		Grows:        p.grows,
	}
}

// Close returns every block buffer to storage. All outstanding slots are
// invalidated; no element teardown runs. Close is idempotent.
func (p *FixedPool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	var firstErr error
	for _, b := range p.blocks {
		if err := b.free(p.storage); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.blocks = nil
	p.freeHead = nil
	p.freeLen = 0
	return firstErr
}
