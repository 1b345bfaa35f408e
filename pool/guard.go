// File: pool/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Hardened wrapper for FixedPool. Upgrades the raw pool's undefined
// caller-contract violations (double release, foreign pointers) into
// detected, structured errors, and quarantines released slots in a FIFO
// so premature reuse surfaces use-after-free bugs in debug runs.

package pool

import (
	"fmt"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/momentics/slabpool/api"
)

// GuardPool wraps a FixedPool with checkout tracking and delayed reuse.
// It costs one map entry per checked-out slot and is meant for debug and
// hardening builds, not the production hot path.
type GuardPool struct {
	raw        *FixedPool
	checkedOut map[unsafe.Pointer]struct{}
	quarantine *queue.Queue // released slots parked before recycling
	depth      int

	doubleReleases  int64
	foreignReleases int64
}

// NewGuardPool wraps raw. quarantineDepth is the number of released slots
// held back from reuse; zero disables quarantining.
func NewGuardPool(raw *FixedPool, quarantineDepth int) *GuardPool {
	if quarantineDepth < 0 {
		quarantineDepth = 0
	}
	return &GuardPool{
		raw:        raw,
		checkedOut: make(map[unsafe.Pointer]struct{}),
		quarantine: queue.New(),
		depth:      quarantineDepth,
	}
}

// Acquire forwards to the raw pool and records the checkout.
func (g *GuardPool) Acquire() (unsafe.Pointer, error) {
	p, err := g.raw.Acquire()
	if err != nil {
		return nil, err
	}
	g.checkedOut[p] = struct{}{}
	return p, nil
}

// Release validates ptr before recycling it. A nil ptr is a no-op.
// Foreign pointers and double releases are rejected with structured
// errors and leave the pool unchanged.
func (g *GuardPool) Release(ptr unsafe.Pointer) error {
	if ptr == nil {
		return nil
	}
	if !g.raw.owns(ptr) {
		g.foreignReleases++
		return api.NewError(api.ErrCodeForeignPointer, api.ErrForeignPointer.Error()).
			WithContext("addr", fmt.Sprintf("%#x", uintptr(ptr)))
	}
	if _, ok := g.checkedOut[ptr]; !ok {
		g.doubleReleases++
		return api.NewError(api.ErrCodeDoubleRelease, api.ErrDoubleRelease.Error()).
			WithContext("addr", fmt.Sprintf("%#x", uintptr(ptr)))
	}
	delete(g.checkedOut, ptr)
	g.quarantine.Add(ptr)
	for g.quarantine.Length() > g.depth {
		old := g.quarantine.Remove().(unsafe.Pointer)
		g.raw.Release(old)
	}
	return nil
}

// Flush drains the quarantine into the raw free list.
func (g *GuardPool) Flush() {
	for g.quarantine.Length() > 0 {
		g.raw.Release(g.quarantine.Remove().(unsafe.Pointer))
	}
}

// Violations reports how many double and foreign releases were rejected.
func (g *GuardPool) Violations() (doubleReleases, foreignReleases int64) {
	return g.doubleReleases, g.foreignReleases
}

// CheckedOut returns the number of slots currently checked out.
func (g *GuardPool) CheckedOut() int { return len(g.checkedOut) }

// SlotSize returns the wrapped pool's slot size.
func (g *GuardPool) SlotSize() uintptr { return g.raw.SlotSize() }

// Stats returns the wrapped pool's accounting snapshot.
func (g *GuardPool) Stats() api.PoolStats { return g.raw.Stats() }

// Close flushes the quarantine and closes the wrapped pool.
func (g *GuardPool) Close() error {
	g.Flush()
	g.checkedOut = nil
	return g.raw.Close()
}
