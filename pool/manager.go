// File: pool/manager.go
// Package pool implements size-classed pool management.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "sync"

// Predefined (power-of-two) slot size classes (bytes).
// This table can be tuned for deployment needs.
var slotClasses = [...]uintptr{
	8,
	16,
	32,
	64,
	128,
	256,
	512,
	1024,
}

// slotClassUpperBound returns the smallest class >= the requested size.
// Sizes above the table are rounded up to a pointer-size multiple and get
// a dedicated class of their own.
func slotClassUpperBound(size uintptr) uintptr {
	for _, c := range slotClasses {
		if size <= c {
			return c
		}
	}
	if rem := size % ptrSize; rem != 0 {
		size += ptrSize - rem
	}
	return size
}

// Manager routes slot-size requests to shared per-class pools. The class
// registry is guarded so pools can be fetched from anywhere; the pools it
// hands out remain single-owner.
type Manager struct {
	mu    sync.RWMutex
	cfg   Config
	class map[uintptr]*FixedPool
}

// NewManager initializes a manager whose pools all share cfg.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:   cfg,
		class: make(map[uintptr]*FixedPool),
	}
}

// GetPool returns the pool serving elemSize-byte slots, routing all
// requests for sizes within a given class to the same pool.
func (m *Manager) GetPool(elemSize uintptr) (*FixedPool, error) {
	clz := slotClassUpperBound(elemSize)

	m.mu.RLock()
	p, ok := m.class[clz]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok = m.class[clz]; ok {
		return p, nil
	}
	p, err := NewFixedPool(clz, m.cfg)
	if err != nil {
		return nil, err
	}
	m.class[clz] = p
	return p, nil
}

// Range calls fn for every materialized class pool.
func (m *Manager) Range(fn func(class uintptr, p *FixedPool)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for clz, p := range m.class {
		fn(clz, p)
	}
}

// Close tears down every class pool, reporting the first failure.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for clz, p := range m.class {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.class, clz)
	}
	return firstErr
}
