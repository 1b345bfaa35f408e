// File: facade/slabpool.go
// Unified facade layer for the slabpool library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Slabpool struct, which aggregates the core
// components of the library behind a single facade. It initializes the
// size-classed pool manager, block storage backend, and control interface
// based on immutable configuration, and exposes methods to fetch raw,
// guarded, and typed pools, publish allocation metrics, and tear the whole
// allocator down.

package facade

import (
	"log"
	"strconv"
	"sync"

	"github.com/momentics/slabpool/adapters"
	"github.com/momentics/slabpool/api"
	"github.com/momentics/slabpool/pool"
)

// Config holds parameters immutable per run.
// All fields influence the initialization of internal components; runtime
// observability goes through the Control interface.
type Config struct {
	InitialBlockCapacity int  // Slots in every pool's first block
	MaxBlockCapacity     int  // Growth saturation point, in slots
	UseMmap              bool // Back blocks with anonymous mappings where supported
	QuarantineDepth      int  // Released slots held back by guarded pools
	EnableMetrics        bool // Whether to publish pool stats into Control
	EnableDebug          bool // Whether to register allocator debug probes
}

// DefaultConfig returns default configuration values.
// These sane defaults support typical use cases without extensive tuning.
func DefaultConfig() *Config {
	return &Config{
		InitialBlockCapacity: 16,   // 16-slot first block
		MaxBlockCapacity:     1024, // Saturate growth at 1024 slots
		UseMmap:              false,
		QuarantineDepth:      8, // Hold back 8 slots in guarded pools
		EnableMetrics:        true,
		EnableDebug:          true,
	}
}

// Slabpool is the main facade type.
type Slabpool struct {
	manager *pool.Manager
	control *adapters.ControlAdapter
	poolCfg pool.Config

	config  *Config      // Immutable configuration
	mu      sync.RWMutex // Protects started flag
	started bool
}

// New constructs a Slabpool with the given configuration. It initializes
// the control adapter, the block storage backend, and the size-classed
// pool manager, and exposes configuration values via Control.
func New(cfg *Config) (*Slabpool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.QuarantineDepth < 0 {
		log.Printf("[facade] negative quarantine depth %d, disabling quarantine", cfg.QuarantineDepth)
		cfg.QuarantineDepth = 0
	}

	st := pool.HeapStorage()
	if cfg.UseMmap {
		st = pool.MmapStorage()
	}
	poolCfg := pool.Config{
		InitialBlockCapacity: cfg.InitialBlockCapacity,
		MaxBlockCapacity:     cfg.MaxBlockCapacity,
		Storage:              st,
	}

	s := &Slabpool{
		manager: pool.NewManager(poolCfg),
		control: adapters.NewControlAdapter(),
		poolCfg: poolCfg,
		config:  cfg,
	}

	if err := s.control.SetConfig(map[string]any{
		"initial_block_capacity": cfg.InitialBlockCapacity,
		"max_block_capacity":     cfg.MaxBlockCapacity,
		"use_mmap":               cfg.UseMmap,
		"quarantine_depth":       cfg.QuarantineDepth,
	}); err != nil {
		return nil, err
	}

	if cfg.EnableDebug {
		s.control.RegisterDebugProbe("pools", func() any {
			out := make(map[uintptr]api.PoolStats)
			s.manager.Range(func(class uintptr, p *pool.FixedPool) {
				out[class] = p.Stats()
			})
			return out
		})
	}
	return s, nil
}

// Start marks the facade live and enables metrics if configured.
// Subsequent calls to Start() have no effect.
func (s *Slabpool) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if s.config.EnableMetrics {
		if err := s.control.SetConfig(map[string]any{"metrics.enabled": true}); err != nil {
			return err
		}
	}
	s.started = true
	return nil
}

// Stop tears down every managed pool and marks the facade as not started.
// Calling Stop() on a non-started facade is a no-op.
func (s *Slabpool) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	if err := s.manager.Close(); err != nil {
		log.Printf("[facade] pool close failure: %v", err)
		s.started = false
		return err
	}
	s.started = false
	return nil
}

// GetControl returns the Control interface for dynamic config and metrics.
func (s *Slabpool) GetControl() api.Control {
	return s.control
}

// PoolConfig returns the pool configuration derived from this facade.
func (s *Slabpool) PoolConfig() pool.Config {
	return s.poolCfg
}

// RawPool returns the shared size-classed pool serving elemSize-byte slots.
func (s *Slabpool) RawPool(elemSize uintptr) (*pool.FixedPool, error) {
	return s.manager.GetPool(elemSize)
}

// GuardedPool returns a dedicated hardened pool for elemSize-byte slots,
// configured with the facade's quarantine depth. Guarded pools are never
// shared across classes: checkout tracking is per caller.
func (s *Slabpool) GuardedPool(elemSize uintptr) (*pool.GuardPool, error) {
	raw, err := pool.NewFixedPool(elemSize, s.poolCfg)
	if err != nil {
		return nil, err
	}
	return pool.NewGuardPool(raw, s.config.QuarantineDepth), nil
}

// PublishStats exports every materialized class pool's stats into Control.
func (s *Slabpool) PublishStats() {
	if !s.config.EnableMetrics {
		return
	}
	s.manager.Range(func(class uintptr, p *pool.FixedPool) {
		s.control.PublishPoolStats(statPrefix(class), p.Stats())
	})
}

func statPrefix(class uintptr) string {
	return "pool." + strconv.FormatUint(uint64(class), 10)
}

// NewTyped creates a typed pool backed by the facade's block storage
// configuration. The pool is independent of the size-class manager: typed
// pools own their slots so Destruct can rely on exclusive recycling.
func NewTyped[T any](s *Slabpool) (*pool.Pool[T], error) {
	return pool.New[T](s.poolCfg)
}

// NewTypedWithFinalizer is NewTyped with a per-element teardown hook.
func NewTypedWithFinalizer[T any](s *Slabpool, fini func(*T)) (*pool.Pool[T], error) {
	return pool.NewWithFinalizer[T](s.poolCfg, fini)
}
