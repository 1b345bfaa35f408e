// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for allocator monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/slabpool/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// SetPoolStats flattens one pool's accounting snapshot under prefix,
// e.g. "pool.64.in_use".
func (mr *MetricsRegistry) SetPoolStats(prefix string, s api.PoolStats) {
	mr.mu.Lock()
	mr.metrics[prefix+".slot_size"] = int64(s.SlotSize)
	mr.metrics[prefix+".total_acquire"] = s.TotalAcquire
	mr.metrics[prefix+".total_release"] = s.TotalRelease
	mr.metrics[prefix+".in_use"] = s.InUse
	mr.metrics[prefix+".blocks"] = s.Blocks
	mr.metrics[prefix+".tail_used"] = s.TailUsed
	mr.metrics[prefix+".free_list_len"] = s.FreeListLen
	mr.metrics[prefix+".grows"] = s.Grows
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
