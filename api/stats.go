// File: api/stats.go
// Author: momentics <momentics@gmail.com>
//
// Allocation accounting types shared by all pool implementations.

package api

// PoolStats aggregates slot allocation/reuse stats for one pool.
type PoolStats struct {
	SlotSize     uintptr // fixed slot size in bytes
	TotalAcquire int64   // slots handed out since creation
	TotalRelease int64   // slots returned since creation
	InUse        int64   // currently checked-out slots
	Blocks       int     // blocks in the chain
	TailUsed     int     // slots carved from the tail block
	FreeListLen  int     // slots waiting on the free list
	Grows        int     // growth events (blocks appended after the first)
}
