// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-size slot allocation core for slabpool.
// Implements block-chained raw storage with an intrusive LIFO free list,
// geometric block growth, typed construct/destruct layering, a hardened
// guard wrapper, and a size-classed pool manager.
// See fixedpool.go, block.go, typed.go, guard.go for implementation details.
package pool
