// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration control, and debug
// introspection layer for the slabpool allocator.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload
//   - Pool allocation telemetry export
//   - Debug hooks and probe registration
//
// The control plane is the one place in the library that tolerates locks:
// pools themselves stay single-owner and lock-free.
package control
