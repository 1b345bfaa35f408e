// control/runtime_probes.go
// Author: momentics <momentics@gmail.com>
//
// Go runtime memory probes, for comparing allocator-managed memory
// against what the collector sees.

package control

import "runtime"

// RegisterRuntimeProbes sets process-level memory debug probes.
func RegisterRuntimeProbes(dp *DebugProbes) {
	dp.RegisterProbe("runtime.heap_alloc", func() any {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return ms.HeapAlloc
	})
	dp.RegisterProbe("runtime.num_gc", func() any {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return ms.NumGC
	})
	dp.RegisterProbe("runtime.cpus", func() any {
		return runtime.NumCPU()
	})
}
