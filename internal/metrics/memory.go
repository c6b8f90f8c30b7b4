// Package metrics reads runtime memory statistics for the detailed report of
// a computation.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes in use by the heap
	TotalAlloc uint64 // cumulative bytes allocated
	Sys        uint64 // total bytes obtained from the OS
	Mallocs    uint64 // cumulative heap objects allocated
	NumGC      uint32
	PauseTotal time.Duration
}

// MemoryUsage is the difference between two snapshots.
type MemoryUsage struct {
	Allocated uint64
	Objects   uint64
	GCCycles  uint32
	GCPause   time.Duration
	PeakHeap  uint64
}

// Snapshot reads the current memory statistics.
func Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
		PauseTotal: time.Duration(m.PauseTotalNs),
	}
}

// Since returns the usage between before and after. PeakHeap is the larger
// of the two heap readings.
func Since(before, after MemorySnapshot) MemoryUsage {
	return MemoryUsage{
		Allocated: after.TotalAlloc - before.TotalAlloc,
		Objects:   after.Mallocs - before.Mallocs,
		GCCycles:  after.NumGC - before.NumGC,
		GCPause:   after.PauseTotal - before.PauseTotal,
		PeakHeap:  max(before.HeapAlloc, after.HeapAlloc),
	}
}

// Measure runs fn and returns the memory it used.
func Measure(fn func()) MemoryUsage {
	before := Snapshot()
	fn()
	return Since(before, Snapshot())
}
