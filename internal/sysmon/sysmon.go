// Package sysmon samples host CPU and memory usage for the health endpoint.
package sysmon

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of host resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0 .. 100, since the previous sample
	MemPercent float64 `json:"mem_percent"` // 0 .. 100
	MemUsed    uint64  `json:"mem_used"`
	MemTotal   uint64  `json:"mem_total"`
}

// Sample reads the host CPU and memory usage. The CPU figure is the delta
// since the previous call, so the first sample of a process may read 0. Any
// field that could be read is returned even when the other failed.
func Sample(ctx context.Context) (Stats, error) {
	var s Stats
	pcts, cpuErr := cpu.PercentWithContext(ctx, 0, false)
	if cpuErr == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	vmem, memErr := mem.VirtualMemoryWithContext(ctx)
	if memErr == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
		s.MemTotal = vmem.Total
	}
	return s, errors.Join(cpuErr, memErr)
}
