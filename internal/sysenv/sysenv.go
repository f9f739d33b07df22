// Package sysenv captures a snapshot of the host process environment for
// attachment to a JobReport, adapted from the teacher's
// internal/status.Collector (which gathers the same gopsutil facts for its
// node-status command).
package sysenv

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is a point-in-time capture of host facts, attached to
// JobReport.Environment when JobParameters.JMXMonitoring is enabled.
type Snapshot struct {
	CapturedAt time.Time
	Hostname   string
	OS         string
	Arch       string
	NumCPU     int
	CPUPercent float64
	MemTotalMB uint64
	MemUsedMB  uint64
	UptimeSecs uint64
}

// Capture gathers a Snapshot. It never returns an error: any individual
// gopsutil query that fails just leaves its field at the zero value, since
// an incomplete environment snapshot should never fail a job run.
func Capture(ctx context.Context) Snapshot {
	snap := Snapshot{
		CapturedAt: time.Now(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = hi.Hostname
		snap.UptimeSecs = hi.Uptime
	}

	if pct, err := cpu.PercentWithContext(ctx, 100*time.Millisecond, false); err == nil && len(pct) > 0 {
		snap.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.MemTotalMB = vm.Total / (1024 * 1024)
		snap.MemUsedMB = vm.Used / (1024 * 1024)
	}

	return snap
}
