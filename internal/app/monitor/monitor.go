package monitor

import (
	"context"
	"math"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"

	"screenlog/internal/app/logs"
)

// Monitor provides process resource monitoring for pong replies
type Monitor interface {
	GetStats(ctx context.Context, pid int) (logs.Stats, error)
	Self(ctx context.Context) (logs.Stats, error)
}

type monitor struct{}

// NewMonitor creates a new Monitor instance
func NewMonitor() Monitor {
	return &monitor{}
}

// GetStats returns CPU and resident memory of the process with the given pid
func (m *monitor) GetStats(ctx context.Context, pid int) (logs.Stats, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return logs.Stats{}, nil
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return logs.Stats{}, err
	}

	stats := logs.Stats{PID: proc.Pid}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPUPercent = cpuPercent
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.RSS = memInfo.RSS
	}

	return stats, nil
}

// Self returns the stats of the current process including its goroutine count
func (m *monitor) Self(ctx context.Context) (logs.Stats, error) {
	stats, err := m.GetStats(ctx, os.Getpid())
	if err != nil {
		return logs.Stats{}, err
	}

	stats.Goroutines = runtime.NumGoroutine()

	return stats, nil
}
