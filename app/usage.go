package app

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// resourceUsage is a snapshot of process memory and CPU time
type resourceUsage struct {
	heap uint64
	rss  uint64
	cpu  time.Duration
	wall time.Time
}

func sampleResources() resourceUsage {
	var rusage unix.Rusage
	_ = unix.Getrusage(unix.RUSAGE_SELF, &rusage)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	user := time.Duration(rusage.Utime.Sec)*time.Second + time.Duration(rusage.Utime.Usec)*time.Microsecond
	sys := time.Duration(rusage.Stime.Sec)*time.Second + time.Duration(rusage.Stime.Usec)*time.Microsecond
	return resourceUsage{
		heap: ms.HeapAlloc,
		rss:  uint64(rusage.Maxrss * 1024), // KB to bytes
		cpu:  user + sys,
		wall: time.Now(),
	}
}

// since formats memory at u and the CPU load between start and u
func (u resourceUsage) since(start resourceUsage) string {
	var cpu float64
	if wall := u.wall.Sub(start.wall); wall > 0 {
		cpu = (u.cpu - start.cpu).Seconds() / wall.Seconds() * 100
		if cpu < 0 {
			cpu = 0
		}
	}
	return fmt.Sprintf("heap %s • max RSS %s • CPU %.1f%%", formatBytes(u.heap), formatBytes(u.rss), cpu)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
