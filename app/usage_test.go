package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 B", formatBytes(512))
	require.Equal(t, "1.5 KB", formatBytes(1536))
	require.Equal(t, "2.0 MB", formatBytes(2<<20))
}

func TestSampleResources(t *testing.T) {
	start := sampleResources()
	require.NotZero(t, start.heap)
	require.NotZero(t, start.rss)

	end := sampleResources()
	s := end.since(start)
	require.Contains(t, s, "max RSS")
	require.Contains(t, s, "CPU")
}

func TestSinceComputesCPULoad(t *testing.T) {
	t0 := time.Unix(100, 0)
	start := resourceUsage{cpu: time.Second, wall: t0}
	end := resourceUsage{heap: 2048, rss: 4096, cpu: 2 * time.Second, wall: t0.Add(4 * time.Second)}
	require.Equal(t, "heap 2.0 KB • max RSS 4.0 KB • CPU 25.0%", end.since(start))

	require.Contains(t, start.since(start), "CPU 0.0%")
}
