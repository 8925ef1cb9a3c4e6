package simstats

// DiskStats summarizes the disk's activity over a run.
type DiskStats struct {
	Completed         int
	TotalSeekMs       float64
	TotalRotationMs   float64
	TotalTransferMs   float64
	AverageSeekMs     float64
	AverageRotationMs float64
	AverageTransferMs float64
	TotalDiskTimeMs   float64
}

// CacheStats summarizes buffer-cache activity over a run.
type CacheStats struct {
	Hits    int
	Misses  int
	HitRate float64
}

// SystemStats summarizes clock and CPU-side accounting.
type SystemStats struct {
	TotalSimulatedMs   float64
	TotalSyscallMs     float64
	TotalInterruptMs   float64
	TotalProcessMs     float64
	CompletedProcesses int
	Iterations         int
}

// ProcessStats summarizes one process's run.
type ProcessStats struct {
	PID       int
	Name      string
	ElapsedMs float64
	CPUMs     float64
	IOMs      float64
	WaitMs    float64
	Progress  float64
	Finished  bool
}

// Stats is the complete statistics record a run produces.
type Stats struct {
	Policy    string
	Disk      DiskStats
	Cache     CacheStats
	System    SystemStats
	Processes []ProcessStats
}

// NewDiskStats derives averages from accumulated totals and a completed count.
func NewDiskStats(completed int, totalSeekMs, totalRotationMs, totalTransferMs float64) DiskStats {
	d := DiskStats{
		Completed:       completed,
		TotalSeekMs:     totalSeekMs,
		TotalRotationMs: totalRotationMs,
		TotalTransferMs: totalTransferMs,
		TotalDiskTimeMs: totalSeekMs + totalRotationMs + totalTransferMs,
	}
	if completed > 0 {
		d.AverageSeekMs = totalSeekMs / float64(completed)
		d.AverageRotationMs = totalRotationMs / float64(completed)
		d.AverageTransferMs = totalTransferMs / float64(completed)
	}
	return d
}

// NewCacheStats derives hit rate from hit/miss counts.
func NewCacheStats(hits, misses int) CacheStats {
	c := CacheStats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		c.HitRate = float64(hits) / float64(total)
	}
	return c
}
