package kernel

import (
	"github.com/mshustov/stacksim/pkg/procmodel"
	"github.com/mshustov/stacksim/pkg/simstats"
)

func (k *Kernel) collectStats() simstats.Stats {
	cacheSnap := k.cache.Snapshot()

	completed := 0
	procs := make([]simstats.ProcessStats, 0, len(k.processes))
	for _, p := range k.processes {
		ps := simstats.ProcessStats{
			PID:      p.PID,
			Name:     p.Name,
			CPUMs:    p.TotalCPUTimeMs,
			IOMs:     p.TotalIOTimeMs,
			WaitMs:   p.TotalWaitTimeMs,
			Progress: p.Progress(),
			Finished: p.State == procmodel.Finished,
		}
		if p.StartedAt != nil && p.FinishedAt != nil {
			ps.ElapsedMs = *p.FinishedAt - *p.StartedAt
		}
		if p.State == procmodel.Finished {
			completed++
		}
		procs = append(procs, ps)
	}

	return simstats.Stats{
		Policy: string(k.cfg.Policy),
		Disk:   simstats.NewDiskStats(k.disk.Completed, k.disk.TotalSeekMs, k.disk.TotalRotationMs, k.disk.TotalTransferMs),
		Cache:  simstats.NewCacheStats(cacheSnap.Hits, cacheSnap.Misses),
		System: simstats.SystemStats{
			TotalSimulatedMs:   k.clock.Now(),
			TotalSyscallMs:     k.totalSyscallMs,
			TotalInterruptMs:   k.totalInterruptMs,
			TotalProcessMs:     k.totalProcessMs,
			CompletedProcesses: completed,
			Iterations:         k.iterations,
		},
		Processes: procs,
	}
}
