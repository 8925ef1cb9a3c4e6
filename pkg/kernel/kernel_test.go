package kernel

import (
	"testing"

	"github.com/mshustov/stacksim/pkg/procmodel"
	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steps(pairs ...int) []simconfig.Step {
	out := make([]simconfig.Step, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, simconfig.Step{Sector: pairs[i], Write: pairs[i+1] == 1})
	}
	return out
}

func readSteps(sectors ...int) []simconfig.Step {
	out := make([]simconfig.Step, len(sectors))
	for i, s := range sectors {
		out[i] = simconfig.Step{Sector: s, Write: false}
	}
	return out
}

// Empty workload: no iterations, zero stats.
func TestEmptyWorkloadProducesZeroStats(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	k, err := New(cfg, simconfig.Workload{}, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.System.Iterations)
	assert.Equal(t, 0, stats.Disk.Completed)
	assert.Equal(t, 0, stats.Cache.Hits+stats.Cache.Misses)
}

// S1: cache warmup, now run end-to-end through the kernel.
func TestS1CacheWarmupThroughKernel(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 200, 300, 400, 500)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Cache.Hits)
	assert.Equal(t, 5, stats.Cache.Misses)
	require.Len(t, stats.Processes, 1)
	assert.True(t, stats.Processes[0].Finished)
	assert.Equal(t, 100.0, stats.Processes[0].Progress)
}

// S2: hit after promotion.
func TestS2HitAfterPromotionThroughKernel(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 200, 100)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Cache.Hits)
	assert.Equal(t, 2, stats.Cache.Misses)
}

// S4: write-back on flush. A single write-miss issues one request; the
// final flush issues none more because the interrupt already cleared the
// dirty flag before the process terminates.
func TestS4WriteBackOnFlushPureMissPath(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "Writer", Program: steps(100, 1)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Disk.Completed)
}

// S4 variant: hit-then-write. The buffer is dirtied again after the
// miss's write completes, so flush must issue a second request.
func TestS4WriteBackOnFlushHitThenWritePath(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "Writer", Program: steps(100, 1, 100, 1)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Disk.Completed)
}

// S5: policy difference. LOOK's total seek should not exceed FIFO's on
// a workload crafted to make the head ping-pong under FIFO.
func TestS5PolicyDifferenceThroughKernel(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "Low", Program: readSteps(0, 9999*cfg.SectorsPerTrack)},
		{Name: "High", Program: readSteps(9998*cfg.SectorsPerTrack, 1)},
	}}

	run := func(policy simconfig.Policy) float64 {
		c := cfg
		c.Policy = policy
		k, err := New(c, wl, nil)
		require.NoError(t, err)
		stats, err := k.Run()
		require.NoError(t, err)
		return stats.Disk.TotalSeekMs
	}

	fifoSeek := run(simconfig.PolicyFIFO)
	lookSeek := run(simconfig.PolicyLOOK)
	assert.LessOrEqual(t, lookSeek, fifoSeek)
}

// S6: quantum exhaustion mid-syscall. A tiny quantum preempts the
// process after one syscall attempt, before any cache access.
func TestS6QuantumExhaustionMidSyscall(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.TimeQuantumMs = 0.1
	cfg.SyscallReadMs = 0.15
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 200)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	// Run exactly long enough to dispatch and execute one step.
	k.dispatch()
	err = k.runOneStep()
	require.NoError(t, err)

	assert.Equal(t, 0, k.cache.Misses+k.cache.Hits, "no cache access should have occurred")
	assert.Nil(t, k.running)
	require.Len(t, k.ready, 1)
	assert.Equal(t, procmodel.Ready, k.ready[0].State)
}

// Boundary: buffer_count = 1, every miss evicts the previous buffer.
func TestBufferCountOneEveryMissEvicts(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.BufferCount = 1
	cfg.LFULeftMax = 1
	cfg.LFUMiddleMax = 1
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 200, 300)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Cache.Hits)
	assert.Equal(t, 3, stats.Cache.Misses)
}

// Boundary: repeated-access pattern hits after the first access.
func TestRepeatedAccessPatternAllHitAfterFirst(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 100, 100, 100)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Cache.Hits)
	assert.Equal(t, 1, stats.Cache.Misses)
}

// Invariant 6 / determinism: identical config+workload+policy -> identical stats.
func TestDeterminismAcrossRepeatedRuns(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.SampleWorkload(cfg)

	run := func() (int, int, float64) {
		k, err := New(cfg, wl, nil)
		require.NoError(t, err)
		stats, err := k.Run()
		require.NoError(t, err)
		return stats.Cache.Hits, stats.Cache.Misses, stats.Disk.TotalSeekMs
	}

	h1, m1, seek1 := run()
	h2, m2, seek2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, m1, m2)
	assert.InDelta(t, seek1, seek2, 1e-9)
}

// Invariant 7: accounting closure. cpu + io + wait <= finish - start.
func TestAccountingClosureHolds(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.SampleWorkload(cfg)
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	stats, err := k.Run()
	require.NoError(t, err)

	for _, p := range stats.Processes {
		if !p.Finished {
			continue
		}
		sum := p.CPUMs + p.IOMs + p.WaitMs
		assert.LessOrEqual(t, sum, p.ElapsedMs+1e-6, "process %s: accounting exceeds elapsed time", p.Name)
	}
}

func TestInvalidConfigRejectedAtConstruction(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.Policy = "bogus"
	_, err := New(cfg, simconfig.Workload{}, nil)
	require.Error(t, err)
}

func TestWorkloadSectorOutOfRangeRejected(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "Bad", Program: readSteps(cfg.TotalSectors())},
	}}
	_, err := New(cfg, wl, nil)
	require.Error(t, err)
}

func TestIterationCapReportsPartialStats(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.MaxIterations = 1
	wl := simconfig.Workload{Processes: []simconfig.ProcessSpec{
		{Name: "P1", Program: readSteps(100, 200, 300)},
	}}
	k, err := New(cfg, wl, nil)
	require.NoError(t, err)

	_, err = k.Run()
	require.ErrorIs(t, err, ErrIterationCapReached)
}
