package diskio

import (
	"testing"

	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeekCostDirectVsEdge(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	d := NewDisk(cfg) // head at track 0

	// Direct distance to track 5 is tiny; should win over going via edges.
	got := d.SeekCost(5)
	assert.InDelta(t, 5*cfg.TrackSeekTimeMs, got, 1e-9)
}

func TestSeekCostViaEdgeWins(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.DiskTracks = 100
	cfg.TrackSeekTimeMs = 1.0
	cfg.EdgeSeekTimeMs = 2.0
	d := NewDisk(cfg)
	d.CurrentTrack = 0

	// direct to track 99 = 99; edge_via_last = 2 + (100-1-99)*1 = 2.
	got := d.SeekCost(99)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestExecuteMovesHeadAndAccumulates(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	d := NewDisk(cfg)
	req := NewRequest(1, 250, ModeRead, 1, 0, cfg) // track 0 (250/500)

	svc := d.Execute(req)
	require.Greater(t, svc, 0.0)
	assert.Equal(t, 0, d.CurrentTrack)
	assert.Equal(t, 1, d.Completed)

	req2 := NewRequest(2, 5250, ModeRead, 1, svc, cfg) // track 10
	d.Execute(req2)
	assert.Equal(t, 10, d.CurrentTrack)
	assert.Equal(t, 2, d.Completed)
	assert.Greater(t, d.TotalSeekMs, 0.0)
}

func TestNewSchedulerUnknownPolicy(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.Policy = "bogus"
	_, err := NewScheduler(cfg)
	require.Error(t, err)
}

func TestFIFOOrdering(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	sched, err := NewScheduler(cfg)
	require.NoError(t, err)

	r1 := NewRequest(1, 9999, ModeRead, 1, 0, cfg)
	r2 := NewRequest(2, 0, ModeRead, 1, 0, cfg)
	sched.Enqueue(r1)
	sched.Enqueue(r2)

	got1 := sched.PopNext(0)
	got2 := sched.PopNext(0)
	assert.Equal(t, r1, got1)
	assert.Equal(t, r2, got2)
	assert.False(t, sched.HasPending())
}

func TestLOOKSweepsMonotonically(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.Policy = simconfig.PolicyLOOK
	sched, err := NewScheduler(cfg)
	require.NoError(t, err)

	// Requests at tracks 5, 1, 8, 3 starting from track 0, forward sweep.
	tracks := []int{5, 1, 8, 3}
	for i, tr := range tracks {
		sched.Enqueue(NewRequest(uint64(i), tr*cfg.SectorsPerTrack, ModeRead, 1, 0, cfg))
	}

	var order []int
	current := 0
	for sched.HasPending() {
		req := sched.PopNext(current)
		order = append(order, req.Track)
		current = req.Track
	}
	assert.Equal(t, []int{1, 3, 5, 8}, order)
}

func TestLOOKAntiStarvationFlipsWithoutDroppingRequests(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.Policy = simconfig.PolicyLOOK
	cfg.LookMaxSameTrack = 2
	sched, err := NewScheduler(cfg)
	require.NoError(t, err)

	// Five distinct requests all landing on the same track: whatever the
	// anti-starvation rule does internally (forced direction flip), every
	// enqueued request must still be returned exactly once, none silently
	// dropped.
	want := map[uint64]bool{}
	for i := uint64(1); i <= 5; i++ {
		req := NewRequest(i, 5*cfg.SectorsPerTrack, ModeRead, 1, 0, cfg)
		sched.Enqueue(req)
		want[i] = true
	}

	got := map[uint64]bool{}
	for sched.HasPending() {
		req := sched.PopNext(0)
		require.False(t, got[req.ID], "request %d served twice", req.ID)
		got[req.ID] = true
	}
	assert.Equal(t, want, got)
}

func TestFLOOKFreezesIncomingDuringActiveSweep(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.Policy = simconfig.PolicyFLOOK
	sched, err := NewScheduler(cfg)
	require.NoError(t, err)

	sched.Enqueue(NewRequest(1, 5*cfg.SectorsPerTrack, ModeRead, 1, 0, cfg))
	sched.Enqueue(NewRequest(2, 2*cfg.SectorsPerTrack, ModeRead, 1, 0, cfg))

	first := sched.PopNext(0) // swaps incoming->active, sorts by track
	assert.Equal(t, 2, first.Track)

	// Arrives mid-sweep: must stay frozen in incoming, not affect this sweep.
	sched.Enqueue(NewRequest(3, 0, ModeRead, 1, 0, cfg))

	second := sched.PopNext(2)
	assert.Equal(t, 5, second.Track)

	snap := sched.Snapshot()
	assert.Len(t, snap.Incoming, 1)
}

func TestPolicyComparisonLookHasLowerOrEqualSeekThanFIFO(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	tracks := []int{0, 9999, 9998, 1}
	steps := make([]int, len(tracks))
	for i, tr := range tracks {
		steps[i] = tr * cfg.SectorsPerTrack
	}

	run := func(policy simconfig.Policy) float64 {
		c := cfg
		c.Policy = policy
		sched, err := NewScheduler(c)
		require.NoError(t, err)
		disk := NewDisk(c)
		for i, sector := range steps {
			sched.Enqueue(NewRequest(uint64(i), sector, ModeRead, 1, 0, c))
		}
		for sched.HasPending() {
			req := sched.PopNext(disk.CurrentTrack)
			disk.Execute(req)
		}
		return disk.TotalSeekMs
	}

	fifoSeek := run(simconfig.PolicyFIFO)
	lookSeek := run(simconfig.PolicyLOOK)
	assert.LessOrEqual(t, lookSeek, fifoSeek)
}
