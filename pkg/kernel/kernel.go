// Package kernel couples the clock, disk, disk scheduler, buffer cache and
// process model into the round-robin simulation loop. It is the central
// component: every other package is a passive model the kernel drives.
package kernel

import (
	"github.com/mshustov/stacksim/pkg/buffercache"
	"github.com/mshustov/stacksim/pkg/diskio"
	"github.com/mshustov/stacksim/pkg/procmodel"
	"github.com/mshustov/stacksim/pkg/simclock"
	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/mshustov/stacksim/pkg/simstats"
)

type blockedEntry struct {
	request *diskio.Request
}

type pendingCompletion struct {
	at      float64
	request *diskio.Request
}

// Kernel owns the full simulation state. It is not safe for concurrent
// use: the whole point of the design is that there is exactly one
// goroutine driving virtual time forward.
type Kernel struct {
	clock     *simclock.Clock
	cfg       simconfig.Config
	disk      *diskio.Disk
	scheduler diskio.Scheduler
	cache     *buffercache.Cache
	sink      simstats.Sink

	processes []*procmodel.Process
	ready     []*procmodel.Process
	running   *procmodel.Process
	blocked   map[int]blockedEntry
	pending   []pendingCompletion

	nextRequestID uint64
	iterations    int

	totalSyscallMs   float64
	totalInterruptMs float64
	totalProcessMs   float64
}

// New builds a kernel for the given configuration and workload, validating
// both up front. No simulation has run yet: processes start Ready at t=0.
func New(cfg simconfig.Config, workload simconfig.Workload, sink simstats.Sink) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := workload.Validate(cfg); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = simstats.NoopSink{}
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = simconfig.DefaultMaxIterations
	}

	sched, err := diskio.NewScheduler(cfg)
	if err != nil {
		return nil, err
	}

	k := &Kernel{
		clock:     &simclock.Clock{},
		cfg:       cfg,
		disk:      diskio.NewDisk(cfg),
		scheduler: sched,
		cache:     buffercache.NewCache(cfg.BufferCount, cfg.LFULeftMax, cfg.LFUMiddleMax),
		sink:      sink,
		blocked:   make(map[int]blockedEntry),
	}

	for i, spec := range workload.Processes {
		steps := make([]procmodel.Step, len(spec.Program))
		for j, s := range spec.Program {
			steps[j] = procmodel.Step{Sector: s.Sector, Write: s.Write}
		}
		p := procmodel.New(i+1, spec.Name, steps, cfg.TimeQuantumMs)
		zero := 0.0
		p.ReadySince = &zero
		started := 0.0
		p.StartedAt = &started
		k.processes = append(k.processes, p)
		k.ready = append(k.ready, p)
	}

	return k, nil
}

// Run drives the main loop (fire interrupts, dispatch, run one step, kick
// the disk, advance idly) until every process is Finished or the
// iteration cap is hit, then flushes dirty buffers and returns the
// accumulated statistics.
func (k *Kernel) Run() (simstats.Stats, error) {
	k.sink.EmitSettings(k.cfg)

	for k.anyUnfinished() {
		k.iterations++
		if k.iterations > k.cfg.MaxIterations {
			return k.collectStats(), ErrIterationCapReached
		}

		k.fireDueInterrupts()
		k.dispatch()
		if err := k.runOneStep(); err != nil {
			return k.collectStats(), err
		}
		k.kickDisk()
		k.advanceIdly()
	}

	k.flush()
	return k.collectStats(), nil
}

func (k *Kernel) anyUnfinished() bool {
	for _, p := range k.processes {
		if p.State != procmodel.Finished {
			return true
		}
	}
	return false
}

func (k *Kernel) findProcess(pid int) *procmodel.Process {
	for _, p := range k.processes {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

func (k *Kernel) newRequest(sector int, write bool, processID int) *diskio.Request {
	k.nextRequestID++
	mode := diskio.ModeRead
	if write {
		mode = diskio.ModeWrite
	}
	return diskio.NewRequest(k.nextRequestID, sector, mode, processID, k.clock.Now(), k.cfg)
}
