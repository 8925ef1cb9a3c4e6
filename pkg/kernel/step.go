package kernel

import (
	"fmt"

	"github.com/mshustov/stacksim/pkg/procmodel"
	"github.com/mshustov/stacksim/pkg/simclock"
	"github.com/mshustov/stacksim/pkg/simstats"
)

// dispatch pops the ready queue's head onto the CPU when it is idle,
// resetting its quantum and charging its accumulated wait time.
func (k *Kernel) dispatch() {
	if k.running != nil || len(k.ready) == 0 {
		return
	}
	p := k.ready[0]
	k.ready = k.ready[1:]

	p.State = procmodel.Running
	p.RemainingQuantumMs = k.cfg.TimeQuantumMs
	if p.ReadySince != nil {
		p.TotalWaitTimeMs += k.clock.Now() - *p.ReadySince
		p.ReadySince = nil
	}
	k.running = p

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventSchedulerDispatch, TimeMs: k.clock.Now(), ProcessID: p.PID,
		Message: fmt.Sprintf("dispatch %s", p.Name),
	})
}

func (k *Kernel) runOneStep() error {
	if k.running == nil {
		return nil
	}
	return k.executeStep()
}

// executeStep implements one program step for the Running process:
// syscall charge, cache access, then either a disk request (Blocked) or
// compute charge (stays Running, may preempt).
func (k *Kernel) executeStep() error {
	p := k.running

	if !p.HasMore() {
		k.finishProcess(p)
		return nil
	}

	step := p.NextStep()

	syscallMs := k.cfg.SyscallReadMs
	if step.Write {
		syscallMs = k.cfg.SyscallWriteMs
	}
	used, preempted := k.advanceWithInterrupts(syscallMs)
	p.TotalCPUTimeMs += used
	k.totalSyscallMs += used

	if k.running != p {
		return nil // an interrupt mid-syscall reassigned the CPU
	}
	if preempted || p.RemainingQuantumMs <= simclock.Tolerance {
		k.toReady(p)
		return nil
	}

	_, hit, needsDiskRead, err := k.cache.Access(step.Sector, step.Write)
	if err != nil {
		return fmt.Errorf("kernel: step for process %d: %w", p.PID, err)
	}
	k.sink.Emit(simstats.Event{
		Kind: simstats.EventCacheAccess, TimeMs: k.clock.Now(), ProcessID: p.PID,
		Message: fmt.Sprintf("sector %d hit=%t write=%t", step.Sector, hit, step.Write),
		Fields:  map[string]any{"sector": step.Sector, "hit": hit, "write": step.Write},
	})

	if needsDiskRead || (step.Write && !hit) {
		req := k.newRequest(step.Sector, step.Write, p.PID)
		k.scheduler.Enqueue(req)
		k.sink.Emit(simstats.Event{
			Kind: simstats.EventDiskEnqueue, TimeMs: k.clock.Now(), ProcessID: p.PID,
			Message: fmt.Sprintf("enqueue request %d sector %d", req.ID, req.Sector),
			Fields:  map[string]any{"request_id": req.ID, "sector": req.Sector, "track": req.Track},
		})

		p.State = procmodel.Blocked
		p.InFlightRequestID = req.ID
		p.BlockedSince = k.clock.Now()
		k.blocked[p.PID] = blockedEntry{request: req}
		k.running = nil
		k.sink.Emit(simstats.Event{
			Kind: simstats.EventProcessBlocked, TimeMs: k.clock.Now(), ProcessID: p.PID,
			Message: fmt.Sprintf("%s blocked on request %d", p.Name, req.ID),
		})
		return nil
	}

	processMs := k.cfg.ProcessReadMs
	if step.Write {
		processMs = k.cfg.ProcessWriteMs
	}
	used2, preempted2 := k.advanceWithInterrupts(processMs)
	p.TotalCPUTimeMs += used2
	k.totalProcessMs += used2

	if k.running != p {
		return nil
	}
	if preempted2 || p.RemainingQuantumMs <= simclock.Tolerance {
		k.toReady(p)
	}
	return nil
}

func (k *Kernel) toReady(p *procmodel.Process) {
	p.State = procmodel.Ready
	now := k.clock.Now()
	p.ReadySince = &now
	k.ready = append(k.ready, p)
	k.running = nil

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventSchedulerPreempt, TimeMs: k.clock.Now(), ProcessID: p.PID,
		Message: fmt.Sprintf("preempt %s, quantum exhausted", p.Name),
	})
}

func (k *Kernel) finishProcess(p *procmodel.Process) {
	p.State = procmodel.Finished
	now := k.clock.Now()
	p.FinishedAt = &now
	k.running = nil

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventProcessFinished, TimeMs: k.clock.Now(), ProcessID: p.PID,
		Message: fmt.Sprintf("%s finished", p.Name),
	})
}
