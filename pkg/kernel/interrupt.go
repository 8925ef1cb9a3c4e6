package kernel

import (
	"fmt"

	"github.com/mshustov/stacksim/pkg/diskio"
	"github.com/mshustov/stacksim/pkg/procmodel"
	"github.com/mshustov/stacksim/pkg/simclock"
	"github.com/mshustov/stacksim/pkg/simstats"
)

// fireDueInterrupts runs the interrupt handler for every pending
// completion whose time has arrived. At most one completion is ever
// pending at a time, so a linear scan is clearer than a priority queue
// and equally correct.
func (k *Kernel) fireDueInterrupts() {
	for {
		idx := -1
		for i, pc := range k.pending {
			if simclock.AtOrBefore(pc.at, k.clock.Now()) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		req := k.pending[idx].request
		k.pending = append(k.pending[:idx], k.pending[idx+1:]...)
		k.handleInterrupt(req)
	}
}

// handleInterrupt charges the interrupt handler's cost, clears a
// completed write's dirty flag, and unblocks the owning process.
func (k *Kernel) handleInterrupt(req *diskio.Request) {
	k.clock.Advance(k.cfg.InterruptHandlerMs)
	k.totalInterruptMs += k.cfg.InterruptHandlerMs
	if k.running != nil {
		k.running.RemainingQuantumMs -= k.cfg.InterruptHandlerMs
	}
	req.MarkCompleted(k.clock.Now())
	k.sink.Emit(simstats.Event{
		Kind: simstats.EventInterrupt, TimeMs: k.clock.Now(), ProcessID: req.ProcessID,
		Message: fmt.Sprintf("interrupt for request %d", req.ID),
		Fields:  map[string]any{"request_id": req.ID, "sector": req.Sector},
	})

	if req.Mode == diskio.ModeWrite {
		if buf, ok := k.cache.Lookup(req.Sector); ok {
			buf.Dirty = false
		}
	}

	entry, ok := k.blocked[req.ProcessID]
	if !ok || entry.request != req {
		return
	}
	delete(k.blocked, req.ProcessID)

	p := k.findProcess(req.ProcessID)
	if p == nil {
		return
	}
	p.TotalIOTimeMs += k.clock.Now() - p.BlockedSince
	p.State = procmodel.Ready
	p.InFlightRequestID = 0
	now := k.clock.Now()
	p.ReadySince = &now
	k.ready = append(k.ready, p)

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventProcessUnblocked, TimeMs: k.clock.Now(), ProcessID: p.PID,
		Message: fmt.Sprintf("%s unblocked", p.Name),
	})
}

// advanceWithInterrupts advances the clock by up to duration, honoring
// pending disk completions and the Running process's remaining quantum.
// It returns the time actually used and whether the
// process was preempted (quantum exhausted or reassigned by an
// interrupt) before duration was fully consumed.
func (k *Kernel) advanceWithInterrupts(duration float64) (used float64, preempted bool) {
	p := k.running
	if p == nil {
		k.clock.Advance(duration)
		return duration, false
	}

	remaining := duration
	for remaining > simclock.Tolerance {
		nextAt, req, hasNext := k.earliestPendingWithin(remaining)
		quantumLeft := p.RemainingQuantumMs

		var delta float64
		if hasNext {
			toInterrupt := nextAt - k.clock.Now()
			delta = min(toInterrupt, quantumLeft, remaining)
		} else {
			delta = min(remaining, quantumLeft)
		}

		k.clock.Advance(delta)
		p.RemainingQuantumMs -= delta
		used += delta
		remaining -= delta

		if hasNext && simclock.Equal(k.clock.Now(), nextAt) {
			k.removePending(req)
			k.handleInterrupt(req)
			if k.running != p {
				return used, true
			}
		}

		if p.RemainingQuantumMs <= simclock.Tolerance {
			return used, true
		}
	}

	return used, false
}

// earliestPendingWithin returns the soonest pending completion that falls
// in (now, now+remaining], the upper bound widened by Tolerance, if any.
func (k *Kernel) earliestPendingWithin(remaining float64) (float64, *diskio.Request, bool) {
	now := k.clock.Now()
	var best *pendingCompletion
	for i := range k.pending {
		pc := &k.pending[i]
		until := pc.at - now
		if until > 0 && until <= remaining+simclock.Tolerance {
			if best == nil || pc.at < best.at {
				best = pc
			}
		}
	}
	if best == nil {
		return 0, nil, false
	}
	return best.at, best.request, true
}

func (k *Kernel) removePending(req *diskio.Request) {
	for i, pc := range k.pending {
		if pc.request == req {
			k.pending = append(k.pending[:i], k.pending[i+1:]...)
			return
		}
	}
}
