package kernel

import (
	"fmt"

	"github.com/mshustov/stacksim/pkg/diskio"
	"github.com/mshustov/stacksim/pkg/simstats"
)

// kickDisk starts servicing the next queued request when the disk is
// idle (no completion already pending): a single spindle never overlaps
// service for two requests.
func (k *Kernel) kickDisk() {
	if len(k.pending) > 0 {
		return
	}
	if !k.scheduler.HasPending() {
		return
	}
	req := k.scheduler.PopNext(k.disk.CurrentTrack)
	if req == nil {
		return
	}

	k.emitSeekDecision(req)

	svc := k.disk.Execute(req)
	k.pending = append(k.pending, pendingCompletion{at: k.clock.Now() + svc, request: req})

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventDiskKick, TimeMs: k.clock.Now(), ProcessID: req.ProcessID,
		Message: fmt.Sprintf("servicing request %d, track %d", req.ID, req.Track),
		Fields:  map[string]any{"request_id": req.ID, "track": req.Track, "service_ms": svc},
	})
}

// emitSeekDecision recovers the original disk driver's trace line
// describing which of the three seek paths (direct, via the outer edge,
// via the inner edge) was chosen for the head's next move.
func (k *Kernel) emitSeekDecision(req *diskio.Request) {
	direct, edgeViaZero, edgeViaLast := k.disk.SeekOptions(req.Track)
	chosen := "direct"
	best := direct
	if edgeViaZero < best {
		best = edgeViaZero
		chosen = "edge_via_zero"
	}
	if edgeViaLast < best {
		chosen = "edge_via_last"
	}
	k.sink.Emit(simstats.Event{
		Kind: simstats.EventDiskSeekDecision, TimeMs: k.clock.Now(), ProcessID: req.ProcessID,
		Message: fmt.Sprintf("seek to track %d via %s", req.Track, chosen),
		Fields: map[string]any{
			"from_track": k.disk.CurrentTrack, "to_track": req.Track,
			"direct_ms": direct, "edge_via_zero_ms": edgeViaZero, "edge_via_last_ms": edgeViaLast,
			"chosen": chosen,
		},
	})
}

// advanceIdly jumps the clock forward when nothing is Running or Ready
// but some process is Blocked, so the loop doesn't spin without making
// progress.
func (k *Kernel) advanceIdly() {
	if k.running != nil || len(k.ready) > 0 || len(k.blocked) == 0 {
		return
	}
	if len(k.pending) > 0 {
		earliest := k.pending[0].at
		for _, pc := range k.pending[1:] {
			if pc.at < earliest {
				earliest = pc.at
			}
		}
		k.clock.SetAtLeast(earliest)
		return
	}
	if k.scheduler.HasPending() {
		k.kickDisk()
		return
	}
	k.clock.Advance(1.0)
}

// flush implements the end-of-run write-back: every dirty buffer gets a
// synthetic write request with process id diskio.FlushProcessID, the
// disk drives them to completion one at a time, and each flushed buffer
// is returned to the free pool.
func (k *Kernel) flush() {
	dirty := k.cache.DirtyBuffers()
	if len(dirty) == 0 {
		return
	}

	k.sink.Emit(simstats.Event{
		Kind: simstats.EventFlush, TimeMs: k.clock.Now(),
		Message: fmt.Sprintf("flushing %d dirty buffers", len(dirty)),
		Fields:  map[string]any{"count": len(dirty)},
	})

	for _, buf := range dirty {
		req := k.newRequest(*buf.Sector, true, diskio.FlushProcessID)
		k.scheduler.Enqueue(req)
	}

	for k.scheduler.HasPending() {
		k.kickDisk()
		if len(k.pending) > 0 {
			k.clock.SetAtLeast(k.pending[0].at)
			k.fireDueInterrupts()
		}
	}

	for _, buf := range dirty {
		k.cache.Remove(buf)
	}
}
