package diskio

import (
	"fmt"
	"sort"

	"github.com/mshustov/stacksim/pkg/simconfig"
)

// Scheduler orders pending disk requests for a single spindle.
// Implementations are not safe for concurrent use: the kernel owns the
// scheduler exclusively, matching the simulator's single-threaded
// resource model.
type Scheduler interface {
	// Name identifies the policy, used in trace output.
	Name() string
	// Enqueue adds a newly-minted request to the scheduler.
	Enqueue(req *Request)
	// PopNext removes and returns the next request to service given the
	// disk's current head position, or nil if nothing is pending.
	PopNext(currentTrack int) *Request
	// HasPending reports whether any request is queued.
	HasPending() bool
	// Snapshot returns a trace-friendly view of the queue(s).
	Snapshot() SchedulerSnapshot
}

// SchedulerSnapshot is a structured (not pre-formatted) view of a
// scheduler's internal queues, consumed by the trace sink rather than
// built as a string; tests can capture a structured event log rather
// than parse text.
type SchedulerSnapshot struct {
	Policy   string
	Queue    []uint64 // FIFO/LOOK: single queue, in queue order
	Active   []uint64 // FLOOK only
	Incoming []uint64 // FLOOK only
}

// NewScheduler builds the scheduler for cfg.Policy. cfg must already be
// validated; an unknown policy is a programmer error at this layer (the
// CLI/Config boundary is where ErrUnknownPolicy is surfaced to users).
func NewScheduler(cfg simconfig.Config) (Scheduler, error) {
	switch cfg.Policy {
	case simconfig.PolicyFIFO:
		return newFIFOScheduler(), nil
	case simconfig.PolicyLOOK:
		return newLOOKScheduler(cfg.LookMaxSameTrack), nil
	case simconfig.PolicyFLOOK:
		return newFLOOKScheduler(cfg.FlookProcessForward), nil
	default:
		return nil, fmt.Errorf("diskio: %w: %q", simconfig.ErrUnknownPolicy, cfg.Policy)
	}
}

// --- FIFO ---------------------------------------------------------------

type fifoScheduler struct {
	queue []*Request
}

func newFIFOScheduler() *fifoScheduler {
	return &fifoScheduler{}
}

func (s *fifoScheduler) Name() string { return "FIFO" }

func (s *fifoScheduler) Enqueue(req *Request) {
	s.queue = append(s.queue, req)
}

func (s *fifoScheduler) PopNext(currentTrack int) *Request {
	if len(s.queue) == 0 {
		return nil
	}
	req := s.queue[0]
	s.queue = s.queue[1:]
	return req
}

func (s *fifoScheduler) HasPending() bool { return len(s.queue) > 0 }

func (s *fifoScheduler) Snapshot() SchedulerSnapshot {
	return SchedulerSnapshot{Policy: s.Name(), Queue: requestIDs(s.queue)}
}

// --- LOOK -----------------------------------------------------------------

// lookScheduler implements the elevator algorithm with an anti-
// starvation direction flip: a track served LookMaxSameTrack times
// running forces a direction flip instead of dropping the offending
// request.
type lookScheduler struct {
	queue           []*Request
	forward         bool
	lastTrack       int
	haveLastTrack   bool
	sameTrackStreak int
	maxSameTrack    int
}

func newLOOKScheduler(maxSameTrack int) *lookScheduler {
	return &lookScheduler{forward: true, maxSameTrack: maxSameTrack}
}

func (s *lookScheduler) Name() string { return "LOOK" }

func (s *lookScheduler) Enqueue(req *Request) {
	s.queue = append(s.queue, req)
}

func (s *lookScheduler) HasPending() bool { return len(s.queue) > 0 }

func (s *lookScheduler) Snapshot() SchedulerSnapshot {
	return SchedulerSnapshot{Policy: s.Name(), Queue: requestIDs(s.queue)}
}

// PopNext selects the next candidate per the sweep rule, applies the
// anti-starvation check, and removes the chosen request from the queue.
func (s *lookScheduler) PopNext(currentTrack int) *Request {
	if len(s.queue) == 0 {
		return nil
	}

	idx, flipped := s.selectCandidateIndex(currentTrack)
	candidate := s.queue[idx]

	if s.haveLastTrack && candidate.Track == s.lastTrack {
		s.sameTrackStreak++
		if s.sameTrackStreak >= s.maxSameTrack && !flipped {
			// Force a direction flip and re-select rather than dropping
			// the request.
			s.forward = !s.forward
			s.sameTrackStreak = 0
			idx, _ = s.selectCandidateIndex(currentTrack)
			candidate = s.queue[idx]
		}
	} else {
		s.sameTrackStreak = 1
	}
	s.lastTrack = candidate.Track
	s.haveLastTrack = true

	s.queue = removeAt(s.queue, idx)
	return candidate
}

// selectCandidateIndex finds the queue index of the next request under
// the current sweep direction, flipping direction if the sweep has run
// off the end of the disk in that direction. Ties on track are broken by
// first-enqueued.
func (s *lookScheduler) selectCandidateIndex(currentTrack int) (idx int, flipped bool) {
	best := -1
	if s.forward {
		for i, r := range s.queue {
			if r.Track >= currentTrack && (best == -1 || r.Track < s.queue[best].Track) {
				best = i
			}
		}
		if best == -1 {
			for i, r := range s.queue {
				if best == -1 || r.Track < s.queue[best].Track {
					best = i
				}
			}
			s.forward = false
			flipped = true
		}
	} else {
		for i, r := range s.queue {
			if r.Track <= currentTrack && (best == -1 || r.Track > s.queue[best].Track) {
				best = i
			}
		}
		if best == -1 {
			for i, r := range s.queue {
				if best == -1 || r.Track > s.queue[best].Track {
					best = i
				}
			}
			s.forward = true
			flipped = true
		}
	}
	return best, flipped
}

// --- FLOOK ------------------------------------------------------------

// flookScheduler holds two queues: active (currently being swept) and
// incoming (frozen until the next swap). No anti-starvation counter.
type flookScheduler struct {
	active   []*Request
	incoming []*Request
	forward  bool
}

func newFLOOKScheduler(forward bool) *flookScheduler {
	return &flookScheduler{forward: forward}
}

func (s *flookScheduler) Name() string { return "FLOOK" }

func (s *flookScheduler) Enqueue(req *Request) {
	s.incoming = append(s.incoming, req)
}

func (s *flookScheduler) HasPending() bool {
	return len(s.active) > 0 || len(s.incoming) > 0
}

func (s *flookScheduler) Snapshot() SchedulerSnapshot {
	return SchedulerSnapshot{
		Policy:   s.Name(),
		Active:   requestIDs(s.active),
		Incoming: requestIDs(s.incoming),
	}
}

func (s *flookScheduler) PopNext(currentTrack int) *Request {
	if len(s.active) == 0 {
		if len(s.incoming) == 0 {
			return nil
		}
		s.active, s.incoming = s.incoming, nil
		sort.SliceStable(s.active, func(i, j int) bool {
			return s.active[i].Track < s.active[j].Track
		})
	}

	idx := -1
	if s.forward {
		for i, r := range s.active {
			if r.Track >= currentTrack && (idx == -1 || r.Track < s.active[idx].Track) {
				idx = i
			}
		}
		if idx == -1 {
			for i, r := range s.active {
				if idx == -1 || r.Track < s.active[idx].Track {
					idx = i
				}
			}
			s.forward = false
		}
	} else {
		for i, r := range s.active {
			if r.Track <= currentTrack && (idx == -1 || r.Track > s.active[idx].Track) {
				idx = i
			}
		}
		if idx == -1 {
			for i, r := range s.active {
				if idx == -1 || r.Track > s.active[idx].Track {
					idx = i
				}
			}
			s.forward = true
		}
	}

	candidate := s.active[idx]
	s.active = removeAt(s.active, idx)
	return candidate
}

// --- shared helpers ------------------------------------------------------

func removeAt(queue []*Request, idx int) []*Request {
	out := make([]*Request, 0, len(queue)-1)
	out = append(out, queue[:idx]...)
	out = append(out, queue[idx+1:]...)
	return out
}

func requestIDs(reqs []*Request) []uint64 {
	ids := make([]uint64, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}
	return ids
}
