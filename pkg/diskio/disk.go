// Package diskio models the single-spindle rotational disk and the
// pluggable disk-request scheduler (FIFO, LOOK, FLOOK).
package diskio

import "github.com/mshustov/stacksim/pkg/simconfig"

// Mode distinguishes a read request from a write request.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// FlushProcessID marks a request minted during the end-of-run flush
// rather than by a real process.
const FlushProcessID = -1

// Request is a single pending or completed disk operation.
type Request struct {
	ID          uint64
	Sector      int
	Track       int
	Mode        Mode
	ProcessID   int
	CreatedAt   float64
	CompletedAt float64
	completed   bool
}

// Completed reports whether the interrupt handler has already recorded a
// completion time for this request.
func (r *Request) Completed() bool { return r.completed }

// MarkCompleted records the completion time.
func (r *Request) MarkCompleted(at float64) {
	r.CompletedAt = at
	r.completed = true
}

// NewRequest builds a request for sector, deriving its track from the
// configured geometry.
func NewRequest(id uint64, sector int, mode Mode, processID int, createdAt float64, cfg simconfig.Config) *Request {
	return &Request{
		ID:        id,
		Sector:    sector,
		Track:     sector / cfg.SectorsPerTrack,
		Mode:      mode,
		ProcessID: processID,
		CreatedAt: createdAt,
	}
}

// Disk is the rotational disk model: a head position plus cumulative
// service-time totals. It is stateless beyond CurrentTrack and the
// running totals.
type Disk struct {
	cfg simconfig.Config

	CurrentTrack int

	TotalSeekMs     float64
	TotalRotationMs float64
	TotalTransferMs float64
	Completed       int
}

// NewDisk returns a disk model parked at track 0.
func NewDisk(cfg simconfig.Config) *Disk {
	return &Disk{cfg: cfg}
}

// SeekCost returns the seek time to reach track, without moving the
// head: min(direct, edge-via-0, edge-via-last).
func (d *Disk) SeekCost(track int) float64 {
	direct, edgeViaZero, edgeViaLast := d.seekOptions(track)
	return min3(direct, edgeViaZero, edgeViaLast)
}

// SeekOptions exposes the three candidate seek costs, used both by
// SeekCost and by the trace sink's seek-decision event.
func (d *Disk) SeekOptions(track int) (direct, edgeViaZero, edgeViaLast float64) {
	return d.seekOptions(track)
}

func (d *Disk) seekOptions(track int) (direct, edgeViaZero, edgeViaLast float64) {
	distance := track - d.CurrentTrack
	if distance < 0 {
		distance = -distance
	}
	direct = float64(distance) * d.cfg.TrackSeekTimeMs
	edgeViaZero = d.cfg.EdgeSeekTimeMs + float64(track)*d.cfg.TrackSeekTimeMs
	edgeViaLast = d.cfg.EdgeSeekTimeMs + float64(d.cfg.DiskTracks-1-track)*d.cfg.TrackSeekTimeMs
	return
}

// ServiceTime returns the total time (seek + rotation + transfer) to
// service a request for track, without moving the head.
func (d *Disk) ServiceTime(track int) float64 {
	return d.SeekCost(track) + d.cfg.RotationLatencyMs() + d.cfg.SectorRWMs()
}

// Execute moves the head to the request's track and records the service
// cost in the running totals, returning the total service time.
func (d *Disk) Execute(req *Request) float64 {
	seek := d.SeekCost(req.Track)
	rotation := d.cfg.RotationLatencyMs()
	transfer := d.cfg.SectorRWMs()

	d.TotalSeekMs += seek
	d.TotalRotationMs += rotation
	d.TotalTransferMs += transfer
	d.CurrentTrack = req.Track
	d.Completed++

	return seek + rotation + transfer
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
