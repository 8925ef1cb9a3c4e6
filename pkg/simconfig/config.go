// Package simconfig holds the simulator's configuration and workload
// surface: the input records the kernel consumes.
package simconfig

import "fmt"

// Policy names the disk-request scheduling discipline.
type Policy string

const (
	PolicyFIFO  Policy = "fifo"
	PolicyLOOK  Policy = "look"
	PolicyFLOOK Policy = "flook"
)

// Config holds every tunable of the simulated system. Units: ms for all
// time fields, sectors/tracks for geometry.
//
// Zero value is not ready to use; call DefaultConfig() for a populated
// instance and override individual fields before calling Validate.
type Config struct {
	Policy Policy

	// Disk geometry.
	DiskTracks      int
	SectorsPerTrack int

	// Seek cost parameters.
	TrackSeekTimeMs float64
	EdgeSeekTimeMs  float64

	// RPM drives the derived rotation/transfer constants.
	RPM float64

	// Cache.
	BufferCount  int
	LFULeftMax   int
	LFUMiddleMax int

	// LOOK anti-starvation.
	LookMaxSameTrack int

	// FLOOK initial sweep direction.
	FlookProcessForward bool

	// CPU/IO timing.
	SyscallReadMs      float64
	SyscallWriteMs     float64
	InterruptHandlerMs float64
	TimeQuantumMs      float64
	ProcessReadMs      float64
	ProcessWriteMs     float64

	// Trace verbosity.
	DetailedTrace        bool
	TimeUnitMicroseconds bool

	// MaxIterations bounds the kernel's main loop as a safety cap. 0
	// means DefaultMaxIterations.
	MaxIterations int
}

// DefaultMaxIterations is the default safety cap on kernel main-loop
// iterations.
const DefaultMaxIterations = 1_000_000

// DefaultConfig returns a Config pre-filled with the reference disk and
// timing parameters (disk_tracks 10000, sectors_per_track 500, etc).
func DefaultConfig() Config {
	return Config{
		Policy: PolicyFIFO,

		DiskTracks:      10000,
		SectorsPerTrack: 500,

		TrackSeekTimeMs: 0.5,
		EdgeSeekTimeMs:  10.0,

		RPM: 7500,

		BufferCount:  5,
		LFULeftMax:   4,
		LFUMiddleMax: 3,

		LookMaxSameTrack: 5,

		FlookProcessForward: true,

		SyscallReadMs:      0.15,
		SyscallWriteMs:     0.15,
		InterruptHandlerMs: 0.05,
		TimeQuantumMs:      20,
		ProcessReadMs:      7,
		ProcessWriteMs:     7,

		DetailedTrace:        false,
		TimeUnitMicroseconds: false,

		MaxIterations: DefaultMaxIterations,
	}
}

// RotationLatencyMs is the derived average rotational latency: half a
// revolution at the configured RPM, in ms (30000/rpm).
func (c Config) RotationLatencyMs() float64 {
	return 30000.0 / c.RPM
}

// SectorRWMs is the derived per-sector read/write transfer time, in ms
// (60000/(rpm*sectors_per_track)).
func (c Config) SectorRWMs() float64 {
	return 60000.0 / (c.RPM * float64(c.SectorsPerTrack))
}

// TotalSectors is the addressable sector space of the configured geometry.
func (c Config) TotalSectors() int {
	return c.DiskTracks * c.SectorsPerTrack
}

// Validate checks every field for configuration errors: invalid policy
// name, non-positive sizes, negative times. It runs before
// any simulation starts; no partial simulation is ever produced from an
// invalid Config.
func (c Config) Validate() error {
	switch c.Policy {
	case PolicyFIFO, PolicyLOOK, PolicyFLOOK:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownPolicy, c.Policy)
	}

	positive := map[string]float64{
		"DiskTracks":      float64(c.DiskTracks),
		"SectorsPerTrack": float64(c.SectorsPerTrack),
		"RPM":             c.RPM,
		"BufferCount":     float64(c.BufferCount),
		"LFULeftMax":      float64(c.LFULeftMax),
		"LFUMiddleMax":    float64(c.LFUMiddleMax),
		"TimeQuantumMs":   c.TimeQuantumMs,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, name, v)
		}
	}

	nonNegative := map[string]float64{
		"TrackSeekTimeMs":    c.TrackSeekTimeMs,
		"EdgeSeekTimeMs":     c.EdgeSeekTimeMs,
		"SyscallReadMs":      c.SyscallReadMs,
		"SyscallWriteMs":     c.SyscallWriteMs,
		"InterruptHandlerMs": c.InterruptHandlerMs,
		"ProcessReadMs":      c.ProcessReadMs,
		"ProcessWriteMs":     c.ProcessWriteMs,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, v)
		}
	}

	if c.LookMaxSameTrack <= 0 {
		return fmt.Errorf("%w: LookMaxSameTrack must be > 0, got %d", ErrInvalidConfig, c.LookMaxSameTrack)
	}

	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: MaxIterations must be >= 0, got %d", ErrInvalidConfig, c.MaxIterations)
	}

	return nil
}
