package simstats

import (
	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/sirupsen/logrus"
)

// EventKind tags the shape of a trace event. Events are structured values,
// never pre-formatted strings; the sink decides how to render them.
type EventKind int

const (
	EventSchedulerDispatch EventKind = iota
	EventSchedulerPreempt
	EventSyscall
	EventCacheAccess
	EventDiskEnqueue
	EventDiskSeekDecision
	EventDiskKick
	EventInterrupt
	EventProcessBlocked
	EventProcessUnblocked
	EventProcessFinished
	EventFlush
)

// Event is one structured trace record keyed on virtual time.
type Event struct {
	Kind      EventKind
	TimeMs    float64
	ProcessID int
	Message   string

	// Fields carries event-specific structured data (sector, track,
	// buffer id, seek cost breakdown, etc.) for sinks that want it
	// without reparsing Message.
	Fields map[string]any
}

// SeekDecision describes why a particular seek path (direct, via the
// outer edge, or via the inner edge) was chosen, recovered from the
// original disk driver's trace line, kept structured rather than textual.
type SeekDecision struct {
	FromTrack, ToTrack                    int
	DirectMs, EdgeViaZeroMs, EdgeViaLastMs float64
	Chosen                                 string
}

// Sink receives trace events and settings banners during a run. The
// kernel treats it as an optional capability: a nil-safe NoopSink is
// used when tracing is disabled.
type Sink interface {
	Emit(ev Event)
	EmitSettings(cfg simconfig.Config)
}

// NoopSink discards everything; used when DetailedTrace is false.
type NoopSink struct{}

func (NoopSink) Emit(Event)                   {}
func (NoopSink) EmitSettings(simconfig.Config) {}

// LogrusSink renders trace events through a logrus.FieldLogger, matching
// the corpus's per-tick structured logging convention rather than plain
// stdout prints.
type LogrusSink struct {
	Log   *logrus.Logger
	micro bool
}

// NewLogrusSink builds a sink with a logrus logger preconfigured for
// simulation trace output (text formatter, full timestamp suppressed
// since virtual time is carried in the fields instead).
func NewLogrusSink() *LogrusSink {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &LogrusSink{Log: log}
}

func (s *LogrusSink) Emit(ev Event) {
	entry := s.Log.WithField("t", FormatDuration(ev.TimeMs, s.micro)).WithField("kind", ev.Kind)
	if ev.ProcessID != 0 {
		entry = entry.WithField("pid", ev.ProcessID)
	}
	for k, v := range ev.Fields {
		entry = entry.WithField(k, v)
	}
	entry.Info(ev.Message)
}

func (s *LogrusSink) EmitSettings(cfg simconfig.Config) {
	s.micro = cfg.TimeUnitMicroseconds
	s.Log.WithFields(logrus.Fields{
		"syscall_read_ms":   cfg.SyscallReadMs,
		"syscall_write_ms":  cfg.SyscallWriteMs,
		"interrupt_ms":      cfg.InterruptHandlerMs,
		"quantum_ms":        cfg.TimeQuantumMs,
		"process_write_ms":  cfg.ProcessWriteMs,
		"process_read_ms":   cfg.ProcessReadMs,
		"buffers":           cfg.BufferCount,
		"tracks":            cfg.DiskTracks,
		"sectors_per_track": cfg.SectorsPerTrack,
		"track_seek_ms":     cfg.TrackSeekTimeMs,
		"edge_seek_ms":      cfg.EdgeSeekTimeMs,
		"rotation_ms":       cfg.RotationLatencyMs(),
		"sector_rw_ms":      cfg.SectorRWMs(),
	}).Info("settings")
}
