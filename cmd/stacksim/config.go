package main

import (
	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/spf13/cobra"
)

// configFlags mirrors simconfig.Config as a flat, flag-bindable struct
// bound directly to a cobra.Command's flag set rather than a separate
// parsing layer.
type configFlags struct {
	diskTracks      int
	sectorsPerTrack int
	trackSeekMs     float64
	edgeSeekMs      float64
	rpm             float64
	bufferCount     int
	lfuLeftMax      int
	lfuMiddleMax    int
	lookMaxSame     int
	flookForward    bool
	syscallReadMs   float64
	syscallWriteMs  float64
	interruptMs     float64
	quantumMs       float64
	processReadMs   float64
	processWriteMs  float64
	trace           bool
	microseconds    bool
	maxIterations   int
}

func defaultConfigFlags() configFlags {
	d := simconfig.DefaultConfig()
	return configFlags{
		diskTracks:      d.DiskTracks,
		sectorsPerTrack: d.SectorsPerTrack,
		trackSeekMs:     d.TrackSeekTimeMs,
		edgeSeekMs:      d.EdgeSeekTimeMs,
		rpm:             d.RPM,
		bufferCount:     d.BufferCount,
		lfuLeftMax:      d.LFULeftMax,
		lfuMiddleMax:    d.LFUMiddleMax,
		lookMaxSame:     d.LookMaxSameTrack,
		flookForward:    d.FlookProcessForward,
		syscallReadMs:   d.SyscallReadMs,
		syscallWriteMs:  d.SyscallWriteMs,
		interruptMs:     d.InterruptHandlerMs,
		quantumMs:       d.TimeQuantumMs,
		processReadMs:   d.ProcessReadMs,
		processWriteMs:  d.ProcessWriteMs,
		trace:           d.DetailedTrace,
		microseconds:    d.TimeUnitMicroseconds,
		maxIterations:   d.MaxIterations,
	}
}

// registerConfigFlags binds every simulation parameter onto cmd's flag set.
func registerConfigFlags(cmd *cobra.Command, o *configFlags) {
	fs := cmd.Flags()
	fs.IntVar(&o.diskTracks, "disk-tracks", o.diskTracks, "number of disk tracks")
	fs.IntVar(&o.sectorsPerTrack, "sectors-per-track", o.sectorsPerTrack, "sectors per track")
	fs.Float64Var(&o.trackSeekMs, "track-seek-ms", o.trackSeekMs, "per-track seek cost in ms")
	fs.Float64Var(&o.edgeSeekMs, "edge-seek-ms", o.edgeSeekMs, "fixed cost of seeking via either edge track")
	fs.Float64Var(&o.rpm, "rpm", o.rpm, "spindle speed, derives rotation and transfer time")
	fs.IntVar(&o.bufferCount, "buffer-count", o.bufferCount, "total cache buffers")
	fs.IntVar(&o.lfuLeftMax, "lfu-left-max", o.lfuLeftMax, "Left segment capacity")
	fs.IntVar(&o.lfuMiddleMax, "lfu-middle-max", o.lfuMiddleMax, "Middle segment capacity")
	fs.IntVar(&o.lookMaxSame, "look-max-same-track", o.lookMaxSame, "LOOK anti-starvation threshold")
	fs.BoolVar(&o.flookForward, "flook-forward", o.flookForward, "FLOOK initial sweep direction")
	fs.Float64Var(&o.syscallReadMs, "syscall-read-ms", o.syscallReadMs, "syscall charge for a read")
	fs.Float64Var(&o.syscallWriteMs, "syscall-write-ms", o.syscallWriteMs, "syscall charge for a write")
	fs.Float64Var(&o.interruptMs, "interrupt-ms", o.interruptMs, "interrupt handler charge")
	fs.Float64Var(&o.quantumMs, "quantum-ms", o.quantumMs, "round-robin time quantum")
	fs.Float64Var(&o.processReadMs, "process-read-ms", o.processReadMs, "CPU work charged after a read hit")
	fs.Float64Var(&o.processWriteMs, "process-write-ms", o.processWriteMs, "CPU work charged after a write hit")
	fs.BoolVar(&o.trace, "trace", o.trace, "stream structured trace events while running")
	fs.BoolVar(&o.microseconds, "microseconds", o.microseconds, "format trace/report durations in microseconds")
	fs.IntVar(&o.maxIterations, "max-iterations", o.maxIterations, "safety cap on kernel main-loop iterations")
}

func (o configFlags) toConfig(policy simconfig.Policy) simconfig.Config {
	return simconfig.Config{
		Policy:               policy,
		DiskTracks:           o.diskTracks,
		SectorsPerTrack:      o.sectorsPerTrack,
		TrackSeekTimeMs:      o.trackSeekMs,
		EdgeSeekTimeMs:       o.edgeSeekMs,
		RPM:                  o.rpm,
		BufferCount:          o.bufferCount,
		LFULeftMax:           o.lfuLeftMax,
		LFUMiddleMax:         o.lfuMiddleMax,
		LookMaxSameTrack:     o.lookMaxSame,
		FlookProcessForward:  o.flookForward,
		SyscallReadMs:        o.syscallReadMs,
		SyscallWriteMs:       o.syscallWriteMs,
		InterruptHandlerMs:   o.interruptMs,
		TimeQuantumMs:        o.quantumMs,
		ProcessReadMs:        o.processReadMs,
		ProcessWriteMs:       o.processWriteMs,
		DetailedTrace:        o.trace,
		TimeUnitMicroseconds: o.microseconds,
		MaxIterations:        o.maxIterations,
	}
}
