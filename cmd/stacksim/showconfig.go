package main

import (
	"fmt"

	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/spf13/cobra"
)

func newShowConfigCommand() *cobra.Command {
	o := defaultConfigFlags()

	cmd := &cobra.Command{
		Use:   "show-config",
		Short: "Print the active configuration (defaults overridable by flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.toConfig(simconfig.PolicyFIFO)
			printConfig(cmd, cfg)
			return nil
		},
	}
	registerConfigFlags(cmd, &o)
	return cmd
}

func printConfig(cmd *cobra.Command, cfg simconfig.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Disk geometry:")
	fmt.Fprintf(out, "  tracks=%d sectors_per_track=%d total_sectors=%d\n",
		cfg.DiskTracks, cfg.SectorsPerTrack, cfg.TotalSectors())
	fmt.Fprintf(out, "  rpm=%.0f rotation_latency_ms=%.4f sector_rw_ms=%.6f\n",
		cfg.RPM, cfg.RotationLatencyMs(), cfg.SectorRWMs())
	fmt.Fprintf(out, "  track_seek_ms=%.3f edge_seek_ms=%.3f\n", cfg.TrackSeekTimeMs, cfg.EdgeSeekTimeMs)

	fmt.Fprintln(out, "Cache:")
	fmt.Fprintf(out, "  buffer_count=%d lfu_left_max=%d lfu_middle_max=%d\n",
		cfg.BufferCount, cfg.LFULeftMax, cfg.LFUMiddleMax)

	fmt.Fprintln(out, "Scheduling:")
	fmt.Fprintf(out, "  look_max_same_track=%d flook_process_forward=%t\n",
		cfg.LookMaxSameTrack, cfg.FlookProcessForward)

	fmt.Fprintln(out, "CPU/IO timing (ms):")
	fmt.Fprintf(out, "  syscall_read=%.2f syscall_write=%.2f interrupt_handler=%.2f\n",
		cfg.SyscallReadMs, cfg.SyscallWriteMs, cfg.InterruptHandlerMs)
	fmt.Fprintf(out, "  quantum=%.2f process_read=%.2f process_write=%.2f\n",
		cfg.TimeQuantumMs, cfg.ProcessReadMs, cfg.ProcessWriteMs)

	fmt.Fprintln(out, "Trace:")
	fmt.Fprintf(out, "  detailed=%t microseconds=%t max_iterations=%d\n",
		cfg.DetailedTrace, cfg.TimeUnitMicroseconds, cfg.MaxIterations)
}
