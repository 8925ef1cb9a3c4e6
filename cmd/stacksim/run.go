package main

import (
	"errors"
	"fmt"

	"github.com/mshustov/stacksim/pkg/kernel"
	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/mshustov/stacksim/pkg/simstats"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	o := defaultConfigFlags()

	cmd := &cobra.Command{
		Use:       "run <fifo|look|flook>",
		Short:     "Run the simulation once under a single scheduling policy",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"fifo", "look", "flook"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, o, simconfig.Policy(args[0]))
		},
	}
	registerConfigFlags(cmd, &o)
	return cmd
}

func runOnce(cmd *cobra.Command, o configFlags, policy simconfig.Policy) error {
	cfg := o.toConfig(policy)
	wl := simconfig.SampleWorkload(cfg)

	var sink simstats.Sink = simstats.NoopSink{}
	if o.trace {
		sink = simstats.NewLogrusSink()
	}

	k, err := kernel.New(cfg, wl, sink)
	if err != nil {
		return fmt.Errorf("stacksim: building kernel: %w", err)
	}

	stats, err := k.Run()
	if errors.Is(err, kernel.ErrIterationCapReached) {
		logrus.Warn(err.Error())
	} else if err != nil {
		return fmt.Errorf("stacksim: running simulation: %w", err)
	}

	printStats(cmd, stats, o.microseconds)
	return nil
}

func printStats(cmd *cobra.Command, stats simstats.Stats, micro bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "policy: %s\n", stats.Policy)
	fmt.Fprintf(out, "simulated time: %s\n", simstats.FormatDuration(stats.System.TotalSimulatedMs, micro))
	fmt.Fprintf(out, "iterations: %d\n", stats.System.Iterations)
	fmt.Fprintf(out, "processes completed: %d/%d\n", stats.System.CompletedProcesses, len(stats.Processes))
	fmt.Fprintf(out, "cache: %d hits, %d misses, %.1f%% hit rate\n",
		stats.Cache.Hits, stats.Cache.Misses, stats.Cache.HitRate*100)
	fmt.Fprintf(out, "disk: %d requests, seek %s, rotation %s, transfer %s\n",
		stats.Disk.Completed,
		simstats.FormatDuration(stats.Disk.TotalSeekMs, micro),
		simstats.FormatDuration(stats.Disk.TotalRotationMs, micro),
		simstats.FormatDuration(stats.Disk.TotalTransferMs, micro))

	for _, p := range stats.Processes {
		fmt.Fprintf(out, "  %-20s cpu=%s io=%s wait=%s progress=%.0f%%\n",
			p.Name,
			simstats.FormatDuration(p.CPUMs, micro),
			simstats.FormatDuration(p.IOMs, micro),
			simstats.FormatDuration(p.WaitMs, micro),
			p.Progress)
	}
}
