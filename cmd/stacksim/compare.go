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

var comparePolicies = []simconfig.Policy{
	simconfig.PolicyFIFO,
	simconfig.PolicyLOOK,
	simconfig.PolicyFLOOK,
}

func newCompareCommand() *cobra.Command {
	o := defaultConfigFlags()

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run all three scheduling policies on the same sample workload and compare",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, o)
		},
	}
	registerConfigFlags(cmd, &o)
	return cmd
}

func runCompare(cmd *cobra.Command, o configFlags) error {
	results := make([]simstats.Stats, 0, len(comparePolicies))

	for _, policy := range comparePolicies {
		cfg := o.toConfig(policy)
		wl := simconfig.SampleWorkload(cfg)
		k, err := kernel.New(cfg, wl, simstats.NoopSink{})
		if err != nil {
			return fmt.Errorf("stacksim: building kernel for %s: %w", policy, err)
		}
		stats, err := k.Run()
		if errors.Is(err, kernel.ErrIterationCapReached) {
			logrus.Warnf("%s: %s", policy, err)
		} else if err != nil {
			return fmt.Errorf("stacksim: running %s: %w", policy, err)
		}
		results = append(results, stats)
	}

	printComparisonTable(cmd, results, o.microseconds)
	return nil
}

// printComparisonTable prints a results table plus a best-overall,
// best-seek, and best-cache summary across the compared policies.
func printComparisonTable(cmd *cobra.Command, results []simstats.Stats, micro bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-10s %14s %14s %14s %10s\n", "Algorithm", "Total Time", "Disk Time", "Avg Seek", "Hit Rate")
	for _, r := range results {
		fmt.Fprintf(out, "%-10s %14s %14s %14s %9.1f%%\n",
			r.Policy,
			simstats.FormatDuration(r.System.TotalSimulatedMs, micro),
			simstats.FormatDuration(r.Disk.TotalDiskTimeMs, micro),
			simstats.FormatDuration(r.Disk.AverageSeekMs, micro),
			r.Cache.HitRate*100)
	}

	bestOverall, bestSeek, bestCache := results[0], results[0], results[0]
	for _, r := range results[1:] {
		if r.System.TotalSimulatedMs < bestOverall.System.TotalSimulatedMs {
			bestOverall = r
		}
		if r.Disk.AverageSeekMs < bestSeek.Disk.AverageSeekMs {
			bestSeek = r
		}
		if r.Cache.HitRate > bestCache.Cache.HitRate {
			bestCache = r
		}
	}

	fmt.Fprintf(out, "\nBest overall performance: %s\n", bestOverall.Policy)
	fmt.Fprintf(out, "Best seek performance: %s\n", bestSeek.Policy)
	fmt.Fprintf(out, "Best cache performance: %s\n", bestCache.Policy)
}
