// Command stacksim runs the discrete-event storage-stack simulator: a
// round-robin kernel driving a buffer cache and a disk under one of three
// request-scheduling policies over virtual time.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stacksim",
		Short:         "Simulate a round-robin kernel driving a buffer cache and disk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newCompareCommand())
	root.AddCommand(newShowConfigCommand())
	root.AddCommand(newInteractiveCommand())

	return root
}
