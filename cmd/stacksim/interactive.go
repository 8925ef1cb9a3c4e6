package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mshustov/stacksim/pkg/simconfig"
	"github.com/spf13/cobra"
)

// newInteractiveCommand runs a menu-driven REPL: run one policy, compare
// all three, show the active config, or exit.
func newInteractiveCommand() *cobra.Command {
	o := defaultConfigFlags()

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Interactive menu: run a policy, compare, show config, or exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, o)
		},
	}
	registerConfigFlags(cmd, &o)
	return cmd
}

func runInteractive(cmd *cobra.Command, o configFlags) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintln(out, "\nstacksim")
		fmt.Fprintln(out, "  1) run fifo")
		fmt.Fprintln(out, "  2) run look")
		fmt.Fprintln(out, "  3) run flook")
		fmt.Fprintln(out, "  4) compare all policies")
		fmt.Fprintln(out, "  5) show config")
		fmt.Fprintln(out, "  6) exit")
		fmt.Fprint(out, "choice: ")

		if !scanner.Scan() {
			return nil
		}
		choice := strings.TrimSpace(scanner.Text())

		switch choice {
		case "1":
			if err := runOnce(cmd, o, simconfig.PolicyFIFO); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		case "2":
			if err := runOnce(cmd, o, simconfig.PolicyLOOK); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		case "3":
			if err := runOnce(cmd, o, simconfig.PolicyFLOOK); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		case "4":
			if err := runCompare(cmd, o); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		case "5":
			printConfig(cmd, o.toConfig(simconfig.PolicyFIFO))
		case "6", "exit", "quit":
			return nil
		default:
			fmt.Fprintf(out, "unrecognized choice %q\n", choice)
		}
	}
}
