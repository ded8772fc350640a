// Package cli implements the lkh command-line interface.
//
// Commands:
//   - solve: run one of the local-search algorithms on a random Euclidean
//     instance (or the flags/config given) and print the tour;
//   - bound: print the Held-Karp lower bound of an instance.
//
// All commands accept --verbose (-v) for debug logging; the logger travels
// through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets the information printed by --version.
func SetVersion(v, c string) {
	version, commit = v, c
}

// Execute runs the CLI with args (os.Args[1:] when nil), writing results to out.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	root := newRootCmd(out)
	if args != nil {
		root.SetArgs(args)
	}

	return root.ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "lkh",
		Short:        "Lin-Kernighan style TSP local search",
		Long:         `lkh runs Lin-Kernighan and Lin-Kernighan-Helsgaun local search, optionally under single or multi-worker tabu restarts, on symmetric TSP instances.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.SetOut(out)
	root.SetVersionTemplate(fmt.Sprintf("lkh %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newBoundCmd())

	return root
}
