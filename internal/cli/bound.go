package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lkh/onetree"
)

func newBoundCmd() *cobra.Command {
	var (
		inst  instanceFlags
		iters int
	)

	cmd := &cobra.Command{
		Use:   "bound",
		Short: "Print the Held-Karp lower bound of a random Euclidean instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := inst.build()
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			tree, err := onetree.Build(m)
			if err != nil {
				return err
			}
			res, err := onetree.Optimize(m, iters)
			if err != nil {
				return err
			}
			prog.done("ascent finished", "iterations", res.Iterations)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "nodes:        %d\n", m.N())
			fmt.Fprintf(w, "1-tree:       %.4f\n", tree.Cost)
			fmt.Fprintf(w, "held-karp:    %.4f\n", res.Bound)
			fmt.Fprintf(w, "iterations:   %d\n", res.Iterations)

			return nil
		},
	}
	inst.bind(cmd.Flags())
	cmd.Flags().IntVar(&iters, "iterations", onetree.DefaultMaxIter, "subgradient iteration cap")

	return cmd
}
