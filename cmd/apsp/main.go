// Command apsp computes all-pairs shortest paths on a dense graph with
// min-plus repeated squaring, distributed over an in-process 2D grid of
// cooperating workers.
package main

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "apsp",
		Short:        "Parallel all-pairs shortest path on a random graph",
		Long:         "apsp computes the shortest path between every pair of nodes in a dense graph using min-plus repeated squaring, distributed over a rectangular grid of cooperating processes.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newGenCmd())
	root.AddCommand(newChecksumCmd())

	return root.ExecuteContext(context.Background())
}
