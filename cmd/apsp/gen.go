package main

import (
	"github.com/spf13/cobra"

	"github.com/distributed-apsp/pkg/graphgen"
	"github.com/distributed-apsp/pkg/graphio"
)

func newGenCmd() *cobra.Command {
	var (
		nodes int
		prob  float64
		seed  int64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random adjacency matrix file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if seed == 0 {
				seed = graphgen.DefaultSeed
			}
			m, err := graphgen.Random(nodes, prob, seed)
			if err != nil {
				return err
			}
			if err := graphio.WriteMatrix(out, m); err != nil {
				return err
			}

			logger.Info("wrote adjacency matrix", "path", out, "n", nodes, "p", prob, "seed", seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&nodes, "nodes", "n", 200, "number of nodes")
	cmd.Flags().Float64VarP(&prob, "prob", "p", 0.05, "probability of including an edge")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (default pinned for reproducibility)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
