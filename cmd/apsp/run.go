package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/distributed-apsp/pkg/checksum"
	"github.com/distributed-apsp/pkg/config"
	"github.com/distributed-apsp/pkg/engine"
	"github.com/distributed-apsp/pkg/graphgen"
	"github.com/distributed-apsp/pkg/graphio"
	"github.com/distributed-apsp/pkg/matrix"
	"github.com/distributed-apsp/pkg/partition"
)

func newRunCmd() *cobra.Command {
	var (
		cfg        config.Config
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve all-pairs shortest paths over a process grid",
		Long:  "run generates (or loads) a dense adjacency matrix, distributes it over an npx×npy grid of workers, iterates min-plus squaring to convergence and prints the Fletcher-16 checksum of the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context()).With("run", uuid.NewString())

			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = *loaded
			} else if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Seed == 0 {
				cfg.Seed = graphgen.DefaultSeed
			}

			var adj *matrix.Dense
			var err error
			if cfg.InputPath != "" {
				adj, err = graphio.ReadMatrix(cfg.InputPath)
				if err != nil {
					return err
				}
				cfg.Nodes = adj.N
				logger.Info("loaded adjacency matrix", "path", cfg.InputPath, "n", adj.N)
			} else {
				adj, err = graphgen.Random(cfg.Nodes, cfg.EdgeProbability, cfg.Seed)
				if err != nil {
					return err
				}
				logger.Info("generated random graph", "n", cfg.Nodes, "p", cfg.EdgeProbability, "seed", cfg.Seed)
			}

			if cfg.AdjacencyPath != "" {
				if err := graphio.WriteMatrix(cfg.AdjacencyPath, adj); err != nil {
					return err
				}
				logger.Info("wrote adjacency matrix", "path", cfg.AdjacencyPath)
			}

			grid := partition.Grid{NPX: cfg.Grid.NPX, NPY: cfg.Grid.NPY}
			cluster, err := engine.NewCluster(cfg.Nodes, grid, cfg.Procs, logger)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := cluster.Run(cmd.Context(), adj)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			logger.Info("solved",
				"n", cfg.Nodes,
				"grid", fmt.Sprintf("%dx%d", grid.NPX, grid.NPY),
				"rounds", result.Rounds,
				"elapsed", elapsed.Round(time.Millisecond))
			fmt.Printf("n:     %d\n", cfg.Nodes)
			fmt.Printf("p:     %g\n", cfg.EdgeProbability)
			fmt.Printf("Time:  %s\n", elapsed)
			fmt.Printf("Check: %X\n", checksum.Matrix(result.Matrix))

			if cfg.OutputPath != "" {
				if err := graphio.WriteMatrix(cfg.OutputPath, result.Matrix); err != nil {
					return err
				}
				logger.Info("wrote distance matrix", "path", cfg.OutputPath)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.Nodes, "nodes", "n", 0, "number of nodes")
	cmd.Flags().Float64VarP(&cfg.EdgeProbability, "prob", "p", 0.05, "probability of including an edge")
	cmd.Flags().IntVarP(&cfg.Grid.NPX, "npx", "x", 0, "processes along the row axis (required)")
	cmd.Flags().IntVarP(&cfg.Grid.NPY, "npy", "y", 0, "processes along the column axis (required)")
	cmd.Flags().IntVar(&cfg.Procs, "procs", 0, "processes to launch (default npx*npy, must match)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "graph generator seed (default pinned for reproducibility)")
	cmd.Flags().StringVarP(&cfg.AdjacencyPath, "adjacency-out", "i", "", "write the adjacency matrix to this file")
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "write the distance matrix to this file")
	cmd.Flags().StringVar(&cfg.InputPath, "input", "", "load the adjacency matrix from a file instead of generating")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file (overrides flags)")

	return cmd
}
