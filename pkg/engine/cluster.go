package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/distributed-apsp/pkg/collective"
	"github.com/distributed-apsp/pkg/matrix"
	"github.com/distributed-apsp/pkg/partition"
)

// ErrResultDisagreement reports processes finishing with different
// matrices, which means the merge protocol itself is broken.
var ErrResultDisagreement = errors.New("processes disagree on final matrix")

// Cluster launches the full process grid in-process: one goroutine per
// rank, all synchronizing through a shared communicator. Every proc runs
// the same Run loop, single-program-multiple-data style.
type Cluster struct {
	n    int
	grid partition.Grid
	log  *log.Logger
}

// Result is the outcome of a cluster run.
type Result struct {
	Matrix *matrix.Dense
	Rounds int
}

// NewCluster validates the configuration and prepares a cluster of
// worldSize processes arranged as grid over an n-node graph. Validation
// happens here, before anything is launched, so a bad grid can never
// strand processes inside a collective.
func NewCluster(n int, grid partition.Grid, worldSize int, logger *log.Logger) (*Cluster, error) {
	if n <= 0 {
		return nil, fmt.Errorf("node count must be positive, got %d", n)
	}
	if err := grid.Validate(worldSize); err != nil {
		return nil, err
	}
	return &Cluster{n: n, grid: grid, log: logger}, nil
}

// Run executes the distributed computation on adj and returns the final
// external-convention distance matrix. Any process failing aborts the
// whole run: the shared context is cancelled so every proc blocked in a
// collective returns, and the first error is reported.
func (c *Cluster) Run(ctx context.Context, adj *matrix.Dense) (*Result, error) {
	if adj.N != c.n {
		return nil, fmt.Errorf("adjacency matrix is %d nodes, cluster configured for %d", adj.N, c.n)
	}

	size := c.grid.Size()
	comm, err := collective.NewCommunicator(size)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		rank   int
		m      *matrix.Dense
		rounds int
		err    error
	}

	var wg sync.WaitGroup
	outcomes := make([]outcome, size)
	for rank := 0; rank < size; rank++ {
		cm, err := comm.Comm(rank)
		if err != nil {
			cancel()
			wg.Wait()
			return nil, err
		}
		proc, err := NewProc(c.n, c.grid, rank, cm, c.log)
		if err != nil {
			cancel()
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(rank int, proc *Proc) {
			defer wg.Done()
			m, rounds, err := proc.Run(ctx, adj)
			outcomes[rank] = outcome{rank: rank, m: m, rounds: rounds, err: err}
			if err != nil {
				cancel()
			}
		}(rank, proc)
	}
	wg.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			return nil, fmt.Errorf("rank %d: %w", o.rank, o.err)
		}
	}
	for _, o := range outcomes[1:] {
		if !outcomes[0].m.Equal(o.m) {
			return nil, fmt.Errorf("%w: rank 0 vs rank %d", ErrResultDisagreement, o.rank)
		}
	}

	c.log.Info("converged", "rounds", outcomes[0].rounds, "procs", size)
	return &Result{Matrix: outcomes[0].m, Rounds: outcomes[0].rounds}, nil
}
