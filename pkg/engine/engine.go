// Package engine runs the global convergence and merge protocol: a
// lockstep round loop in which every process squares its own region of
// the distance matrix, the per-region results are merged with an
// element-wise minimum reduction, and per-process changed flags are
// reduced into a single convergence verdict.
package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/distributed-apsp/pkg/kernel"
	"github.com/distributed-apsp/pkg/matrix"
	"github.com/distributed-apsp/pkg/partition"
)

// Reducer is the collective-reduction surface the protocol needs. It is
// satisfied by *collective.Comm; tests drive the round state machine with
// a single-process loopback stub instead.
type Reducer interface {
	// AllreduceMin blocks until every process has contributed a vector and
	// returns the element-wise minimum to all of them.
	AllreduceMin(ctx context.Context, vec []int) ([]int, error)

	// AllreduceDone blocks until every process has contributed its done
	// flag and returns true only if all of them were done.
	AllreduceDone(ctx context.Context, done bool) (bool, error)
}

// Proc is one process's view of the computation: its rank, its place in
// the grid, the region it is authoritative for, and the reducer it
// synchronizes through. All of it is explicit — no component reads
// ambient rank or world-size state.
type Proc struct {
	rank    int
	n       int
	grid    partition.Grid
	region  partition.Region
	reducer Reducer
	log     *log.Logger
}

// NewProc builds the process context for rank in an n-node computation
// over grid. The region is computed once here and never changes.
func NewProc(n int, grid partition.Grid, rank int, reducer Reducer, logger *log.Logger) (*Proc, error) {
	region, err := partition.RegionFor(n, grid, rank)
	if err != nil {
		return nil, fmt.Errorf("rank %d: %w", rank, err)
	}
	return &Proc{
		rank:    rank,
		n:       n,
		grid:    grid,
		region:  region,
		reducer: reducer,
		log:     logger.With("rank", rank, "region", region.String()),
	}, nil
}

// Region returns the rectangle of matrix indices this process owns.
func (p *Proc) Region() partition.Region { return p.region }

// Run executes the full protocol against the external-convention
// adjacency matrix adj and returns the external-convention result along
// with the number of squaring rounds it took. adj is not mutated.
//
// The loop holds exactly two full buffers: current, read-only within a
// round, and next, written only inside this process's region. Only this
// function promotes a merged next to current between rounds.
func (p *Proc) Run(ctx context.Context, adj *matrix.Dense) (*matrix.Dense, int, error) {
	if adj.N != p.n {
		return nil, 0, fmt.Errorf("adjacency matrix is %d nodes, proc configured for %d", adj.N, p.n)
	}

	cur := adj.Clone()
	matrix.Infinitize(cur)

	// Upfront merge: every process contributes its full matrix, so the
	// minimum leaves it unchanged and every process starts round 1 from an
	// identical copy.
	merged, err := p.reducer.AllreduceMin(ctx, cur.Data)
	if err != nil {
		return nil, 0, fmt.Errorf("initial merge: %w", err)
	}
	cur = matrix.FromData(p.n, merged)

	next := matrix.New(p.n)
	rounds := 0
	for state := Running; state != Converged; {
		rounds++
		cur, state, err = p.Step(ctx, cur, next)
		if err != nil {
			return nil, 0, fmt.Errorf("round %d: %w", rounds, err)
		}
		p.log.Debug("round merged", "round", rounds, "state", state)
	}

	matrix.Deinfinitize(cur)
	return cur, rounds, nil
}

// Step runs a single protocol round: seed next, square the owned region,
// merge all contributions, and reduce the convergence verdict. It returns
// the merged matrix to use as current in the following round and the
// resulting protocol state.
//
// cur must be the globally merged internal-convention matrix; next is a
// scratch buffer of the same dimension that Step may overwrite freely.
func (p *Proc) Step(ctx context.Context, cur, next *matrix.Dense) (*matrix.Dense, State, error) {
	p.seed(cur, next)
	changed := kernel.Square(p.region, p.n, cur, next)

	merged, err := p.reducer.AllreduceMin(ctx, next.Data)
	if err != nil {
		return nil, Running, fmt.Errorf("matrix merge: %w", err)
	}
	done, err := p.reducer.AllreduceDone(ctx, !changed)
	if err != nil {
		return nil, Running, fmt.Errorf("convergence check: %w", err)
	}

	state := Running
	if done {
		state = Converged
	}
	return matrix.FromData(p.n, merged), state, nil
}

// seed prepares next for one round: inside the owned region it takes
// current's values, so un-improved entries carry the previous round's
// distance as their upper bound; everywhere else it takes the unreachable
// sentinel, the neutral element of the minimum merge, so this process
// cannot contaminate entries other processes own.
func (p *Proc) seed(cur, next *matrix.Dense) {
	inf := matrix.Unreachable(p.n)
	for i := range next.Data {
		next.Data[i] = inf
	}
	for i := p.region.IMin; i < p.region.IMax; i++ {
		copy(next.Data[i*p.n+p.region.JMin:i*p.n+p.region.JMax],
			cur.Data[i*p.n+p.region.JMin:i*p.n+p.region.JMax])
	}
}
