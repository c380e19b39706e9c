// Package collective provides the blocking collective reductions the
// merge protocol is built on: every process contributes a value, all
// processes receive the combined result.
//
// The substrate here is in-process — the cooperating processes are
// goroutines sharing one Communicator — but the calling convention is the
// distributed one: a call blocks until the whole world has contributed,
// and a failed or abandoned reduction is fatal to the entire run.
package collective

import (
	"context"
	"fmt"
	"sync"
)

// Communicator coordinates collective operations across a fixed world of
// size procs. All procs must issue the same sequence of collective calls;
// calls on one communicator are totally ordered.
type Communicator struct {
	size int

	mu    sync.Mutex
	mat   *vecRound
	flags *flagRound
}

// vecRound accumulates one element-wise-minimum reduction in flight.
type vecRound struct {
	vec       []int
	remaining int
	err       error
	ready     chan struct{}
}

// flagRound accumulates one done-flag reduction in flight.
type flagRound struct {
	done      bool
	remaining int
	ready     chan struct{}
}

// NewCommunicator creates a communicator for a world of size procs.
func NewCommunicator(size int) (*Communicator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWorldSize, size)
	}
	return &Communicator{size: size}, nil
}

// Size returns the world size.
func (c *Communicator) Size() int {
	return c.size
}

// Comm returns rank's handle on the communicator.
func (c *Communicator) Comm(rank int) (*Comm, error) {
	if rank < 0 || rank >= c.size {
		return nil, fmt.Errorf("%w: rank %d in world of %d", ErrBadRank, rank, c.size)
	}
	return &Comm{rank: rank, c: c}, nil
}

// Comm is one process's endpoint for collective calls.
type Comm struct {
	rank int
	c    *Communicator
}

// Rank returns the calling process's rank in [0, Size()).
func (cm *Comm) Rank() int { return cm.rank }

// Size returns the world size.
func (cm *Comm) Size() int { return cm.c.size }

// AllreduceMin combines every process's vector into the element-wise
// minimum and returns it to all of them. It blocks until the whole world
// has contributed. All contributions in one call must have the same
// length; a mismatch poisons the reduction for every participant.
//
// Cancellation of ctx while blocked is a communication fault: the call
// returns ctx's error and the computation cannot continue, since the
// remaining processes are left without this process's contribution.
func (cm *Comm) AllreduceMin(ctx context.Context, vec []int) ([]int, error) {
	c := cm.c

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	c.mu.Lock()
	r := c.mat
	if r == nil {
		r = &vecRound{
			vec:       make([]int, len(vec)),
			remaining: c.size,
			ready:     make(chan struct{}),
		}
		copy(r.vec, vec)
		c.mat = r
	} else if len(vec) != len(r.vec) {
		r.err = fmt.Errorf("%w: got %d, round has %d", ErrLengthMismatch, len(vec), len(r.vec))
	} else {
		for i, v := range vec {
			if v < r.vec[i] {
				r.vec[i] = v
			}
		}
	}
	r.remaining--
	if r.remaining == 0 {
		c.mat = nil
		close(r.ready)
	}
	c.mu.Unlock()

	select {
	case <-r.ready:
	case <-ctx.Done():
		// The round may have completed concurrently with cancellation;
		// prefer the completed result so lockstep peers agree.
		select {
		case <-r.ready:
		default:
			return nil, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, r.err)
	}

	out := make([]int, len(r.vec))
	copy(out, r.vec)
	return out, nil
}

// AllreduceDone combines every process's done flag and returns true only
// if the whole world reported done — the minimum over 0/1 flags. Blocking
// and failure semantics match AllreduceMin.
func (cm *Comm) AllreduceDone(ctx context.Context, done bool) (bool, error) {
	c := cm.c

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	c.mu.Lock()
	r := c.flags
	if r == nil {
		r = &flagRound{
			done:      done,
			remaining: c.size,
			ready:     make(chan struct{}),
		}
		c.flags = r
	} else {
		r.done = r.done && done
	}
	r.remaining--
	if r.remaining == 0 {
		c.flags = nil
		close(r.ready)
	}
	c.mu.Unlock()

	select {
	case <-r.ready:
	case <-ctx.Done():
		select {
		case <-r.ready:
		default:
			return false, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
	}
	return r.done, nil
}
