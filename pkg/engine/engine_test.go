package engine

import (
	"context"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributed-apsp/pkg/matrix"
	"github.com/distributed-apsp/pkg/partition"
)

// loopback is the single-process reducer stub: with a world of one, the
// element-wise minimum is the contribution itself and the verdict is the
// local flag.
type loopback struct{}

func (loopback) AllreduceMin(_ context.Context, vec []int) ([]int, error) {
	out := make([]int, len(vec))
	copy(out, vec)
	return out, nil
}

func (loopback) AllreduceDone(_ context.Context, done bool) (bool, error) {
	return done, nil
}

func testLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

// cycleGraph is the directed cycle 0→1→2→3→0.
func cycleGraph() *matrix.Dense {
	adj := matrix.New(4)
	for i := 0; i < 4; i++ {
		adj.Set(i, (i+1)%4, 1)
	}
	return adj
}

// cycleDistances is the known APSP solution of cycleGraph:
// dist(i,j) = (j-i+4) mod 4.
func cycleDistances() *matrix.Dense {
	want := matrix.New(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want.Set(i, j, (j-i+4)%4)
		}
	}
	return want
}

func TestProcRunCycleGraph(t *testing.T) {
	proc, err := NewProc(4, partition.Grid{NPX: 1, NPY: 1}, 0, loopback{}, testLogger())
	require.NoError(t, err)

	got, rounds, err := proc.Run(context.Background(), cycleGraph())
	require.NoError(t, err)

	assert.True(t, got.Equal(cycleDistances()), "got %v", got.Data)
	assert.GreaterOrEqual(t, rounds, 2, "a 4-cycle needs at least one improving round plus the confirming one")
}

func TestProcRunLeavesInputUntouched(t *testing.T) {
	adj := cycleGraph()
	want := adj.Clone()

	proc, err := NewProc(4, partition.Grid{NPX: 1, NPY: 1}, 0, loopback{}, testLogger())
	require.NoError(t, err)
	_, _, err = proc.Run(context.Background(), adj)
	require.NoError(t, err)

	assert.True(t, adj.Equal(want))
}

func TestStepConvergedIsIdempotent(t *testing.T) {
	proc, err := NewProc(4, partition.Grid{NPX: 1, NPY: 1}, 0, loopback{}, testLogger())
	require.NoError(t, err)

	// Drive the state machine by hand to the fixed point.
	cur := cycleGraph()
	matrix.Infinitize(cur)
	next := matrix.New(4)

	state := Running
	for state != Converged {
		cur, state, err = proc.Step(context.Background(), cur, next)
		require.NoError(t, err)
	}

	// One more round on converged state must stay converged and change
	// nothing.
	fixed := cur.Clone()
	cur, state, err = proc.Step(context.Background(), cur, next)
	require.NoError(t, err)
	assert.Equal(t, Converged, state)
	assert.True(t, cur.Equal(fixed))
}

func TestProcRunDimensionMismatch(t *testing.T) {
	proc, err := NewProc(5, partition.Grid{NPX: 1, NPY: 1}, 0, loopback{}, testLogger())
	require.NoError(t, err)

	_, _, err = proc.Run(context.Background(), cycleGraph())
	assert.Error(t, err)
}

func TestNewProcBadGrid(t *testing.T) {
	_, err := NewProc(4, partition.Grid{NPX: 0, NPY: 2}, 0, loopback{}, testLogger())
	assert.ErrorIs(t, err, partition.ErrBadAxisCount)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "converged", Converged.String())
	assert.Equal(t, "unknown", State(42).String())
}
