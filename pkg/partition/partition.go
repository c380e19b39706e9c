// Package partition computes each process's ownership region of the
// global n×n matrix from its position in a 2D process grid.
//
// The split is deterministic and communication-free: every process
// evaluates the same pure functions over (n, grid shape, rank) and
// arrives at the same tiling of [0,n)×[0,n).
package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrBadAxisCount reports a non-positive process count on a grid axis.
	ErrBadAxisCount = errors.New("axis process count must be positive")

	// ErrBadAxisIndex reports a process index outside [0, count).
	ErrBadAxisIndex = errors.New("axis process index out of range")

	// ErrGridMismatch reports a grid whose area does not equal the number
	// of launched processes.
	ErrGridMismatch = errors.New("grid shape does not match process count")
)

// Split divides n indices into count contiguous blocks and returns the
// half-open range [start, start+size) owned by block index (0-based).
//
// Blocks have size floor(n/count) or floor(n/count)+1; the first
// n mod count blocks receive the larger size, so sizes differ by at most
// one and sum to n.
func Split(n, count, index int) (start, size int, err error) {
	if count <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrBadAxisCount, count)
	}
	if index < 0 || index >= count {
		return 0, 0, fmt.Errorf("%w: index %d with count %d", ErrBadAxisIndex, index, count)
	}

	q := n / count
	r := n % count
	if index < r {
		return index * (q + 1), q + 1, nil
	}
	return r*(q+1) + (index-r)*q, q, nil
}

// Grid is the shape of the 2D process grid: NPX processes along the row
// axis and NPY along the column axis.
type Grid struct {
	NPX int
	NPY int
}

// Size returns the number of processes the grid requires.
func (g Grid) Size() int {
	return g.NPX * g.NPY
}

// Validate checks the grid against the number of processes actually
// launched. It must pass on every process before any collective call, so
// a mismatch can never leave part of the grid blocked in a reduction.
func (g Grid) Validate(worldSize int) error {
	if g.NPX <= 0 || g.NPY <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadAxisCount, g.NPX, g.NPY)
	}
	if g.Size() != worldSize {
		return fmt.Errorf("%w: %dx%d grid needs %d processes, %d launched",
			ErrGridMismatch, g.NPX, g.NPY, g.Size(), worldSize)
	}
	return nil
}

// Coords maps a rank in [0, Size()) to its (px, py) grid coordinates.
// Ranks are laid out row-axis-major: rank = py*NPX + px.
func (g Grid) Coords(rank int) (px, py int) {
	return rank % g.NPX, rank / g.NPX
}

// Rank is the inverse of Coords.
func (g Grid) Rank(px, py int) int {
	return py*g.NPX + px
}

// Region is the rectangle of matrix indices one process is authoritative
// for: rows [IMin, IMax) crossed with columns [JMin, JMax).
type Region struct {
	IMin, IMax int
	JMin, JMax int
}

// Contains reports whether (i, j) falls inside the region.
func (r Region) Contains(i, j int) bool {
	return i >= r.IMin && i < r.IMax && j >= r.JMin && j < r.JMax
}

// Rows returns the number of rows the region spans.
func (r Region) Rows() int { return r.IMax - r.IMin }

// Cols returns the number of columns the region spans.
func (r Region) Cols() int { return r.JMax - r.JMin }

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.IMin, r.IMax, r.JMin, r.JMax)
}

// RegionFor computes the region owned by rank in an n×n matrix split over
// grid. The row axis is split across NPX using the process's x
// coordinate and the column axis across NPY using its y coordinate;
// both axes use the same balanced Split.
func RegionFor(n int, grid Grid, rank int) (Region, error) {
	if grid.NPX <= 0 || grid.NPY <= 0 {
		return Region{}, fmt.Errorf("%w: %dx%d", ErrBadAxisCount, grid.NPX, grid.NPY)
	}
	px, py := grid.Coords(rank)

	imin, rows, err := Split(n, grid.NPX, px)
	if err != nil {
		return Region{}, fmt.Errorf("row axis: %w", err)
	}
	jmin, cols, err := Split(n, grid.NPY, py)
	if err != nil {
		return Region{}, fmt.Errorf("column axis: %w", err)
	}

	return Region{
		IMin: imin, IMax: imin + rows,
		JMin: jmin, JMax: jmin + cols,
	}, nil
}
