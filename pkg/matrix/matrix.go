// Package matrix provides the dense distance-matrix representation shared
// by every process in the computation.
//
// A Dense holds n² integers in row-major order: entry (i, j) lives at
// index i*n+j and is the shortest known path length from node i to node j.
// The same row-major convention is used everywhere in this repository —
// the squaring kernel, the file format and the checksum all flatten the
// matrix in this order.
//
// Two value conventions exist for "no path":
//
//   - external: 0 means "no edge / unreachable" (what generators produce
//     and what files contain)
//   - internal: n+1 means "unreachable" (what the min-plus recurrence
//     needs, since min(0, x) would absorb every real distance)
//
// Infinitize and Deinfinitize convert between the two. They are applied
// exactly once at each boundary of the convergence loop and never in
// between.
package matrix

// Dense is a square n×n integer matrix stored row-major in a single slice.
type Dense struct {
	N    int
	Data []int
}

// New allocates a zero-filled n×n matrix.
func New(n int) *Dense {
	return &Dense{
		N:    n,
		Data: make([]int, n*n),
	}
}

// FromData wraps an existing row-major slice of length n*n. The slice is
// used directly, not copied.
func FromData(n int, data []int) *Dense {
	return &Dense{N: n, Data: data}
}

// At returns entry (i, j).
func (m *Dense) At(i, j int) int {
	return m.Data[i*m.N+j]
}

// Set stores v at entry (i, j).
func (m *Dense) Set(i, j, v int) {
	m.Data[i*m.N+j] = v
}

// Clone returns a deep copy of m.
func (m *Dense) Clone() *Dense {
	data := make([]int, len(m.Data))
	copy(data, m.Data)
	return &Dense{N: m.N, Data: data}
}

// Equal reports whether m and other have the same dimension and entries.
func (m *Dense) Equal(other *Dense) bool {
	if m.N != other.N {
		return false
	}
	for i, v := range m.Data {
		if other.Data[i] != v {
			return false
		}
	}
	return true
}

// Unreachable returns the internal sentinel for "no path" in an n-node
// graph. Any real shortest path in an unweighted graph has at most n-1
// hops, so n+1 is strictly larger than every reachable distance and is
// the neutral element of the element-wise minimum merge.
func Unreachable(n int) int {
	return n + 1
}

// Infinitize rewrites m from the external to the internal convention:
// every off-diagonal 0 becomes Unreachable(n), and the diagonal is forced
// to 0 whatever it held (self-distance is definitionally zero).
func Infinitize(m *Dense) {
	inf := Unreachable(m.N)
	for i := range m.Data {
		if m.Data[i] == 0 {
			m.Data[i] = inf
		}
	}
	for i := 0; i < m.N; i++ {
		m.Data[i*m.N+i] = 0
	}
}

// Deinfinitize rewrites m from the internal to the external convention:
// every Unreachable(n) entry becomes 0. Entries below the sentinel are
// left untouched, so applying it to a matrix already in the external
// convention is a no-op.
func Deinfinitize(m *Dense) {
	inf := Unreachable(m.N)
	for i := range m.Data {
		if m.Data[i] == inf {
			m.Data[i] = 0
		}
	}
}
