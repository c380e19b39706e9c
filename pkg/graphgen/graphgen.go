// Package graphgen produces random input graphs in the G(n,p) model:
// each of the n² possible directed edges is present with probability p,
// independently of the others.
package graphgen

import (
	"fmt"
	"math/rand"

	"github.com/distributed-apsp/pkg/matrix"
)

// DefaultSeed pins the generator so that repeated runs over the same
// (n, p) produce the same graph and therefore the same checksum.
const DefaultSeed int64 = 10302011

// Random generates an n×n adjacency matrix in the external convention:
// 1 for an edge, 0 for no edge, 0 on the diagonal. The output is
// deterministic for a given (n, p, seed).
func Random(n int, p float64, seed int64) (*matrix.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("node count must be positive, got %d", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("edge probability must be in [0,1], got %g", p)
	}

	rng := rand.New(rand.NewSource(seed))
	m := matrix.New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && rng.Float64() < p {
				m.Set(i, j, 1)
			}
		}
	}
	return m, nil
}
