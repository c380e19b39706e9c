// Package kernel implements one local step of the min-plus repeated
// squaring recurrence.
//
// If current[i][j] holds the shortest i→j path length using at most 2^s
// hops, then after Square next[i][j] holds the shortest length using at
// most 2^(s+1) hops, because any such path splits into two halves of at
// most 2^s hops each through some intermediate node k:
//
//	next[i][j] = min over k of (current[i][k] + current[k][j])
//
// Square only writes the entries inside the caller's region; combining
// the per-region results into the global next matrix is the merge
// protocol's job.
package kernel

import (
	"github.com/distributed-apsp/pkg/matrix"
	"github.com/distributed-apsp/pkg/partition"
)

// Square advances the recurrence by one step on the given region and
// reports whether any entry improved.
//
// current is read-only and must be the globally merged matrix of the
// previous round. next must be pre-seeded so that every in-region entry
// is at least current's value for that entry — the relaxation only ever
// lowers entries, so un-improved entries keep the previous round's value
// as their upper bound. Integer arithmetic throughout; there is no
// failure mode for well-formed inputs.
func Square(region partition.Region, n int, current, next *matrix.Dense) bool {
	changed := false
	for i := region.IMin; i < region.IMax; i++ {
		row := current.Data[i*n : (i+1)*n]
		for j := region.JMin; j < region.JMax; j++ {
			best := next.Data[i*n+j]
			for k := 0; k < n; k++ {
				if d := row[k] + current.Data[k*n+j]; d < best {
					best = d
					changed = true
				}
			}
			next.Data[i*n+j] = best
		}
	}
	return changed
}
