package engine

// State is the protocol state of the convergence loop.
type State int

const (
	// Running means some process's region changed in the last round, so
	// another round is required.
	Running State = iota

	// Converged is terminal: no process's region changed anywhere, so the
	// matrix is the all-pairs shortest-path fixed point.
	Converged
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	default:
		return "unknown"
	}
}
