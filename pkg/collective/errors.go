package collective

import "errors"

var (
	ErrAborted = errors.New("collective reduction aborted")

	ErrLengthMismatch = errors.New("contribution length mismatch")

	ErrBadRank = errors.New("rank out of range")

	ErrBadWorldSize = errors.New("world size must be positive")
)
