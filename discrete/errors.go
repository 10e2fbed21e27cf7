package discrete

import "errors"

var (
	// ErrNegativeWeight indicates a table weight below zero.
	ErrNegativeWeight = errors.New("discrete: weights must be non-negative")

	// ErrZeroProbability indicates a sampling or normalization step over a
	// weight block that sums to zero.
	ErrZeroProbability = errors.New("discrete: weights sum to zero")

	// ErrBadRatios indicates a malformed ratio-table literal such as "4/6".
	ErrBadRatios = errors.New("discrete: malformed ratio table")

	// ErrBadMaxLeaves indicates Prune called with maxNrLeaves < 1.
	ErrBadMaxLeaves = errors.New("discrete: maxNrLeaves must be at least 1")

	// ErrNilRNG indicates Sample called without a random generator.
	ErrNilRNG = errors.New("discrete: random generator must be non-nil")

	// ErrMissingParent indicates a parent key required by the operation is
	// not covered by the key set or assignment supplied.
	ErrMissingParent = errors.New("discrete: parent key not covered")
)
