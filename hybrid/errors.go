package hybrid

import "errors"

var (
	// ErrMissingAssignment indicates a mixture node whose discrete keys are
	// not fully covered by the supplied assignment.
	ErrMissingAssignment = errors.New("hybrid: discrete assignment missing a required key")

	// ErrPrunedLeaf indicates selection of a discrete hypothesis whose
	// mixture leaf was removed by Prune.
	ErrPrunedLeaf = errors.New("hybrid: assignment selects a pruned leaf")

	// ErrInvalidKeySet indicates a conditional whose declared keys are
	// inconsistent with the net: a variable used as both discrete and
	// continuous, clashing cardinalities, or mixture leaves with differing
	// continuous signatures.
	ErrInvalidKeySet = errors.New("hybrid: invalid key set")

	// ErrNilConditional indicates a nil node or inner conditional.
	ErrNilConditional = errors.New("hybrid: conditional must be non-nil")

	// ErrMissingMeasurement indicates ToFactorGraph called without a
	// measurement for some node's child variable.
	ErrMissingMeasurement = errors.New("hybrid: measurement missing for child variable")

	// ErrBadMaxLeaves indicates Prune called with maxNrLeaves < 1.
	ErrBadMaxLeaves = errors.New("hybrid: maxNrLeaves must be at least 1")
)
