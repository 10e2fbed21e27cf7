package dtree

import "errors"

var (
	// ErrMissingKey indicates a lookup that reached a choice node whose key
	// is not present in the supplied assignment.
	ErrMissingKey = errors.New("dtree: assignment missing a key required by the tree")

	// ErrBadAssignment indicates an assigned value index outside the
	// cardinality of the key it assigns.
	ErrBadAssignment = errors.New("dtree: assigned value out of range")

	// ErrBadTable indicates a dense table whose length does not match the
	// number of assignments of its key set.
	ErrBadTable = errors.New("dtree: table length does not match key set")

	// ErrNilSubtree indicates a nil branch or a nil tree operand.
	ErrNilSubtree = errors.New("dtree: subtree must be non-nil")
)
