package linear

import "errors"

var (
	// ErrSingularSystem indicates a zero pivot or a failed triangular solve;
	// the linear system has no unique solution.
	ErrSingularSystem = errors.New("linear: singular system")

	// ErrDimensionMismatch indicates inconsistent matrix or vector dimensions.
	ErrDimensionMismatch = errors.New("linear: dimension mismatch")

	// ErrMissingParent indicates a parent value required by solve or sample
	// is absent from the supplied VectorValues.
	ErrMissingParent = errors.New("linear: parent value missing")

	// ErrBadSigma indicates a non-positive standard deviation.
	ErrBadSigma = errors.New("linear: sigma must be positive")

	// ErrNilRNG indicates a sampling call without a random generator.
	ErrNilRNG = errors.New("linear: random generator must be non-nil")

	// ErrNilConditional indicates a nil conditional pushed into a Bayes net.
	ErrNilConditional = errors.New("linear: conditional must be non-nil")

	// ErrEmptyKey indicates an empty variable identifier.
	ErrEmptyKey = errors.New("linear: key must be non-empty")

	// ErrNotUpperTriangular indicates an R matrix that is not upper-triangular.
	ErrNotUpperTriangular = errors.New("linear: R must be upper-triangular")
)
