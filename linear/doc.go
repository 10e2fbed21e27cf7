// Package linear implements linear-Gaussian conditionals and the
// pure-Gaussian Bayes net they form, on top of gonum's dense linear algebra.
//
// A GaussianConditional represents
//
//	p(x | y1..yk) ∝ exp(−0.5‖R·x + Σ Sj·yj − d‖²)
//
// with R square upper-triangular over the frontal variable x and one S block
// per continuous parent. The implied density is Gaussian with mean
// R⁻¹(d − Σ Sj·yj) and covariance (RᵀR)⁻¹; the normalization constant is
// closed-form from det R.
//
// Operations:
//
//	c.Error(values)            // 0.5 × squared Mahalanobis distance
//	c.Density / c.LogDensity   // normalized density at values
//	c.NegLogConstant()         // −log of the normalization constant
//	c.Solve(values)            // conditional mean via triangular solve
//	c.SampleWithRNG(values, r) // mean plus R⁻¹-transformed unit-normal draw
//	c.Likelihood(measurement)  // JacobianFactor over the parents only
//
// A BayesNet is an ordered sequence of conditionals where the parents of
// node i appear at indices greater than i (the order sequential elimination
// produces). Optimize and SampleWithRNG therefore walk the slice
// back-to-front, so every parent is resolved before it is consumed.
//
// Determinism: sampling consumes draws from the supplied *rand.Rand in node
// order then coordinate order; two identically seeded generators produce
// bit-identical results.
//
// Errors (sentinel):
//
//	ErrSingularSystem    – zero pivot or failed triangular solve
//	ErrDimensionMismatch – inconsistent matrix/vector dimensions
//	ErrMissingParent     – a parent value absent during solve/sample
//	ErrBadSigma          – non-positive standard deviation
//	ErrNilRNG            – sampling without a generator
//	ErrNilConditional    – a nil conditional pushed into a net
//	ErrEmptyKey          – an empty variable identifier
package linear
