// Package hybrid implements the hybrid Bayes net: an ordered factorization
// of a joint distribution over mixed discrete (categorical) and continuous
// (Gaussian-linear) variables, as produced by eliminating a hybrid
// estimation problem (sensor data with unknown discrete hypotheses such as
// outlier/inlier or mode selection).
//
// Each node of the net is exactly one of three conditional variants:
//
//   - Discrete — a weight table over discrete keys (package discrete).
//   - Gaussian — a linear-Gaussian conditional (package linear).
//   - Mixture  — a decision tree over discrete keys whose leaves are Gaussian
//     conditionals sharing one continuous signature (GaussianMixture).
//
// The variant is an explicit tagged union: every algorithm dispatches with
// an exhaustive three-case switch, never with runtime type assertions.
//
// Node order follows sequential elimination: the parents of node i appear
// among the frontal variables of nodes at indices greater than i. Every
// algorithm applies this one convention — sampling and back-substitution
// walk the slice back-to-front.
//
// Operations (see BayesNet):
//
//	Choose(assignment)        // select a pure-Gaussian net for an assignment
//	Evaluate(values)          // joint density, linear probability space
//	Error(values)             // 0.5·Mahalanobis sums − log discrete weights
//	ErrorTree(continuous)     // per-discrete-assignment error, as a tree
//	ProbPrime(continuous)     // exp(−error) per assignment, as a tree
//	DiscreteConditionals()    // combined unnormalized discrete factor
//	Optimize()                // MPE: discrete argmax, then back-substitution
//	OptimizeGiven(assignment) // continuous solve for a fixed assignment
//	Sample / SampleGiven      // ancestral sampling
//	Prune(maxNrLeaves)        // discard low-probability discrete hypotheses
//	ToFactorGraph(z)          // convert back to likelihood factors
//
// Numerical note: Evaluate multiplies node densities directly in linear
// probability space. On long chains this can underflow; LogDensity exists
// alongside, but Evaluate deliberately keeps the linear-domain semantics.
//
// Approximation note: DiscreteConditionals combines discrete tables with
// each mixture leaf's normalization-constant weight exp(−(K_leaf − K_min)).
// When the discrete sub-structure is not a clean tree this is an
// approximation of the true discrete marginal; Optimize and Prune both
// inherit it deliberately.
//
// Concurrency: a constructed net is read-only-shareable; Prune returns a new
// net sharing unaffected nodes (copy-on-write). The only shared mutable
// state is the process-wide default generator used when sampling with a nil
// *rand.Rand — it is lazily initialized and NOT safe for concurrent callers.
// Concurrent samplers must each supply their own generator (see NewRNG and
// DeriveRNG).
//
// Errors (sentinel):
//
//	ErrMissingAssignment  – a mixture's discrete keys not covered by the
//	                        supplied assignment
//	ErrPrunedLeaf         – selecting a hypothesis removed by Prune
//	ErrInvalidKeySet      – a key used as both discrete and continuous, or
//	                        inconsistent cardinalities/signatures
//	ErrNilConditional     – a nil node or inner conditional
//	ErrMissingMeasurement – ToFactorGraph lacking a child's measurement
//	ErrBadMaxLeaves       – Prune called with maxNrLeaves < 1
//
// linear.ErrSingularSystem propagates unchanged through Optimize.
package hybrid
