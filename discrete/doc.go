// Package discrete implements conditionals and factors over discrete
// (categorical) variables, backed by the dtree decision-tree algebra.
//
// A Factor is a non-negative weight table over a set of discrete keys,
// not required to be normalized. A Conditional is a Factor whose keys are
// split into frontal keys (the variables it distributes) and parent keys
// (the variables it conditions on); it adds inverse-CDF sampling of the
// unassigned frontal keys given every value fixed so far.
//
// Operations:
//
//	f.Value(assignment)    // table weight at a full assignment
//	f.Mul(g)               // factor product over the union of key sets
//	f.Restrict(partial)    // drop the fixed keys
//	f.Max() / f.ArgMax()   // maximal weight / maximizing assignment
//	f.Prune(maxNrLeaves)   // keep the top-k assignments, zero the rest
//	f.Normalize()          // separate step; Prune never renormalizes
//	c.Sample(given, rng)   // inverse-CDF draw of the unassigned frontal keys
//
// Determinism: every enumeration follows core's lexicographic assignment
// order, and Prune ranks by weight descending with a stable sort so ties
// keep that order. Sampling takes an explicit *rand.Rand; there is no hidden
// time-based source.
//
// Errors (sentinel):
//
//	ErrNegativeWeight  – a table weight below zero
//	ErrZeroProbability – sampling or normalizing a block that sums to zero
//	ErrBadRatios       – a malformed ratio-table literal
//	ErrBadMaxLeaves    – Prune called with maxNrLeaves < 1
//	ErrNilRNG          – Sample called without a generator
//	ErrMissingParent   – Sample called without a parent value
//
// dtree and core sentinels (ErrMissingKey, ErrBadCardinality, ...) pass
// through unwrapped where they already say exactly what went wrong.
package discrete
