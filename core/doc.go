// Package core provides the shared value types of the hybrid inference
// library: variable keys, discrete assignments, continuous vector values,
// and the hybrid pair of both.
//
// Every other package builds on these types:
//
//   - Key            — identifier of a single random variable ("x0", "m1").
//   - DiscreteKey(s) — discrete variable identifier + cardinality.
//   - DiscreteValues — assignment of discrete variables to value indices.
//   - VectorValues   — assignment of continuous variables to real vectors.
//   - HybridValues   — the (DiscreteValues, VectorValues) pair; the unit of
//     evaluation, optimization, and sampling.
//
// Why use core types?
//
//   - Deterministic iteration — Keys() accessors always return sorted results,
//     and DiscreteKeys.Assignments() enumerates in a fixed lexicographic order
//     (first key most significant, last key varies fastest). Every algorithm
//     in the library relies on this single ordering convention.
//   - Value semantics — Clone() performs a deep copy; Merge() never mutates
//     its receivers. A constructed assignment is safe to share across readers.
//   - Fail-fast — all lookup and insertion errors are package-prefixed
//     sentinels suitable for errors.Is.
//
// Errors:
//
//	ErrKeyNotFound    – lookup of an absent variable
//	ErrDuplicateKey   – double insertion, or a repeated key in a key set
//	ErrBadCardinality – cardinality below 1, or two declarations disagreeing
//	ErrNilVector      – inserting a nil vector into VectorValues
package core
