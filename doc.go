// Package gtsam is an in-memory toolkit for building, evaluating, and
// solving hybrid Bayes nets — probability distributions that mix discrete
// choice variables with continuous Gaussian variables.
//
// 🚀 What is gtsam?
//
//	A small, deterministic library that brings together:
//		• Core primitives: variable keys, discrete assignments, vector values
//		• Decision trees: canonical algebraic decision diagrams over discrete keys
//		• Discrete layer: weight-table factors & conditionals, pruning, sampling
//		• Linear layer: Gaussian conditionals, Jacobian factors, back-substitution
//		• Hybrid layer: mixture conditionals, MPE optimization, ancestral sampling,
//		  hypothesis pruning, conversion back to factor graphs
//
// ✨ Why choose gtsam?
//
//   - Deterministic by construction – fixed lexicographic orderings, seedable RNG
//   - Rock-solid guarantees – immutable values, sentinel errors, no panics
//   - Pure Go numerics on gonum – no cgo, no global state beyond one default RNG
//
// Under the hood, everything is organized under five subpackages:
//
//	core/     — keys, discrete/vector/hybrid value containers
//	dtree/    — generic decision trees and their scalar algebra
//	discrete/ — discrete factors and conditionals
//	linear/   — Gaussian conditionals, Jacobian factors, Gaussian Bayes nets
//	hybrid/   — the hybrid Bayes net and its operations
//
// Quick sketch of a hybrid net with one mode M and one continuous X:
//
//	    M ──▶ X        P(M) · P(X | M)
//
//	where P(X | M) is a Gaussian mixture: one Gaussian per value of M.
//
// Dive into the per-package docs for the exact ordering and error
// conventions shared across layers.
//
//	go get github.com/jrpowers/gtsam
package gtsam
