package dtree

import (
	"github.com/jrpowers/gtsam/core"
)

// Scalar is the float64 specialization of Tree: a function from discrete
// assignments to real values. It carries the algebraic layer used for factor
// products and error accumulation.
type Scalar = Tree[float64]

// Mul returns the leaf-wise product of a and b over the union of their keys.
func Mul(a, b *Scalar) (*Scalar, error) {
	return Combine(a, b, func(x, y float64) float64 { return x * y })
}

// Add returns the leaf-wise sum of a and b over the union of their keys.
func Add(a, b *Scalar) (*Scalar, error) {
	return Combine(a, b, func(x, y float64) float64 { return x + y })
}

// MaxLeaf returns the maximum leaf value reachable in t. Leaf multiplicity
// does not matter for a maximum, so this is a structural O(nodes) fold.
func MaxLeaf(t *Scalar) float64 {
	if t.isLeaf {
		return t.leaf
	}

	best := MaxLeaf(t.branches[0])
	for _, b := range t.branches[1:] {
		if v := MaxLeaf(b); v > best {
			best = v
		}
	}

	return best
}

// Sum returns the sum of t over every full assignment of keys. Unlike
// MaxLeaf this must enumerate: a subtree shared by several paths counts once
// per assignment that reaches it.
func Sum(t *Scalar, keys core.DiscreteKeys) (float64, error) {
	var total float64
	for _, dv := range keys.Assignments() {
		v, err := t.At(dv)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// ArgMax returns the maximizing full assignment of t over keys, together
// with its value. Assignments are enumerated in the library's lexicographic
// order and the first strictly-maximal value wins, so ties break
// deterministically toward the lexicographically smallest assignment.
func ArgMax(t *Scalar, keys core.DiscreteKeys) (core.DiscreteValues, float64, error) {
	assignments := keys.Assignments()

	var (
		best    core.DiscreteValues
		bestVal float64
	)
	for i, dv := range assignments {
		v, err := t.At(dv)
		if err != nil {
			return nil, 0, err
		}
		if i == 0 || v > bestVal {
			best, bestVal = dv, v
		}
	}

	return best, bestVal, nil
}
