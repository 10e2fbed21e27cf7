package discrete

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/dtree"
	"gonum.org/v1/gonum/floats/scalar"
)

// Factor is a non-negative weight table over a set of discrete keys,
// represented as a decision tree. Weights are not required to be normalized.
// Factors are immutable: every operation returns a new Factor and pruned or
// combined results may share subtrees with their inputs.
type Factor struct {
	keys core.DiscreteKeys // sorted ascending
	tree *dtree.Scalar
}

// NewFactor builds a factor over keys from a dense weight table in the
// library's lexicographic assignment order.
//
// Preconditions and validation (in order):
//  1. keys must be a valid key set (core.ErrBadCardinality, core.ErrDuplicateKey).
//  2. len(weights) must equal keys.NumAssignments() (dtree.ErrBadTable).
//  3. Every weight must be non-negative (ErrNegativeWeight).
func NewFactor(keys core.DiscreteKeys, weights []float64) (*Factor, error) {
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: weight %g at index %d", ErrNegativeWeight, w, i)
		}
	}

	tree, err := dtree.FromTable(keys, weights)
	if err != nil {
		return nil, err
	}

	return &Factor{keys: keys.Sorted(), tree: tree}, nil
}

// FromTree wraps an existing decision tree as a factor over keys. The tree's
// own keys must be a subset of keys with matching cardinalities.
func FromTree(keys core.DiscreteKeys, tree *dtree.Scalar) (*Factor, error) {
	if tree == nil {
		return nil, dtree.ErrNilSubtree
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	if _, err := keys.Union(tree.Keys()); err != nil {
		return nil, err
	}
	for _, k := range tree.Keys() {
		if !keys.Contains(k.ID) {
			return nil, fmt.Errorf("%w: tree key %q not declared", core.ErrKeyNotFound, k.ID)
		}
	}

	return &Factor{keys: keys.Sorted(), tree: tree}, nil
}

// Unit returns the multiplicative identity: a factor over no keys with the
// constant weight 1.
func Unit() *Factor {
	return &Factor{keys: nil, tree: dtree.NewLeaf(1.0)}
}

// Keys returns a copy of the factor's sorted key set.
func (f *Factor) Keys() core.DiscreteKeys {
	out := make(core.DiscreteKeys, len(f.keys))
	copy(out, f.keys)

	return out
}

// Tree returns the underlying decision tree. The tree is immutable.
func (f *Factor) Tree() *dtree.Scalar { return f.tree }

// Value returns the table weight at the projected assignment. The assignment
// must cover every key on the lookup path (dtree.ErrMissingKey).
func (f *Factor) Value(dv core.DiscreteValues) (float64, error) {
	return f.tree.At(dv)
}

// Mul returns the factor product of f and other over the union of their
// key sets. Returns core.ErrBadCardinality if the two factors disagree on a
// shared key's cardinality.
func (f *Factor) Mul(other *Factor) (*Factor, error) {
	keys, err := f.keys.Union(other.keys)
	if err != nil {
		return nil, err
	}
	tree, err := dtree.Mul(f.tree, other.tree)
	if err != nil {
		return nil, err
	}

	return &Factor{keys: keys, tree: tree}, nil
}

// Restrict fixes the keys assigned in dv and returns a factor over the
// remaining keys.
func (f *Factor) Restrict(dv core.DiscreteValues) (*Factor, error) {
	tree, err := f.tree.Restrict(dv)
	if err != nil {
		return nil, err
	}

	remaining := make(core.DiscreteKeys, 0, len(f.keys))
	for _, k := range f.keys {
		if _, ok := dv[k.ID]; !ok {
			remaining = append(remaining, k)
		}
	}

	return &Factor{keys: remaining, tree: tree}, nil
}

// Max returns the maximal weight in the table.
func (f *Factor) Max() float64 {
	return dtree.MaxLeaf(f.tree)
}

// ArgMax returns the maximizing full assignment and its weight. Ties break
// toward the lexicographically smallest assignment (see dtree.ArgMax).
func (f *Factor) ArgMax() (core.DiscreteValues, float64, error) {
	return dtree.ArgMax(f.tree, f.keys)
}

// Sum returns the total weight over all assignments.
func (f *Factor) Sum() (float64, error) {
	return dtree.Sum(f.tree, f.keys)
}

// Normalize returns a factor scaled so its weights sum to one. Returns
// ErrZeroProbability when the total weight is zero. Prune never calls this:
// pruning and renormalization are separate steps by contract.
func (f *Factor) Normalize() (*Factor, error) {
	total, err := f.Sum()
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: cannot normalize", ErrZeroProbability)
	}

	tree := dtree.Apply(f.tree, func(w float64) float64 { return w / total })

	return &Factor{keys: f.keys, tree: tree}, nil
}

// Prune keeps the maxNrLeaves highest-weighted assignments and zeroes every
// other weight. Assignments are ranked by weight descending; ties keep the
// lexicographic enumeration order (stable sort), matching ArgMax's
// tie-break. No renormalization is performed.
//
// When maxNrLeaves is at least the number of distinct assignments the factor
// is returned unchanged (factors are immutable, so sharing is safe).
func (f *Factor) Prune(maxNrLeaves int) (*Factor, error) {
	if maxNrLeaves < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxLeaves, maxNrLeaves)
	}

	assignments := f.keys.Assignments()
	if maxNrLeaves >= len(assignments) {
		return f, nil
	}

	weights := make([]float64, len(assignments))
	for i, dv := range assignments {
		w, err := f.tree.At(dv)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}

	// Rank assignment indices by weight descending; stable keeps ties in
	// lexicographic order.
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return weights[order[a]] > weights[order[b]] })

	pruned := make([]float64, len(weights))
	for _, idx := range order[:maxNrLeaves] {
		pruned[idx] = weights[idx]
	}

	return NewFactor(f.keys, pruned)
}

// Equal reports whether both factors cover the same key set and agree on
// every assignment's weight within tol.
func (f *Factor) Equal(other *Factor, tol float64) bool {
	if other == nil || len(f.keys) != len(other.keys) {
		return false
	}
	for i, k := range f.keys {
		if other.keys[i] != k {
			return false
		}
	}
	for _, dv := range f.keys.Assignments() {
		a, errA := f.tree.At(dv)
		b, errB := other.tree.At(dv)
		if errA != nil || errB != nil || !scalar.EqualWithinAbs(a, b, tol) {
			return false
		}
	}

	return true
}

// String renders the factor as its key list and assignment/weight rows.
func (f *Factor) String() string {
	var sb strings.Builder
	sb.WriteString("DiscreteFactor(")
	for i, k := range f.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s/%d", k.ID, k.Cardinality)
	}
	sb.WriteString(")")
	for _, dv := range f.keys.Assignments() {
		w, err := f.tree.At(dv)
		if err != nil {
			continue
		}
		sb.WriteString("\n ")
		for _, id := range dv.Keys() {
			fmt.Fprintf(&sb, " %s=%d", id, dv[id])
		}
		fmt.Fprintf(&sb, " -> %g", w)
	}

	return sb.String()
}
