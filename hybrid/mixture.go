package hybrid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
	"github.com/jrpowers/gtsam/dtree"
	"github.com/jrpowers/gtsam/linear"
	"gonum.org/v1/gonum/mat"
)

// GaussianMixture is a conditional whose linear-Gaussian form is selected by
// a discrete assignment: a decision tree over discrete keys whose leaves are
// Gaussian conditionals, all sharing the same continuous signature (same
// frontal key, same parent keys in the same order).
//
// After pruning, leaves whose hypotheses were discarded are nil placeholders
// and selecting them fails with ErrPrunedLeaf.
type GaussianMixture struct {
	key          core.Key
	parents      []core.Key
	discreteKeys core.DiscreteKeys // sorted ascending
	tree         *dtree.Tree[*linear.GaussianConditional]
}

// NewGaussianMixture builds a mixture from leaves listed in the library's
// lexicographic assignment order of discreteKeys.
//
// Preconditions and validation (in order):
//  1. discreteKeys must be non-empty and valid (ErrInvalidKeySet).
//  2. len(leaves) must equal discreteKeys.NumAssignments() (ErrInvalidKeySet).
//  3. Every leaf must be non-nil (ErrNilConditional); nil placeholders only
//     ever arise internally from pruning.
//  4. All leaves must share one continuous signature (ErrInvalidKeySet).
func NewGaussianMixture(discreteKeys core.DiscreteKeys, leaves []*linear.GaussianConditional) (*GaussianMixture, error) {
	if len(discreteKeys) == 0 {
		return nil, fmt.Errorf("%w: mixture needs at least one discrete key", ErrInvalidKeySet)
	}
	if err := discreteKeys.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeySet, err)
	}
	if len(leaves) != discreteKeys.NumAssignments() {
		return nil, fmt.Errorf("%w: %d leaves for %d assignments",
			ErrInvalidKeySet, len(leaves), discreteKeys.NumAssignments())
	}
	for i, leaf := range leaves {
		if leaf == nil {
			return nil, fmt.Errorf("%w: leaf %d", ErrNilConditional, i)
		}
	}

	first := leaves[0]
	for _, leaf := range leaves[1:] {
		if !sameSignature(first, leaf) {
			return nil, fmt.Errorf("%w: mixture leaves must share one continuous signature",
				ErrInvalidKeySet)
		}
	}

	tree, err := dtree.FromTable(discreteKeys, leaves)
	if err != nil {
		return nil, err
	}

	return &GaussianMixture{
		key:          first.Key(),
		parents:      first.Parents(),
		discreteKeys: discreteKeys.Sorted(),
		tree:         tree,
	}, nil
}

// sameSignature reports whether two leaves agree on frontal key and parent
// key order.
func sameSignature(a, b *linear.GaussianConditional) bool {
	if a.Key() != b.Key() || a.Dim() != b.Dim() {
		return false
	}
	ap, bp := a.Parents(), b.Parents()
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i] != bp[i] {
			return false
		}
	}

	return true
}

// Key returns the frontal continuous variable.
func (m *GaussianMixture) Key() core.Key { return m.key }

// Parents returns the continuous parent keys.
func (m *GaussianMixture) Parents() []core.Key {
	out := make([]core.Key, len(m.parents))
	copy(out, m.parents)

	return out
}

// DiscreteKeys returns the sorted discrete selector keys.
func (m *GaussianMixture) DiscreteKeys() core.DiscreteKeys {
	out := make(core.DiscreteKeys, len(m.discreteKeys))
	copy(out, m.discreteKeys)

	return out
}

// Choose selects the Gaussian leaf for the given assignment. Returns
// ErrMissingAssignment when the assignment does not cover the mixture's
// discrete keys, and ErrPrunedLeaf when it selects a pruned hypothesis.
func (m *GaussianMixture) Choose(dv core.DiscreteValues) (*linear.GaussianConditional, error) {
	leaf, err := m.tree.At(dv)
	if err != nil {
		if errors.Is(err, dtree.ErrMissingKey) {
			return nil, fmt.Errorf("%w: mixture over %q: %v", ErrMissingAssignment, m.key, err)
		}

		return nil, err
	}
	if leaf == nil {
		return nil, fmt.Errorf("%w: mixture over %q", ErrPrunedLeaf, m.key)
	}

	return leaf, nil
}

// Error returns the selected leaf's error at the hybrid values.
func (m *GaussianMixture) Error(hv core.HybridValues) (float64, error) {
	leaf, err := m.Choose(hv.Discrete)
	if err != nil {
		return 0, err
	}

	return leaf.Error(hv.Continuous)
}

// Density returns the selected leaf's normalized density.
func (m *GaussianMixture) Density(hv core.HybridValues) (float64, error) {
	leaf, err := m.Choose(hv.Discrete)
	if err != nil {
		return 0, err
	}

	return leaf.Density(hv.Continuous)
}

// SampleWithRNG selects the leaf for the resolved discrete values and draws
// the frontal variable given the continuous parent values.
func (m *GaussianMixture) SampleWithRNG(dv core.DiscreteValues, cont core.VectorValues, rng *rand.Rand) (*mat.VecDense, error) {
	leaf, err := m.Choose(dv)
	if err != nil {
		return nil, err
	}

	return leaf.SampleWithRNG(cont, rng)
}

// minNegLogConstant returns the smallest −log normalization constant among
// surviving leaves; +Inf if all leaves are pruned.
func (m *GaussianMixture) minNegLogConstant() float64 {
	minK := math.Inf(1)
	walkLeaves(m.tree, func(leaf *linear.GaussianConditional) {
		if leaf != nil && leaf.NegLogConstant() < minK {
			minK = leaf.NegLogConstant()
		}
	})

	return minK
}

// constantTree returns the mixture's contribution to the combined discrete
// factor: exp(−(K_leaf − K_min)) per leaf, where K is the leaf's −log
// normalization constant. Leaves with identical noise models contribute 1;
// pruned leaves contribute 0. This closed-form weight stands in for the
// analytically integrated-out Gaussian — an approximation when the discrete
// structure is not a clean tree (see package docs).
func (m *GaussianMixture) constantTree() *dtree.Scalar {
	minK := m.minNegLogConstant()

	return dtree.Apply(m.tree, func(leaf *linear.GaussianConditional) float64 {
		if leaf == nil {
			return 0
		}

		return math.Exp(-(leaf.NegLogConstant() - minK))
	})
}

// errorTree returns the per-leaf error at the continuous values as a scalar
// tree over the mixture's discrete keys. Pruned leaves carry +Inf.
func (m *GaussianMixture) errorTree(cont core.VectorValues) (*dtree.Scalar, error) {
	var applyErr error
	tree := dtree.Apply(m.tree, func(leaf *linear.GaussianConditional) float64 {
		if leaf == nil {
			return math.Inf(1)
		}
		e, err := leaf.Error(cont)
		if err != nil {
			if applyErr == nil {
				applyErr = err
			}

			return math.Inf(1)
		}

		return e
	})
	if applyErr != nil {
		return nil, applyErr
	}

	return tree, nil
}

// Likelihood anchors the frontal variable at measurement, producing a
// mixture factor over the continuous parents and the same discrete keys.
// Pruned leaves carry over as nil factor leaves.
func (m *GaussianMixture) Likelihood(measurement *mat.VecDense) (*MixtureFactor, error) {
	minK := m.minNegLogConstant()

	var applyErr error
	tree := dtree.Apply(m.tree, func(leaf *linear.GaussianConditional) *MixtureFactorLeaf {
		if leaf == nil {
			return nil
		}
		jf, err := leaf.Likelihood(measurement)
		if err != nil {
			if applyErr == nil {
				applyErr = err
			}

			return nil
		}

		return &MixtureFactorLeaf{Factor: jf, ExtraError: leaf.NegLogConstant() - minK}
	})
	if applyErr != nil {
		return nil, applyErr
	}

	return &MixtureFactor{
		parents:      m.Parents(),
		discreteKeys: m.DiscreteKeys(),
		tree:         tree,
	}, nil
}

// prune rewrites the mixture against a pruned combined discrete factor:
// leaves whose discrete key-values are never part of any retained assignment
// become nil placeholders. Returns the receiver unchanged when every leaf
// survives (copy-on-write).
func (m *GaussianMixture) prune(pruned *discrete.Factor) (*GaussianMixture, error) {
	assignments := m.discreteKeys.Assignments()
	leaves := make([]*linear.GaussianConditional, len(assignments))
	allAlive := true
	for i, dv := range assignments {
		leaf, err := m.tree.At(dv)
		if err != nil {
			return nil, err
		}
		restricted, err := pruned.Restrict(dv)
		if err != nil {
			return nil, err
		}
		if restricted.Max() > 0 {
			leaves[i] = leaf
			continue
		}
		allAlive = false
	}
	if allAlive {
		return m, nil
	}

	tree, err := dtree.FromTable(m.discreteKeys, leaves)
	if err != nil {
		return nil, err
	}

	return &GaussianMixture{key: m.key, parents: m.Parents(), discreteKeys: m.DiscreteKeys(), tree: tree}, nil
}

// Equal reports structural equality within tol, treating pruned leaves as
// equal only to pruned leaves.
func (m *GaussianMixture) Equal(other *GaussianMixture, tol float64) bool {
	if other == nil || m.key != other.key {
		return false
	}
	if len(m.discreteKeys) != len(other.discreteKeys) {
		return false
	}
	for i, k := range m.discreteKeys {
		if other.discreteKeys[i] != k {
			return false
		}
	}
	for _, dv := range m.discreteKeys.Assignments() {
		a, errA := m.tree.At(dv)
		b, errB := other.tree.At(dv)
		if errA != nil || errB != nil {
			return false
		}
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Equal(b, tol) {
			return false
		}
	}

	return true
}

// String renders the mixture signature.
func (m *GaussianMixture) String() string {
	return fmt.Sprintf("P(%s | %v ; %v)", m.key, m.parents, m.discreteKeys.IDs())
}

// walkLeaves visits every leaf of a conditional tree.
func walkLeaves(t *dtree.Tree[*linear.GaussianConditional], visit func(*linear.GaussianConditional)) {
	if t.IsLeaf() {
		visit(t.Leaf())

		return
	}
	for _, dv := range t.Keys().Assignments() {
		leaf, err := t.At(dv)
		if err == nil {
			visit(leaf)
		}
	}
}
