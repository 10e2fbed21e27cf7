package hybrid

import (
	"fmt"
	"sort"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
	"github.com/jrpowers/gtsam/dtree"
	"github.com/jrpowers/gtsam/linear"
)

// MixtureFactorLeaf is one hypothesis of a MixtureFactor: the Jacobian
// likelihood factor plus the leaf's extra error relative to the
// best-constant leaf (so hypotheses with different noise models compare
// correctly). A nil leaf marks a pruned hypothesis.
type MixtureFactorLeaf struct {
	Factor     *linear.JacobianFactor
	ExtraError float64
}

// MixtureFactor is the likelihood form of a GaussianMixture: a decision
// tree over the same discrete keys whose leaves are Jacobian factors over
// the mixture's continuous parents only.
type MixtureFactor struct {
	parents      []core.Key
	discreteKeys core.DiscreteKeys
	tree         *dtree.Tree[*MixtureFactorLeaf]
}

// Parents returns the continuous parent keys.
func (f *MixtureFactor) Parents() []core.Key {
	out := make([]core.Key, len(f.parents))
	copy(out, f.parents)

	return out
}

// DiscreteKeys returns the sorted discrete selector keys.
func (f *MixtureFactor) DiscreteKeys() core.DiscreteKeys {
	out := make(core.DiscreteKeys, len(f.discreteKeys))
	copy(out, f.discreteKeys)

	return out
}

// At selects the leaf for an assignment. Returns ErrMissingAssignment for
// an uncovered key and ErrPrunedLeaf for a pruned hypothesis.
func (f *MixtureFactor) At(dv core.DiscreteValues) (*MixtureFactorLeaf, error) {
	leaf, err := f.tree.At(dv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingAssignment, err)
	}
	if leaf == nil {
		return nil, ErrPrunedLeaf
	}

	return leaf, nil
}

// Error returns the selected hypothesis' error at the continuous values:
// the Jacobian error plus the hypothesis' extra constant error.
func (f *MixtureFactor) Error(dv core.DiscreteValues, cont core.VectorValues) (float64, error) {
	leaf, err := f.At(dv)
	if err != nil {
		return 0, err
	}
	e, err := leaf.Factor.Error(cont)
	if err != nil {
		return 0, err
	}

	return e + leaf.ExtraError, nil
}

// FactorGraph is a container of hybrid factors suitable for re-elimination:
// discrete factors, Gaussian likelihood factors, and mixture factors.
// Elimination itself lives outside this library; the graph only carries the
// factors and their key sets.
type FactorGraph struct {
	discreteFactors []*discrete.Factor
	jacobians       []*linear.JacobianFactor
	mixtures        []*MixtureFactor
}

// NewFactorGraph returns an empty graph.
func NewFactorGraph() *FactorGraph { return &FactorGraph{} }

// PushDiscrete appends a discrete factor.
func (g *FactorGraph) PushDiscrete(f *discrete.Factor) error {
	if f == nil {
		return ErrNilConditional
	}
	g.discreteFactors = append(g.discreteFactors, f)

	return nil
}

// PushJacobian appends a Gaussian likelihood factor.
func (g *FactorGraph) PushJacobian(f *linear.JacobianFactor) error {
	if f == nil {
		return ErrNilConditional
	}
	g.jacobians = append(g.jacobians, f)

	return nil
}

// PushMixture appends a mixture factor.
func (g *FactorGraph) PushMixture(f *MixtureFactor) error {
	if f == nil {
		return ErrNilConditional
	}
	g.mixtures = append(g.mixtures, f)

	return nil
}

// Size returns the total number of factors.
func (g *FactorGraph) Size() int {
	return len(g.discreteFactors) + len(g.jacobians) + len(g.mixtures)
}

// DiscreteFactors returns the discrete factors in push order.
func (g *FactorGraph) DiscreteFactors() []*discrete.Factor {
	out := make([]*discrete.Factor, len(g.discreteFactors))
	copy(out, g.discreteFactors)

	return out
}

// Jacobians returns the Gaussian likelihood factors in push order.
func (g *FactorGraph) Jacobians() []*linear.JacobianFactor {
	out := make([]*linear.JacobianFactor, len(g.jacobians))
	copy(out, g.jacobians)

	return out
}

// Mixtures returns the mixture factors in push order.
func (g *FactorGraph) Mixtures() []*MixtureFactor {
	out := make([]*MixtureFactor, len(g.mixtures))
	copy(out, g.mixtures)

	return out
}

// DiscreteKeys returns the union of all discrete keys in the graph, sorted.
func (g *FactorGraph) DiscreteKeys() core.DiscreteKeys {
	keys := core.DiscreteKeys{}
	var err error
	for _, f := range g.discreteFactors {
		if keys, err = keys.Union(f.Keys()); err != nil {
			return nil
		}
	}
	for _, f := range g.mixtures {
		if keys, err = keys.Union(f.DiscreteKeys()); err != nil {
			return nil
		}
	}

	return keys
}

// ContinuousKeys returns the union of all continuous keys in the graph,
// sorted. By construction of ToFactorGraph these are parent keys only.
func (g *FactorGraph) ContinuousKeys() []core.Key {
	set := make(map[core.Key]struct{})
	for _, f := range g.jacobians {
		for _, k := range f.Keys() {
			set[k] = struct{}{}
		}
	}
	for _, f := range g.mixtures {
		for _, k := range f.Parents() {
			set[k] = struct{}{}
		}
	}

	out := make([]core.Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// ToFactorGraph converts the net into a factor graph, anchoring each
// Gaussian and mixture node's child variable at its supplied measurement:
// those nodes become likelihood factors over their continuous parents only
// (the observed child folded in as a fixed offset), while Discrete nodes
// pass through unchanged — discrete variables remain free. Returns
// ErrMissingMeasurement when measurements lacks a child key.
func (b *BayesNet) ToFactorGraph(measurements core.VectorValues) (*FactorGraph, error) {
	graph := NewFactorGraph()
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			if err := graph.PushDiscrete(node.discrete.Factor()); err != nil {
				return nil, err
			}
		case kindGaussian:
			z, err := measurements.At(node.gaussian.Key())
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMissingMeasurement, node.gaussian.Key())
			}
			likelihood, err := node.gaussian.Likelihood(z)
			if err != nil {
				return nil, err
			}
			if err := graph.PushJacobian(likelihood); err != nil {
				return nil, err
			}
		case kindMixture:
			z, err := measurements.At(node.mixture.Key())
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMissingMeasurement, node.mixture.Key())
			}
			likelihood, err := node.mixture.Likelihood(z)
			if err != nil {
				return nil, err
			}
			if err := graph.PushMixture(likelihood); err != nil {
				return nil, err
			}
		}
	}

	return graph, nil
}
