package hybrid

import (
	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
)

// DiscreteConditionals combines the net's discrete structure into a single
// unnormalized factor over all discrete keys:
//
//	(a) the tables of all Discrete nodes, via the factor product, and
//	(b) for every Mixture node, the closed-form weight of each leaf's
//	    analytically integrated-out Gaussian (its relative normalization
//	    constant; see GaussianMixture.constantTree).
//
// The result approximates the marginal posterior over discrete variables
// after eliminating all continuous ones; it is exact only when the net is a
// clean tree over the discrete variables. This inherited semantics governs
// both Optimize and Prune.
func (b *BayesNet) DiscreteConditionals() (*discrete.Factor, error) {
	result := discrete.Unit()
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			product, err := result.Mul(node.discrete.Factor())
			if err != nil {
				return nil, err
			}
			result = product
		case kindGaussian:
			continue
		case kindMixture:
			contribution, err := discrete.FromTree(node.mixture.DiscreteKeys(), node.mixture.constantTree())
			if err != nil {
				return nil, err
			}
			product, err := result.Mul(contribution)
			if err != nil {
				return nil, err
			}
			result = product
		}
	}

	return result, nil
}

// Optimize returns the most probable explanation (MPE) in two stages:
// the maximizing assignment of DiscreteConditionals (ties broken
// deterministically toward the lexicographically smallest assignment), then
// OptimizeGiven for the continuous solve. linear.ErrSingularSystem
// propagates unchanged.
func (b *BayesNet) Optimize() (core.HybridValues, error) {
	dc, err := b.DiscreteConditionals()
	if err != nil {
		return core.HybridValues{}, err
	}

	mpe, _, err := dc.ArgMax()
	if err != nil {
		return core.HybridValues{}, err
	}

	continuous, err := b.OptimizeGiven(mpe)
	if err != nil {
		return core.HybridValues{}, err
	}

	return core.HybridValues{Discrete: mpe, Continuous: continuous}, nil
}

// OptimizeGiven solves the continuous variables for a fixed discrete
// assignment: Choose then back-substitution over the resulting pure-Gaussian
// net. Fails with ErrMissingAssignment for an uncovered mixture key; a
// singular linear system propagates as linear.ErrSingularSystem.
func (b *BayesNet) OptimizeGiven(assignment core.DiscreteValues) (core.VectorValues, error) {
	gaussian, err := b.Choose(assignment)
	if err != nil {
		return nil, err
	}

	return gaussian.Optimize()
}
