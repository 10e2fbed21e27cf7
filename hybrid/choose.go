package hybrid

import (
	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/linear"
)

// Choose selects the pure-Gaussian Bayes net corresponding to a discrete
// assignment. Per node:
//
//   - Discrete nodes are dropped: the assignment instantiates them fully and
//     their weight is a multiplicative constant handled by the discrete layer.
//   - Gaussian nodes pass through by reference (nodes are immutable).
//   - Mixture nodes are restricted to the assignment and resolve to their
//     selected leaf.
//
// The relative order of surviving nodes is preserved. Returns
// ErrMissingAssignment if a mixture's discrete keys are not fully covered,
// and ErrPrunedLeaf if the assignment selects a pruned hypothesis.
func (b *BayesNet) Choose(assignment core.DiscreteValues) (*linear.BayesNet, error) {
	out, err := linear.NewBayesNet()
	if err != nil {
		return nil, err
	}

	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			continue
		case kindGaussian:
			if err := out.Push(node.gaussian); err != nil {
				return nil, err
			}
		case kindMixture:
			leaf, err := node.mixture.Choose(assignment)
			if err != nil {
				return nil, err
			}
			if err := out.Push(leaf); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
