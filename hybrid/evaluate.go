package hybrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/dtree"
)

// Evaluate computes the joint density at values as the product of each
// node's local conditional density, taken in node order:
//
//   - a Discrete node contributes its table weight at the discrete projection,
//   - a Gaussian node contributes its density at the continuous projection,
//   - a Mixture node selects its leaf by the discrete projection and
//     contributes that leaf's density.
//
// The product is accumulated directly in probability space, not log-space;
// long chains can underflow (see package docs). Returns
// ErrMissingAssignment for an uncovered mixture key and ErrPrunedLeaf for a
// pruned hypothesis.
func (b *BayesNet) Evaluate(values core.HybridValues) (float64, error) {
	prod := 1.0
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			w, err := node.discrete.Value(values.Discrete)
			if err != nil {
				if errors.Is(err, dtree.ErrMissingKey) {
					return 0, fmt.Errorf("%w: %v", ErrMissingAssignment, err)
				}

				return 0, err
			}
			prod *= w
		case kindGaussian:
			d, err := node.gaussian.Density(values.Continuous)
			if err != nil {
				return 0, err
			}
			prod *= d
		case kindMixture:
			d, err := node.mixture.Density(values)
			if err != nil {
				return 0, err
			}
			prod *= d
		}
	}

	return prod, nil
}

// Error returns the sum of each node's local error contribution at values:
// 0.5 × squared Mahalanobis distance for Gaussian and mixture nodes, and the
// negative-log table weight for discrete nodes. The convention matches
// Evaluate exactly: Evaluate == exp(−Error) × Π exp(−NegLogConstant) over
// Gaussian/mixture nodes, so ProbPrime stays consistent. A zero discrete
// weight yields +Inf.
func (b *BayesNet) Error(values core.HybridValues) (float64, error) {
	total := 0.0
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			w, err := node.discrete.Value(values.Discrete)
			if err != nil {
				if errors.Is(err, dtree.ErrMissingKey) {
					return 0, fmt.Errorf("%w: %v", ErrMissingAssignment, err)
				}

				return 0, err
			}
			total += -math.Log(w)
		case kindGaussian:
			e, err := node.gaussian.Error(values.Continuous)
			if err != nil {
				return 0, err
			}
			total += e
		case kindMixture:
			e, err := node.mixture.Error(values)
			if err != nil {
				return 0, err
			}
			total += e
		}
	}

	return total, nil
}

// LogDensity returns the log of Evaluate computed in log space: the discrete
// log-weights plus each instantiated Gaussian's log-density. Prefer it over
// log(Evaluate(values)) on long chains.
func (b *BayesNet) LogDensity(values core.HybridValues) (float64, error) {
	total := 0.0
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			w, err := node.discrete.Value(values.Discrete)
			if err != nil {
				if errors.Is(err, dtree.ErrMissingKey) {
					return 0, fmt.Errorf("%w: %v", ErrMissingAssignment, err)
				}

				return 0, err
			}
			total += math.Log(w)
		case kindGaussian:
			ld, err := node.gaussian.LogDensity(values.Continuous)
			if err != nil {
				return 0, err
			}
			total += ld
		case kindMixture:
			leaf, err := node.mixture.Choose(values.Discrete)
			if err != nil {
				return 0, err
			}
			ld, err := leaf.LogDensity(values.Continuous)
			if err != nil {
				return 0, err
			}
			total += ld
		}
	}

	return total, nil
}

// ErrorTree computes, for every assignment of the net's discrete keys, the
// total Gaussian error of Choose(assignment) at continuousValues, and
// returns it as a decision tree. Per-node trees are combined lazily; the
// joint table is never materialized, and the tree only splits on keys the
// error actually depends on (those of the mixture nodes) — At ignores the
// rest of a full assignment. Pruned mixture leaves carry +Inf error, so
// ProbPrime maps them to zero.
func (b *BayesNet) ErrorTree(continuousValues core.VectorValues) (*dtree.Scalar, error) {
	total := dtree.NewLeaf(0.0)
	for _, node := range b.nodes {
		switch node.kind {
		case kindDiscrete:
			continue
		case kindGaussian:
			e, err := node.gaussian.Error(continuousValues)
			if err != nil {
				return nil, err
			}
			total = dtree.Apply(total, func(v float64) float64 { return v + e })
		case kindMixture:
			leafErrors, err := node.mixture.errorTree(continuousValues)
			if err != nil {
				return nil, err
			}
			total, err = dtree.Add(total, leafErrors)
			if err != nil {
				return nil, err
			}
		}
	}

	return total, nil
}

// ProbPrime returns the leaf-wise exp(−error) of ErrorTree: the unnormalized
// density at continuousValues per discrete hypothesis. It compares and
// prunes hypotheses without constructing full HybridValues.
func (b *BayesNet) ProbPrime(continuousValues core.VectorValues) (*dtree.Scalar, error) {
	errTree, err := b.ErrorTree(continuousValues)
	if err != nil {
		return nil, err
	}

	return dtree.Apply(errTree, func(e float64) float64 { return math.Exp(-e) }), nil
}
