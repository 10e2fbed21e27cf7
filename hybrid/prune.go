package hybrid

import (
	"fmt"

	"github.com/jrpowers/gtsam/discrete"
)

// Prune returns a new net keeping at most maxNrLeaves discrete hypotheses:
// the combined discrete factor's assignments are ranked by weight descending
// (ties broken toward the lexicographically smallest assignment, matching
// Optimize), the top maxNrLeaves retained, and every other weight set to
// zero. No renormalization is performed — callers needing a normalized
// posterior renormalize separately.
//
// Node rewriting is copy-on-write:
//
//   - Gaussian nodes are shared by reference.
//   - Mixture nodes are rewritten only when a leaf dies; dead leaves become
//     nil placeholders that fail with ErrPrunedLeaf if ever selected.
//   - The Discrete nodes are replaced by a single node holding the pruned
//     combined table, at the position of the first discrete node.
//
// When maxNrLeaves is at least the number of distinct assignments this is a
// no-op returning an equivalent net sharing every node.
func (b *BayesNet) Prune(maxNrLeaves int) (*BayesNet, error) {
	if maxNrLeaves < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxLeaves, maxNrLeaves)
	}

	combined, err := b.DiscreteConditionals()
	if err != nil {
		return nil, err
	}

	if maxNrLeaves >= combined.Keys().NumAssignments() {
		out := NewBayesNet()
		for _, node := range b.nodes {
			if err := out.Push(node); err != nil {
				return nil, err
			}
		}

		return out, nil
	}

	pruned, err := combined.Prune(maxNrLeaves)
	if err != nil {
		return nil, err
	}

	return b.rebuildPruned(pruned)
}

// rebuildPruned assembles the post-prune net: the "update discrete
// conditionals" step plus mixture rewriting.
func (b *BayesNet) rebuildPruned(pruned *discrete.Factor) (*BayesNet, error) {
	out := NewBayesNet()
	replacedDiscrete := false
	for _, node := range b.nodes {
		switch node.kind {
		case kindGaussian:
			if err := out.Push(node); err != nil {
				return nil, err
			}
		case kindMixture:
			rewritten, err := node.mixture.prune(pruned)
			if err != nil {
				return nil, err
			}
			if rewritten == node.mixture {
				// Every leaf survived: share the node.
				if err := out.Push(node); err != nil {
					return nil, err
				}
				continue
			}
			if err := out.PushMixture(rewritten); err != nil {
				return nil, err
			}
		case kindDiscrete:
			if replacedDiscrete {
				// Already folded into the combined pruned table.
				continue
			}
			conditional, err := discrete.FromFactor(pruned, nil)
			if err != nil {
				return nil, err
			}
			if err := out.PushDiscrete(conditional); err != nil {
				return nil, err
			}
			replacedDiscrete = true
		}
	}

	return out, nil
}
