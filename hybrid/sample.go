package hybrid

import (
	"math/rand"

	"github.com/jrpowers/gtsam/core"
)

// Sample draws a full joint sample by ancestral sampling: one back-to-front
// pass, so every node's parents are resolved before the node draws.
//
// rng may be nil, in which case the process-wide default generator is used —
// a convenience that is NOT safe for concurrent callers; concurrent samplers
// must each supply their own generator (NewRNG / DeriveRNG).
func (b *BayesNet) Sample(rng *rand.Rand) (core.HybridValues, error) {
	return b.SampleGiven(core.NewHybridValues(), rng)
}

// SampleGiven draws the variables absent from given, conditioning on the
// values already present; nodes whose frontal variables are covered by given
// are skipped. Returns the union of given and all new draws; given is not
// mutated. The nil-rng policy matches Sample.
//
// Per node (back-to-front):
//
//   - Discrete: inverse-CDF draw of its unassigned frontal keys, conditioned
//     on every discrete value fixed so far. A pruned net folds all discrete
//     keys into one multi-frontal node; keys given up front stay as given and
//     only the rest is drawn.
//   - Mixture: resolve the discrete keys from values fixed so far, select
//     the Gaussian leaf, then draw mean plus transformed unit noise.
//   - Gaussian: the same draw without a selection step.
func (b *BayesNet) SampleGiven(given core.HybridValues, rng *rand.Rand) (core.HybridValues, error) {
	r := rng
	if r == nil {
		r = defaultGenerator()
	}

	out := given.Clone()
	for i := len(b.nodes) - 1; i >= 0; i-- {
		node := b.nodes[i]
		switch node.kind {
		case kindDiscrete:
			c := node.discrete
			if out.Discrete.ContainsAll(c.Frontals().IDs()) {
				continue
			}
			draw, err := c.Sample(out.Discrete, r)
			if err != nil {
				return core.HybridValues{}, err
			}
			for k, v := range draw {
				out.Discrete[k] = v
			}
		case kindGaussian:
			c := node.gaussian
			if out.Continuous.Has(c.Key()) {
				continue
			}
			x, err := c.SampleWithRNG(out.Continuous, r)
			if err != nil {
				return core.HybridValues{}, err
			}
			if err := out.Continuous.Insert(c.Key(), x); err != nil {
				return core.HybridValues{}, err
			}
		case kindMixture:
			m := node.mixture
			if out.Continuous.Has(m.Key()) {
				continue
			}
			x, err := m.SampleWithRNG(out.Discrete, out.Continuous, r)
			if err != nil {
				return core.HybridValues{}, err
			}
			if err := out.Continuous.Insert(m.Key(), x); err != nil {
				return core.HybridValues{}, err
			}
		}
	}

	return out, nil
}
