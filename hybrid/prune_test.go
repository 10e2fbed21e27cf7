package hybrid_test

import (
	"testing"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/hybrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrune_KillsLightHypothesis pruning to one leaf removes m0=0 from the
// simple net: selecting it afterwards fails, while the surviving hypothesis
// keeps its original (unrenormalized) weight and density.
func TestPrune_KillsLightHypothesis(t *testing.T) {
	net := simpleNet(t)
	pruned, err := net.Prune(1)
	require.NoError(t, err)

	dead := core.HybridValues{
		Discrete:   core.DiscreteValues{"m0": 0},
		Continuous: scalarValues(t, map[core.Key]float64{"x0": 0.0}),
	}
	_, err = pruned.Evaluate(dead)
	assert.ErrorIs(t, err, hybrid.ErrPrunedLeaf)
	_, err = pruned.Choose(dead.Discrete)
	assert.ErrorIs(t, err, hybrid.ErrPrunedLeaf)

	alive := core.HybridValues{
		Discrete:   core.DiscreteValues{"m0": 1},
		Continuous: scalarValues(t, map[core.Key]float64{"x0": 4.2}),
	}
	wantDensity, err := net.Evaluate(alive)
	require.NoError(t, err)
	gotDensity, err := pruned.Evaluate(alive)
	require.NoError(t, err)
	assert.InDelta(t, wantDensity, gotDensity, 1e-12, "surviving hypothesis must be untouched")

	dc, err := pruned.DiscreteConditionals()
	require.NoError(t, err)
	w0, err := dc.Value(core.DiscreteValues{"m0": 0})
	require.NoError(t, err)
	w1, err := dc.Value(core.DiscreteValues{"m0": 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, w0)
	assert.InDelta(t, 0.7, w1, 1e-12, "no renormalization after pruning")
}

// TestPrune_OptimizeSurvives the MPE of the pruned net is the surviving
// hypothesis.
func TestPrune_OptimizeSurvives(t *testing.T) {
	pruned, err := simpleNet(t).Prune(1)
	require.NoError(t, err)

	mpe, err := pruned.Optimize()
	require.NoError(t, err)
	assert.Equal(t, 1, mpe.Discrete["m0"])
	x0, err := mpe.Continuous.At("x0")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x0.AtVec(0), 1e-12)
}

// TestPrune_NoOpSharesNodes a budget covering every assignment returns an
// equivalent net.
func TestPrune_NoOpSharesNodes(t *testing.T) {
	net := simpleNet(t)
	pruned, err := net.Prune(5)
	require.NoError(t, err)

	assert.True(t, pruned.Equal(net, 1e-12))
	orig, err := net.At(0)
	require.NoError(t, err)
	kept, err := pruned.At(0)
	require.NoError(t, err)
	assert.Same(t, orig, kept, "no-op prune must share nodes")
}

// TestPrune_RejectsBadBudget budgets below one are invalid.
func TestPrune_RejectsBadBudget(t *testing.T) {
	_, err := simpleNet(t).Prune(0)
	assert.ErrorIs(t, err, hybrid.ErrBadMaxLeaves)
}

// TestPrune_TinyNet the combined weights 4/1 keep m0=0 under a budget of
// one; the Gaussian prior node is shared untouched.
func TestPrune_TinyNet(t *testing.T) {
	net := tinyNet(t)
	pruned, err := net.Prune(1)
	require.NoError(t, err)

	_, err = pruned.Choose(core.DiscreteValues{"m0": 1})
	assert.ErrorIs(t, err, hybrid.ErrPrunedLeaf)

	mpe, err := pruned.Optimize()
	require.NoError(t, err)
	assert.Equal(t, 0, mpe.Discrete["m0"])

	origPrior, err := net.At(1)
	require.NoError(t, err)
	keptPrior, err := pruned.At(1)
	require.NoError(t, err)
	assert.Same(t, origPrior, keptPrior, "pure Gaussian nodes pass through by reference")
}
