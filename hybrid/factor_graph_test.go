package hybrid_test

import (
	"testing"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/hybrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToFactorGraph_Structure each node becomes the matching factor kind and
// continuous keys shrink to parents only.
func TestToFactorGraph_Structure(t *testing.T) {
	net := tinyNet(t)
	measurements := scalarValues(t, map[core.Key]float64{"z0": 4.9, "x0": 5.1})

	graph, err := net.ToFactorGraph(measurements)
	require.NoError(t, err)

	assert.Equal(t, 3, graph.Size())
	assert.Len(t, graph.DiscreteFactors(), 1)
	assert.Len(t, graph.Jacobians(), 1)
	assert.Len(t, graph.Mixtures(), 1)

	assert.Equal(t, core.DiscreteKeys{modeKey}, graph.DiscreteKeys())
	assert.Equal(t, []core.Key{"x0"}, graph.ContinuousKeys(),
		"anchored children must not appear as graph variables")
}

// TestToFactorGraph_MissingMeasurement every Gaussian and mixture child
// needs a measurement.
func TestToFactorGraph_MissingMeasurement(t *testing.T) {
	net := tinyNet(t)

	_, err := net.ToFactorGraph(scalarValues(t, map[core.Key]float64{"z0": 4.9}))
	assert.ErrorIs(t, err, hybrid.ErrMissingMeasurement, "x0 measurement missing")

	_, err = net.ToFactorGraph(core.NewVectorValues())
	assert.ErrorIs(t, err, hybrid.ErrMissingMeasurement)
}

// TestToFactorGraph_DiscretePassThrough the discrete factor keeps the prior
// table unchanged.
func TestToFactorGraph_DiscretePassThrough(t *testing.T) {
	net := tinyNet(t)
	measurements := scalarValues(t, map[core.Key]float64{"z0": 4.9, "x0": 5.1})

	graph, err := net.ToFactorGraph(measurements)
	require.NoError(t, err)

	prior := graph.DiscreteFactors()[0]
	w0, err := prior.Value(core.DiscreteValues{"m0": 0})
	require.NoError(t, err)
	w1, err := prior.Value(core.DiscreteValues{"m0": 1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, w0)
	assert.Equal(t, 6.0, w1)
}

// TestToFactorGraph_JacobianErrorIdentity the Gaussian prior's likelihood
// factor over no keys carries the anchored residual error.
func TestToFactorGraph_JacobianErrorIdentity(t *testing.T) {
	net := tinyNet(t)
	measurements := scalarValues(t, map[core.Key]float64{"z0": 4.9, "x0": 5.1})

	graph, err := net.ToFactorGraph(measurements)
	require.NoError(t, err)

	jf := graph.Jacobians()[0]
	assert.Empty(t, jf.Keys(), "a parentless prior anchors to a constant factor")

	prior, err := net.At(1)
	require.NoError(t, err)
	want, err := prior.AsGaussian().Error(scalarValues(t, map[core.Key]float64{"x0": 5.1}))
	require.NoError(t, err)

	got, err := jf.Error(core.NewVectorValues())
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

// TestFactorGraph_PushRejectsNil nil factors are rejected by every push.
func TestFactorGraph_PushRejectsNil(t *testing.T) {
	graph := hybrid.NewFactorGraph()

	assert.ErrorIs(t, graph.PushDiscrete(nil), hybrid.ErrNilConditional)
	assert.ErrorIs(t, graph.PushJacobian(nil), hybrid.ErrNilConditional)
	assert.ErrorIs(t, graph.PushMixture(nil), hybrid.ErrNilConditional)
	assert.Equal(t, 0, graph.Size())
}

// TestMixtureFactor_AtErrors uncovered keys and pruned hypotheses surface as
// the hybrid sentinels.
func TestMixtureFactor_AtErrors(t *testing.T) {
	net := simpleNet(t)
	pruned, err := net.Prune(1)
	require.NoError(t, err)

	graph, err := pruned.ToFactorGraph(scalarValues(t, map[core.Key]float64{"x0": 4.8}))
	require.NoError(t, err)
	mf := graph.Mixtures()[0]

	_, err = mf.At(core.NewDiscreteValues())
	assert.ErrorIs(t, err, hybrid.ErrMissingAssignment)

	_, err = mf.At(core.DiscreteValues{"m0": 0})
	assert.ErrorIs(t, err, hybrid.ErrPrunedLeaf)

	leaf, err := mf.At(core.DiscreteValues{"m0": 1})
	require.NoError(t, err)
	assert.NotNil(t, leaf.Factor)
}
