package hybrid_test

import (
	"math"
	"testing"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/hybrid"
	"github.com/jrpowers/gtsam/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var modeKey = core.DiscreteKey{ID: "m0", Cardinality: 2}

// scalarValues builds a VectorValues from scalar entries; test helper only.
func scalarValues(t *testing.T, entries map[core.Key]float64) core.VectorValues {
	t.Helper()
	vv := core.NewVectorValues()
	for k, v := range entries {
		require.NoError(t, vv.Insert(k, mat.NewVecDense(1, []float64{v})))
	}

	return vv
}

// priorMixture is P(x0 | m0) with leaf m0=0 ~ N(0, 1) and m0=1 ~ N(5, 1).
func priorMixture(t *testing.T) *hybrid.GaussianMixture {
	t.Helper()
	leaf0, err := linear.FromMeanAndStddev("x0", []float64{0}, 1)
	require.NoError(t, err)
	leaf1, err := linear.FromMeanAndStddev("x0", []float64{5}, 1)
	require.NoError(t, err)

	m, err := hybrid.NewGaussianMixture(core.DiscreteKeys{modeKey},
		[]*linear.GaussianConditional{leaf0, leaf1})
	require.NoError(t, err)

	return m
}

// measurementMixture is P(z0 | x0, m0): z0 = x0 + ε with σ = 0.5 under m0=0
// and σ = 3 under m0=1.
func measurementMixture(t *testing.T) *hybrid.GaussianMixture {
	t.Helper()
	eye := mat.NewDense(1, 1, []float64{1})
	leaf0, err := linear.FromLinearMeanAndStddev("z0", eye, "x0", []float64{0}, 0.5)
	require.NoError(t, err)
	leaf1, err := linear.FromLinearMeanAndStddev("z0", eye, "x0", []float64{0}, 3)
	require.NoError(t, err)

	m, err := hybrid.NewGaussianMixture(core.DiscreteKeys{modeKey},
		[]*linear.GaussianConditional{leaf0, leaf1})
	require.NoError(t, err)

	return m
}

// TestNewGaussianMixture_Validation covers the constructor's precondition
// list in order.
func TestNewGaussianMixture_Validation(t *testing.T) {
	leaf, err := linear.FromMeanAndStddev("x0", []float64{0}, 1)
	require.NoError(t, err)

	_, err = hybrid.NewGaussianMixture(nil, nil)
	assert.ErrorIs(t, err, hybrid.ErrInvalidKeySet)

	_, err = hybrid.NewGaussianMixture(core.DiscreteKeys{modeKey},
		[]*linear.GaussianConditional{leaf})
	assert.ErrorIs(t, err, hybrid.ErrInvalidKeySet, "leaf count must match assignments")

	_, err = hybrid.NewGaussianMixture(core.DiscreteKeys{modeKey},
		[]*linear.GaussianConditional{leaf, nil})
	assert.ErrorIs(t, err, hybrid.ErrNilConditional)

	other, err := linear.FromMeanAndStddev("y0", []float64{0}, 1)
	require.NoError(t, err)
	_, err = hybrid.NewGaussianMixture(core.DiscreteKeys{modeKey},
		[]*linear.GaussianConditional{leaf, other})
	assert.ErrorIs(t, err, hybrid.ErrInvalidKeySet, "leaves must share one signature")
}

// TestGaussianMixture_Choose selects the leaf matching the assignment and
// fails loudly on uncovered keys.
func TestGaussianMixture_Choose(t *testing.T) {
	m := priorMixture(t)

	leaf, err := m.Choose(core.DiscreteValues{"m0": 1})
	require.NoError(t, err)
	mean, err := leaf.Solve(core.NewVectorValues())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean.AtVec(0), 1e-12)

	_, err = m.Choose(core.NewDiscreteValues())
	assert.ErrorIs(t, err, hybrid.ErrMissingAssignment)
}

// TestGaussianMixture_ErrorSelectsLeaf verifies per-hypothesis error.
func TestGaussianMixture_ErrorSelectsLeaf(t *testing.T) {
	m := priorMixture(t)
	hv := core.HybridValues{
		Discrete:   core.DiscreteValues{"m0": 0},
		Continuous: scalarValues(t, map[core.Key]float64{"x0": 2.0}),
	}

	e, err := m.Error(hv)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, e, 1e-12, "0.5·(2−0)² under the m0=0 leaf")

	hv.Discrete["m0"] = 1
	e, err = m.Error(hv)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, e, 1e-12, "0.5·(2−5)² under the m0=1 leaf")
}

// TestGaussianMixture_LikelihoodErrorIdentity the mixture factor's error per
// hypothesis equals the leaf error at the anchored measurement plus the
// leaf's extra constant relative to the best leaf.
func TestGaussianMixture_LikelihoodErrorIdentity(t *testing.T) {
	m := measurementMixture(t)
	z := 5.2
	mf, err := m.Likelihood(mat.NewVecDense(1, []float64{z}))
	require.NoError(t, err)

	assert.Equal(t, []core.Key{"x0"}, mf.Parents())

	// σ=0.5 has the smaller −log constant, so its extra error is zero and the
	// σ=3 hypothesis carries ln(3/0.5) = ln 6.
	for mode := 0; mode < 2; mode++ {
		dv := core.DiscreteValues{"m0": mode}
		leaf, err := m.Choose(dv)
		require.NoError(t, err)

		cont := scalarValues(t, map[core.Key]float64{"x0": 4.9})
		full := scalarValues(t, map[core.Key]float64{"x0": 4.9, "z0": z})

		wantLeafErr, err := leaf.Error(full)
		require.NoError(t, err)
		wantExtra := 0.0
		if mode == 1 {
			wantExtra = math.Log(6)
		}

		got, err := mf.Error(dv, cont)
		require.NoError(t, err)
		assert.InDelta(t, wantLeafErr+wantExtra, got, 1e-12, "mode=%d", mode)
	}
}

// TestGaussianMixture_SampleDeterministic identical seeds give identical
// draws per hypothesis.
func TestGaussianMixture_SampleDeterministic(t *testing.T) {
	m := priorMixture(t)
	dv := core.DiscreteValues{"m0": 1}

	a, err := m.SampleWithRNG(dv, core.NewVectorValues(), hybrid.NewRNG(11))
	require.NoError(t, err)
	b, err := m.SampleWithRNG(dv, core.NewVectorValues(), hybrid.NewRNG(11))
	require.NoError(t, err)
	assert.Equal(t, a.AtVec(0), b.AtVec(0))
}

// TestGaussianMixture_Equal distinguishes leaves and key sets.
func TestGaussianMixture_Equal(t *testing.T) {
	a := priorMixture(t)
	b := priorMixture(t)
	c := measurementMixture(t)

	assert.True(t, a.Equal(b, 1e-12))
	assert.False(t, a.Equal(c, 1e-12))
	assert.False(t, a.Equal(nil, 1e-12))
}
