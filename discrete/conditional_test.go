package discrete_test

import (
	"math/rand"
	"testing"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConditional_RowLayout pins the table layout: one row per parent
// assignment, frontal value fastest within the row.
func TestNewConditional_RowLayout(t *testing.T) {
	// P(n0 | m0): row m0=0 is [0.9, 0.1], row m0=1 is [0.2, 0.8].
	c, err := discrete.NewConditional(keyN, core.DiscreteKeys{keyM}, []float64{0.9, 0.1, 0.2, 0.8})
	require.NoError(t, err)

	cases := []struct {
		m, n int
		want float64
	}{
		{0, 0, 0.9}, {0, 1, 0.1}, {1, 0, 0.2}, {1, 1, 0.8},
	}
	for _, tc := range cases {
		v, err := c.Value(core.DiscreteValues{"m0": tc.m, "n0": tc.n})
		require.NoError(t, err)
		assert.Equal(t, tc.want, v, "m0=%d n0=%d", tc.m, tc.n)
	}
}

// TestNewConditional_Validation rejects frontal-as-parent and wrong sizes.
func TestNewConditional_Validation(t *testing.T) {
	_, err := discrete.NewConditional(keyM, core.DiscreteKeys{keyM}, []float64{1, 1})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = discrete.NewConditional(keyN, core.DiscreteKeys{keyM}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, discrete.ErrBadRatios)
}

// TestFromRatios_Prior parses the "4/6" shorthand for a parentless prior.
func TestFromRatios_Prior(t *testing.T) {
	c, err := discrete.FromRatios(keyM, nil, "4/6")
	require.NoError(t, err)

	v0, err := c.Value(core.DiscreteValues{"m0": 0})
	require.NoError(t, err)
	v1, err := c.Value(core.DiscreteValues{"m0": 1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, v0)
	assert.Equal(t, 6.0, v1)

	assert.Empty(t, c.Parents())
	assert.Equal(t, core.DiscreteKeys{keyM}, c.Frontals())
}

// TestFromRatios_WithParent parses one row per parent assignment.
func TestFromRatios_WithParent(t *testing.T) {
	c, err := discrete.FromRatios(keyN, core.DiscreteKeys{keyM}, "9/1 2/8")
	require.NoError(t, err)

	v, err := c.Value(core.DiscreteValues{"m0": 1, "n0": 1})
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)
}

// TestFromRatios_Malformed rejects rows of the wrong width and junk cells.
func TestFromRatios_Malformed(t *testing.T) {
	_, err := discrete.FromRatios(keyM, nil, "4/6/1")
	assert.ErrorIs(t, err, discrete.ErrBadRatios)

	_, err = discrete.FromRatios(keyM, nil, "4/x")
	assert.ErrorIs(t, err, discrete.ErrBadRatios)
}

// TestFromFactor_SplitsKeys reinterprets a factor with explicit parents.
func TestFromFactor_SplitsKeys(t *testing.T) {
	joint, err := discrete.NewFactor(core.DiscreteKeys{keyM, keyN}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	c, err := discrete.FromFactor(joint, core.DiscreteKeys{keyM})
	require.NoError(t, err)
	assert.Equal(t, core.DiscreteKeys{keyN}, c.Frontals())
	assert.Equal(t, core.DiscreteKeys{keyM}, c.Parents())

	_, err = discrete.FromFactor(joint, core.DiscreteKeys{{ID: "zz", Cardinality: 2}})
	assert.ErrorIs(t, err, discrete.ErrMissingParent)
}

// TestConditional_SampleDeterministic identically seeded generators draw
// identical values, and draws stay within cardinality.
func TestConditional_SampleDeterministic(t *testing.T) {
	c, err := discrete.FromRatios(keyM, nil, "4/6")
	require.NoError(t, err)

	rngA := rand.New(rand.NewSource(42))
	rngB := rand.New(rand.NewSource(42))
	for i := 0; i < 32; i++ {
		a, err := c.Sample(nil, rngA)
		require.NoError(t, err)
		b, err := c.Sample(nil, rngB)
		require.NoError(t, err)

		assert.True(t, a.Equal(b), "draw %d diverged: %v vs %v", i, a, b)
		assert.Less(t, a["m0"], 2)
		assert.GreaterOrEqual(t, a["m0"], 0)
	}
}

// TestConditional_SampleErrors covers the nil generator and the all-zero row.
func TestConditional_SampleErrors(t *testing.T) {
	c, err := discrete.FromRatios(keyM, nil, "4/6")
	require.NoError(t, err)
	_, err = c.Sample(nil, nil)
	assert.ErrorIs(t, err, discrete.ErrNilRNG)

	// Row m0=1 is all zero.
	zeroRow, err := discrete.NewConditional(keyN, core.DiscreteKeys{keyM}, []float64{1, 1, 0, 0})
	require.NoError(t, err)
	_, err = zeroRow.Sample(core.DiscreteValues{"m0": 1}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, discrete.ErrZeroProbability)
}

// TestConditional_SampleConditionsOnParents a deterministic row draws its
// only positive value.
func TestConditional_SampleConditionsOnParents(t *testing.T) {
	c, err := discrete.NewConditional(keyN, core.DiscreteKeys{keyM}, []float64{1, 0, 0, 1})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for m := 0; m < 2; m++ {
		draw, err := c.Sample(core.DiscreteValues{"m0": m}, rng)
		require.NoError(t, err)
		assert.Equal(t, m, draw["n0"], "row m0=%d is deterministic", m)
	}
}

// TestConditional_SampleConditionsOnGivenFrontals a frontal key fixed in
// given is never drawn or overridden; only the remaining frontal keys are
// sampled, from the block the fixed value selects.
func TestConditional_SampleConditionsOnGivenFrontals(t *testing.T) {
	// Joint prior over both keys: the block m0=1 puts all weight on n0=0.
	joint, err := discrete.NewFactor(core.DiscreteKeys{keyM, keyN}, []float64{0.5, 0.5, 1, 0})
	require.NoError(t, err)
	c, err := discrete.FromFactor(joint, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 16; i++ {
		draw, err := c.Sample(core.DiscreteValues{"m0": 1}, rng)
		require.NoError(t, err)

		_, redrawn := draw["m0"]
		assert.False(t, redrawn, "fixed frontal must not be drawn again")
		assert.Equal(t, 0, draw["n0"], "block m0=1 is deterministic")
	}

	// All frontals fixed: nothing left to draw.
	draw, err := c.Sample(core.DiscreteValues{"m0": 0, "n0": 1}, rng)
	require.NoError(t, err)
	assert.Empty(t, draw)
}

// TestConditional_SampleRequiresParents a missing parent value fails loudly
// instead of being drawn as if it were frontal.
func TestConditional_SampleRequiresParents(t *testing.T) {
	c, err := discrete.FromRatios(keyN, core.DiscreteKeys{keyM}, "9/1 2/8")
	require.NoError(t, err)

	_, err = c.Sample(nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, discrete.ErrMissingParent)
}
