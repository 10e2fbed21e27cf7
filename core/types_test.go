package core_test

import (
	"testing"

	"github.com/jrpowers/gtsam/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSym_Format verifies the prefix-index shorthand.
func TestSym_Format(t *testing.T) {
	assert.Equal(t, core.Key("x0"), core.Sym('x', 0))
	assert.Equal(t, core.Key("m12"), core.Sym('m', 12))
}

// TestDiscreteKeys_Validate rejects bad cardinalities and duplicates.
func TestDiscreteKeys_Validate(t *testing.T) {
	ok := core.DiscreteKeys{{ID: "a", Cardinality: 2}, {ID: "b", Cardinality: 3}}
	assert.NoError(t, ok.Validate())

	bad := core.DiscreteKeys{{ID: "a", Cardinality: 0}}
	assert.ErrorIs(t, bad.Validate(), core.ErrBadCardinality)

	dup := core.DiscreteKeys{{ID: "a", Cardinality: 2}, {ID: "a", Cardinality: 2}}
	assert.ErrorIs(t, dup.Validate(), core.ErrDuplicateKey)
}

// TestDiscreteKeys_SortedDoesNotMutate verifies Sorted returns a copy.
func TestDiscreteKeys_SortedDoesNotMutate(t *testing.T) {
	dk := core.DiscreteKeys{{ID: "b", Cardinality: 2}, {ID: "a", Cardinality: 3}}
	sorted := dk.Sorted()

	assert.Equal(t, core.Key("a"), sorted[0].ID)
	assert.Equal(t, core.Key("b"), sorted[1].ID)
	assert.Equal(t, core.Key("b"), dk[0].ID, "receiver order must be preserved")
}

// TestDiscreteKeys_Union merges key sets and rejects cardinality clashes.
func TestDiscreteKeys_Union(t *testing.T) {
	a := core.DiscreteKeys{{ID: "m", Cardinality: 2}}
	b := core.DiscreteKeys{{ID: "n", Cardinality: 3}, {ID: "m", Cardinality: 2}}

	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, core.DiscreteKeys{{ID: "m", Cardinality: 2}, {ID: "n", Cardinality: 3}}, u)

	clash := core.DiscreteKeys{{ID: "m", Cardinality: 3}}
	_, err = a.Union(clash)
	assert.ErrorIs(t, err, core.ErrBadCardinality)
}

// TestDiscreteKeys_Minus keeps only keys absent from the other set.
func TestDiscreteKeys_Minus(t *testing.T) {
	a := core.DiscreteKeys{{ID: "m", Cardinality: 2}, {ID: "n", Cardinality: 3}}
	b := core.DiscreteKeys{{ID: "n", Cardinality: 3}}

	assert.Equal(t, core.DiscreteKeys{{ID: "m", Cardinality: 2}}, a.Minus(b))
}

// TestDiscreteKeys_AssignmentsOrder pins the lexicographic enumeration:
// keys sorted ascending, first key most significant, last key fastest.
func TestDiscreteKeys_AssignmentsOrder(t *testing.T) {
	dk := core.DiscreteKeys{{ID: "b", Cardinality: 3}, {ID: "a", Cardinality: 2}}
	got := dk.Assignments()

	want := []core.DiscreteValues{
		{"a": 0, "b": 0},
		{"a": 0, "b": 1},
		{"a": 0, "b": 2},
		{"a": 1, "b": 0},
		{"a": 1, "b": 1},
		{"a": 1, "b": 2},
	}
	require.Len(t, got, 6)
	for i := range want {
		assert.True(t, got[i].Equal(want[i]), "assignment %d: got %v want %v", i, got[i], want[i])
	}
}

// TestDiscreteKeys_EmptyAssignments verifies the empty set yields exactly one
// empty assignment.
func TestDiscreteKeys_EmptyAssignments(t *testing.T) {
	var dk core.DiscreteKeys

	assert.Equal(t, 1, dk.NumAssignments())
	got := dk.Assignments()
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
}

// TestDiscreteKeys_Contains covers membership lookups.
func TestDiscreteKeys_Contains(t *testing.T) {
	dk := core.DiscreteKeys{{ID: "m", Cardinality: 2}}

	assert.True(t, dk.Contains("m"))
	assert.False(t, dk.Contains("x"))
}
