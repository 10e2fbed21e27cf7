package dtree

import (
	"fmt"
	"sort"

	"github.com/jrpowers/gtsam/core"
)

// Tree is a decision tree over discrete keys with leaves of type L.
// A node is either a leaf (isLeaf set) or a choice on key with one branch
// per categorical value. Keys strictly increase along every path.
//
// Trees are immutable once built; all operations return new trees and may
// share unmodified subtrees with their inputs.
type Tree[L any] struct {
	leaf     L
	isLeaf   bool
	key      core.Key
	branches []*Tree[L]
}

// NewLeaf returns a single-leaf tree holding value.
func NewLeaf[L any](value L) *Tree[L] {
	return &Tree[L]{leaf: value, isLeaf: true}
}

// NewChoice returns a choice node on key with the given branches, one per
// categorical value in order. Returns core.ErrBadCardinality for an empty
// branch list and ErrNilSubtree for a nil branch.
//
// The caller is responsible for the key-ordering invariant: every key inside
// a branch must compare greater than key. FromTable and Combine maintain it
// automatically.
func NewChoice[L any](key core.Key, branches []*Tree[L]) (*Tree[L], error) {
	if len(branches) < 1 {
		return nil, fmt.Errorf("%w: key %q has no branches", core.ErrBadCardinality, key)
	}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("%w: branch %d of key %q", ErrNilSubtree, i, key)
		}
	}

	return &Tree[L]{key: key, branches: branches}, nil
}

// FromTable builds a canonical tree over keys from a dense table of leaf
// values in the library's lexicographic order (see package docs).
// Returns ErrBadTable on a length mismatch; key-set validation errors are
// forwarded from core.
func FromTable[L any](keys core.DiscreteKeys, values []L) (*Tree[L], error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	sorted := keys.Sorted()
	if len(values) != sorted.NumAssignments() {
		return nil, fmt.Errorf("%w: got %d values for %d assignments",
			ErrBadTable, len(values), sorted.NumAssignments())
	}

	return buildTable(sorted, values), nil
}

// buildTable recursively splits the table on the first (most significant) key.
func buildTable[L any](sorted core.DiscreteKeys, values []L) *Tree[L] {
	if len(sorted) == 0 {
		return NewLeaf(values[0])
	}

	k := sorted[0]
	stride := len(values) / k.Cardinality
	branches := make([]*Tree[L], k.Cardinality)
	for i := 0; i < k.Cardinality; i++ {
		branches[i] = buildTable(sorted[1:], values[i*stride:(i+1)*stride])
	}

	return &Tree[L]{key: k.ID, branches: branches}
}

// IsLeaf reports whether the root node is a leaf.
func (t *Tree[L]) IsLeaf() bool { return t.isLeaf }

// Leaf returns the root's leaf value; meaningful only when IsLeaf is true.
func (t *Tree[L]) Leaf() L { return t.leaf }

// At walks the tree down to the leaf selected by values. Every key on the
// path must be assigned (ErrMissingKey) and within cardinality
// (ErrBadAssignment).
func (t *Tree[L]) At(values core.DiscreteValues) (L, error) {
	node := t
	for !node.isLeaf {
		v, ok := values[node.key]
		if !ok {
			var zero L

			return zero, fmt.Errorf("%w: %q", ErrMissingKey, node.key)
		}
		if v < 0 || v >= len(node.branches) {
			var zero L

			return zero, fmt.Errorf("%w: key %q value %d of %d",
				ErrBadAssignment, node.key, v, len(node.branches))
		}
		node = node.branches[v]
	}

	return node.leaf, nil
}

// Restrict fixes the keys assigned in values, replacing their choice nodes
// by the selected branch. Keys absent from values keep their choices; keys
// in values absent from the tree are ignored. Returns ErrBadAssignment for
// an out-of-range value.
func (t *Tree[L]) Restrict(values core.DiscreteValues) (*Tree[L], error) {
	if t.isLeaf {
		return t, nil
	}

	if v, ok := values[t.key]; ok {
		if v < 0 || v >= len(t.branches) {
			return nil, fmt.Errorf("%w: key %q value %d of %d",
				ErrBadAssignment, t.key, v, len(t.branches))
		}

		return t.branches[v].Restrict(values)
	}

	branches := make([]*Tree[L], len(t.branches))
	for i, b := range t.branches {
		r, err := b.Restrict(values)
		if err != nil {
			return nil, err
		}
		branches[i] = r
	}

	return &Tree[L]{key: t.key, branches: branches}, nil
}

// Apply returns a new tree of the same shape with fn applied to every leaf.
func Apply[L, M any](t *Tree[L], fn func(L) M) *Tree[M] {
	if t.isLeaf {
		return NewLeaf(fn(t.leaf))
	}

	branches := make([]*Tree[M], len(t.branches))
	for i, b := range t.branches {
		branches[i] = Apply(b, fn)
	}

	return &Tree[M]{key: t.key, branches: branches}
}

// Combine merges two trees into one over the union of their key sets,
// applying op at every pair of aligned leaves. This is the standard ordered
// apply: at each step the node with the smaller key splits first, so shared
// keys align and disjoint keys interleave in ascending order.
//
// Returns ErrNilSubtree for nil operands and core.ErrBadCardinality when the
// same key has different branch counts in a and b.
func Combine[A, B, C any](a *Tree[A], b *Tree[B], op func(A, B) C) (*Tree[C], error) {
	if a == nil || b == nil {
		return nil, ErrNilSubtree
	}

	switch {
	case a.isLeaf && b.isLeaf:
		return NewLeaf(op(a.leaf, b.leaf)), nil

	case !a.isLeaf && (b.isLeaf || a.key < b.key):
		// a splits first: b is constant across a's branches.
		branches := make([]*Tree[C], len(a.branches))
		for i, ab := range a.branches {
			c, err := Combine(ab, b, op)
			if err != nil {
				return nil, err
			}
			branches[i] = c
		}

		return &Tree[C]{key: a.key, branches: branches}, nil

	case !b.isLeaf && (a.isLeaf || b.key < a.key):
		branches := make([]*Tree[C], len(b.branches))
		for i, bb := range b.branches {
			c, err := Combine(a, bb, op)
			if err != nil {
				return nil, err
			}
			branches[i] = c
		}

		return &Tree[C]{key: b.key, branches: branches}, nil

	default:
		// Same key: branch counts must agree.
		if len(a.branches) != len(b.branches) {
			return nil, fmt.Errorf("%w: key %q has %d and %d branches",
				core.ErrBadCardinality, a.key, len(a.branches), len(b.branches))
		}
		branches := make([]*Tree[C], len(a.branches))
		for i := range a.branches {
			c, err := Combine(a.branches[i], b.branches[i], op)
			if err != nil {
				return nil, err
			}
			branches[i] = c
		}

		return &Tree[C]{key: a.key, branches: branches}, nil
	}
}

// Keys returns the discrete keys appearing in the tree, sorted ascending,
// with cardinalities taken from the branch counts.
func (t *Tree[L]) Keys() core.DiscreteKeys {
	card := make(map[core.Key]int)
	collectKeys(t, card)

	out := make(core.DiscreteKeys, 0, len(card))
	for id, c := range card {
		out = append(out, core.DiscreteKey{ID: id, Cardinality: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func collectKeys[L any](t *Tree[L], card map[core.Key]int) {
	if t.isLeaf {
		return
	}
	card[t.key] = len(t.branches)
	for _, b := range t.branches {
		collectKeys(b, card)
	}
}
