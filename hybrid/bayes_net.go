package hybrid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
	"github.com/jrpowers/gtsam/linear"
)

// BayesNet is an ordered sequence of hybrid conditionals forming a valid
// topological factorization: the parents of node i appear among the frontal
// variables of nodes at indices greater than i (sequential elimination
// order). Algorithms that need parents resolved first walk back-to-front.
//
// The net is built append-only by an external elimination process and is
// immutable afterwards; every operation either reads it or (Prune) returns a
// new net sharing unaffected nodes.
type BayesNet struct {
	nodes []*Conditional

	// Key universe, maintained by Push: a variable is never both discrete
	// and continuous, and discrete cardinalities never clash.
	discreteCard map[core.Key]int
	continuous   map[core.Key]struct{}
}

// NewBayesNet returns an empty net.
func NewBayesNet() *BayesNet {
	return &BayesNet{
		discreteCard: make(map[core.Key]int),
		continuous:   make(map[core.Key]struct{}),
	}
}

// Push appends a conditional.
//
// Preconditions and validation (in order):
//  1. c and its inner conditional must be non-nil (ErrNilConditional).
//  2. No discrete key of c may already be continuous in the net, and vice
//     versa (ErrInvalidKeySet).
//  3. A discrete key seen before must keep its cardinality (ErrInvalidKeySet).
func (b *BayesNet) Push(c *Conditional) error {
	if c == nil || (c.discrete == nil && c.gaussian == nil && c.mixture == nil) {
		return ErrNilConditional
	}

	for _, dk := range c.DiscreteKeys() {
		if _, ok := b.continuous[dk.ID]; ok {
			return fmt.Errorf("%w: %q is already a continuous variable", ErrInvalidKeySet, dk.ID)
		}
		if card, ok := b.discreteCard[dk.ID]; ok && card != dk.Cardinality {
			return fmt.Errorf("%w: %q declared with cardinality %d and %d",
				ErrInvalidKeySet, dk.ID, card, dk.Cardinality)
		}
	}
	for _, ck := range c.ContinuousKeys() {
		if _, ok := b.discreteCard[ck]; ok {
			return fmt.Errorf("%w: %q is already a discrete variable", ErrInvalidKeySet, ck)
		}
	}

	for _, dk := range c.DiscreteKeys() {
		b.discreteCard[dk.ID] = dk.Cardinality
	}
	for _, ck := range c.ContinuousKeys() {
		b.continuous[ck] = struct{}{}
	}
	b.nodes = append(b.nodes, c)

	return nil
}

// PushDiscrete wraps and appends a discrete conditional.
func (b *BayesNet) PushDiscrete(c *discrete.Conditional) error {
	node, err := NewDiscrete(c)
	if err != nil {
		return err
	}

	return b.Push(node)
}

// PushGaussian wraps and appends a pure Gaussian conditional.
func (b *BayesNet) PushGaussian(c *linear.GaussianConditional) error {
	node, err := NewGaussian(c)
	if err != nil {
		return err
	}

	return b.Push(node)
}

// PushMixture wraps and appends a Gaussian mixture.
func (b *BayesNet) PushMixture(m *GaussianMixture) error {
	node, err := NewMixture(m)
	if err != nil {
		return err
	}

	return b.Push(node)
}

// Size returns the number of nodes.
func (b *BayesNet) Size() int { return len(b.nodes) }

// At returns the i-th node, or ErrNilConditional when out of range.
func (b *BayesNet) At(i int) (*Conditional, error) {
	if i < 0 || i >= len(b.nodes) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNilConditional, i, len(b.nodes))
	}

	return b.nodes[i], nil
}

// DiscreteKeys returns the union of all discrete keys across nodes, sorted.
func (b *BayesNet) DiscreteKeys() core.DiscreteKeys {
	out := make(core.DiscreteKeys, 0, len(b.discreteCard))
	for id, card := range b.discreteCard {
		out = append(out, core.DiscreteKey{ID: id, Cardinality: card})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ContinuousKeys returns the union of all continuous keys across nodes,
// sorted.
func (b *BayesNet) ContinuousKeys() []core.Key {
	out := make([]core.Key, 0, len(b.continuous))
	for id := range b.continuous {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Equal reports pairwise structural equality of the node sequences within
// the numeric tolerance tol.
func (b *BayesNet) Equal(other *BayesNet, tol float64) bool {
	if other == nil || len(b.nodes) != len(other.nodes) {
		return false
	}
	for i, node := range b.nodes {
		if !node.Equal(other.nodes[i], tol) {
			return false
		}
	}

	return true
}

// String renders the node sequence in order, one line per node.
func (b *BayesNet) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HybridBayesNet of size %d\n", len(b.nodes))
	for i, node := range b.nodes {
		fmt.Fprintf(&sb, " %d: %s\n", i, node)
	}

	return sb.String()
}
