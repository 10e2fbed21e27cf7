package linear

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jrpowers/gtsam/core"
)

// BayesNet is an ordered sequence of Gaussian conditionals forming a valid
// factorization: the parents of node i appear among the frontal variables of
// nodes at indices greater than i. Algorithms that need parents resolved
// first (Optimize, SampleWithRNG) walk the slice back-to-front.
//
// A constructed net is read-only-shareable; no operation mutates it.
type BayesNet struct {
	nodes []*GaussianConditional
}

// NewBayesNet builds a net from conditionals in order. Returns
// ErrNilConditional for a nil entry.
func NewBayesNet(conditionals ...*GaussianConditional) (*BayesNet, error) {
	b := &BayesNet{}
	for _, c := range conditionals {
		if err := b.Push(c); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Push appends a conditional. Append-only: nodes are never replaced.
func (b *BayesNet) Push(c *GaussianConditional) error {
	if c == nil {
		return ErrNilConditional
	}
	b.nodes = append(b.nodes, c)

	return nil
}

// Size returns the number of conditionals.
func (b *BayesNet) Size() int { return len(b.nodes) }

// At returns the i-th conditional, or ErrNilConditional when i is out of
// range.
func (b *BayesNet) At(i int) (*GaussianConditional, error) {
	if i < 0 || i >= len(b.nodes) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNilConditional, i, len(b.nodes))
	}

	return b.nodes[i], nil
}

// Conditionals returns a copy of the node slice; the conditionals themselves
// are shared immutable values.
func (b *BayesNet) Conditionals() []*GaussianConditional {
	out := make([]*GaussianConditional, len(b.nodes))
	copy(out, b.nodes)

	return out
}

// Optimize solves the net by back-substitution: nodes are processed
// back-to-front, each frontal variable computed from its already-solved
// parents. Returns ErrSingularSystem if any pivot is zero and
// ErrMissingParent if the node order is not a valid factorization.
func (b *BayesNet) Optimize() (core.VectorValues, error) {
	solution := core.NewVectorValues()
	for i := len(b.nodes) - 1; i >= 0; i-- {
		x, err := b.nodes[i].Solve(solution)
		if err != nil {
			return nil, err
		}
		if err := solution.Insert(b.nodes[i].Key(), x); err != nil {
			return nil, err
		}
	}

	return solution, nil
}

// SampleWithRNG performs ancestral sampling back-to-front, skipping any
// variable already present in given. Returns the union of given and all new
// draws; given is not mutated.
func (b *BayesNet) SampleWithRNG(given core.VectorValues, rng *rand.Rand) (core.VectorValues, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}

	out := given.Clone()
	for i := len(b.nodes) - 1; i >= 0; i-- {
		node := b.nodes[i]
		if out.Has(node.Key()) {
			continue
		}
		x, err := node.SampleWithRNG(out, rng)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(node.Key(), x); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Error returns the sum of all node errors at values.
func (b *BayesNet) Error(vv core.VectorValues) (float64, error) {
	total := 0.0
	for _, node := range b.nodes {
		e, err := node.Error(vv)
		if err != nil {
			return 0, err
		}
		total += e
	}

	return total, nil
}

// LogDensity returns the sum of all node log-densities at values.
func (b *BayesNet) LogDensity(vv core.VectorValues) (float64, error) {
	total := 0.0
	for _, node := range b.nodes {
		ld, err := node.LogDensity(vv)
		if err != nil {
			return 0, err
		}
		total += ld
	}

	return total, nil
}

// Evaluate returns the joint density as the product of node densities,
// computed directly in linear probability space for parity with Error and
// LogDensity (underflow is possible on long chains; see hybrid package docs).
func (b *BayesNet) Evaluate(vv core.VectorValues) (float64, error) {
	prod := 1.0
	for _, node := range b.nodes {
		d, err := node.Density(vv)
		if err != nil {
			return 0, err
		}
		prod *= d
	}

	return prod, nil
}

// Equal reports pairwise structural equality of the node sequences within
// tol.
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

// String renders the node sequence in order.
func (b *BayesNet) String() string {
	parts := make([]string, len(b.nodes))
	for i, node := range b.nodes {
		parts[i] = node.String()
	}

	return fmt.Sprintf("GaussianBayesNet[%s]", strings.Join(parts, ", "))
}
