package discrete

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/jrpowers/gtsam/core"
	"gonum.org/v1/gonum/floats"
)

// Conditional is a discrete conditional distribution P(frontals | parents):
// a Factor whose key set is split into frontal keys (distributed) and parent
// keys (conditioned on). Weights need not be normalized per parent row.
type Conditional struct {
	factor   *Factor
	frontals core.DiscreteKeys
	parents  core.DiscreteKeys
}

// NewConditional builds a conditional over one frontal key given parents
// from a dense weight table. Rows follow the parents' lexicographic
// assignment order; within a row the frontal value varies fastest, so
// weights[p*card+f] is the weight of frontal value f under the p-th parent
// assignment.
func NewConditional(frontal core.DiscreteKey, parents core.DiscreteKeys, weights []float64) (*Conditional, error) {
	frontals := core.DiscreteKeys{frontal}
	if err := frontals.Validate(); err != nil {
		return nil, err
	}
	if err := parents.Validate(); err != nil {
		return nil, err
	}
	if parents.Contains(frontal.ID) {
		return nil, fmt.Errorf("%w: frontal %q also listed as parent", core.ErrDuplicateKey, frontal.ID)
	}

	rows := parents.Assignments()
	if len(weights) != len(rows)*frontal.Cardinality {
		return nil, fmt.Errorf("%w: got %d weights for %d rows of %d values",
			ErrBadRatios, len(weights), len(rows), frontal.Cardinality)
	}

	byAssignment := func(dv core.DiscreteValues) float64 {
		// Recover the row index of dv's parent part, then offset by the
		// frontal value.
		row := assignmentIndex(parents.Sorted(), dv)

		return weights[row*frontal.Cardinality+dv[frontal.ID]]
	}
	factor, err := factorFromFunc(append(core.DiscreteKeys{frontal}, parents...), byAssignment)
	if err != nil {
		return nil, err
	}

	return &Conditional{factor: factor, frontals: frontals, parents: parents.Sorted()}, nil
}

// FromRatios builds a conditional from GTSAM-style ratio text: frontal
// weights separated by '/', one row per parent assignment separated by
// spaces. For example FromRatios(mode, nil, "4/6") is a parentless prior
// with weights 4 and 6 (unnormalized weights are fine).
func FromRatios(frontal core.DiscreteKey, parents core.DiscreteKeys, spec string) (*Conditional, error) {
	rows := strings.Fields(spec)
	weights := make([]float64, 0, len(rows)*frontal.Cardinality)
	for _, row := range rows {
		cells := strings.Split(row, "/")
		if len(cells) != frontal.Cardinality {
			return nil, fmt.Errorf("%w: row %q has %d values, frontal cardinality is %d",
				ErrBadRatios, row, len(cells), frontal.Cardinality)
		}
		for _, cell := range cells {
			w, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadRatios, cell)
			}
			weights = append(weights, w)
		}
	}

	return NewConditional(frontal, parents, weights)
}

// FromFactor reinterprets a factor as a conditional with the given parent
// keys; the frontal keys are the factor's remaining keys. Every parent must
// appear in the factor (ErrMissingParent). Used to rebuild the combined
// discrete node after pruning.
func FromFactor(f *Factor, parents core.DiscreteKeys) (*Conditional, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil factor", ErrMissingParent)
	}
	for _, p := range parents {
		if !f.Keys().Contains(p.ID) {
			return nil, fmt.Errorf("%w: %q", ErrMissingParent, p.ID)
		}
	}

	return &Conditional{
		factor:   f,
		frontals: f.Keys().Minus(parents),
		parents:  parents.Sorted(),
	}, nil
}

// Factor returns the conditional's weight table.
func (c *Conditional) Factor() *Factor { return c.factor }

// Frontals returns the frontal key set (sorted).
func (c *Conditional) Frontals() core.DiscreteKeys { return c.frontals.Sorted() }

// Parents returns the parent key set (sorted).
func (c *Conditional) Parents() core.DiscreteKeys {
	out := make(core.DiscreteKeys, len(c.parents))
	copy(out, c.parents)

	return out
}

// Keys returns the full key set of the underlying factor.
func (c *Conditional) Keys() core.DiscreteKeys { return c.factor.Keys() }

// Value returns the table weight at the projected assignment.
func (c *Conditional) Value(dv core.DiscreteValues) (float64, error) {
	return c.factor.Value(dv)
}

// Sample draws the frontal keys absent from given by inverse-CDF sampling,
// conditioning on every value already present in given: the parent values
// and any frontal keys the caller fixed in advance (a multi-frontal
// conditional, as produced after pruning, may be partially assigned).
// Returns only the newly drawn keys; given is never mutated or overridden.
//
// Preconditions and validation (in order):
//  1. rng must be non-nil (ErrNilRNG); the library never hides a default
//     source at this layer.
//  2. given must cover every parent key (ErrMissingParent).
//  3. The conditioned weight block must have positive total
//     (ErrZeroProbability).
func (c *Conditional) Sample(given core.DiscreteValues, rng *rand.Rand) (core.DiscreteValues, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	for _, p := range c.parents {
		if _, ok := given[p.ID]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingParent, p.ID)
		}
	}

	restricted, err := c.factor.Restrict(given)
	if err != nil {
		return nil, err
	}
	missing := restricted.Keys()
	if len(missing) == 0 {
		return core.NewDiscreteValues(), nil
	}

	candidates := missing.Assignments()
	weights := make([]float64, len(candidates))
	for i, fa := range candidates {
		w, err := restricted.Value(fa)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}

	total := floats.Sum(weights)
	if total <= 0 {
		return nil, fmt.Errorf("%w: all candidate weights zero under given values", ErrZeroProbability)
	}

	// Inverse CDF over the enumerated candidate assignments.
	u := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return candidates[i], nil
		}
	}

	// Floating-point edge: u landed on the final boundary.
	return candidates[len(candidates)-1], nil
}

// Equal reports structural equality of key split and table within tol.
func (c *Conditional) Equal(other *Conditional, tol float64) bool {
	if other == nil {
		return false
	}
	if len(c.parents) != len(other.parents) {
		return false
	}
	for i, p := range c.parents {
		if other.parents[i] != p {
			return false
		}
	}

	return c.factor.Equal(other.factor, tol)
}

// String renders the conditional as P(frontals | parents) plus its table.
func (c *Conditional) String() string {
	var sb strings.Builder
	sb.WriteString("P(")
	for i, k := range c.frontals.Sorted() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(k.ID))
	}
	if len(c.parents) > 0 {
		sb.WriteString(" |")
		for _, k := range c.parents {
			sb.WriteByte(' ')
			sb.WriteString(string(k.ID))
		}
	}
	sb.WriteString("): ")
	sb.WriteString(c.factor.String())

	return sb.String()
}

// factorFromFunc builds a factor over keys by evaluating fn at every
// assignment in lexicographic order.
func factorFromFunc(keys core.DiscreteKeys, fn func(core.DiscreteValues) float64) (*Factor, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	assignments := keys.Assignments()
	weights := make([]float64, len(assignments))
	for i, dv := range assignments {
		weights[i] = fn(dv)
	}

	return NewFactor(keys, weights)
}

// assignmentIndex computes the lexicographic index of dv over sorted keys:
// the odometer reading with the first key most significant.
func assignmentIndex(sorted core.DiscreteKeys, dv core.DiscreteValues) int {
	idx := 0
	for _, k := range sorted {
		idx = idx*k.Cardinality + dv[k.ID]
	}

	return idx
}
