package core

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DiscreteValues maps discrete-variable identifiers to selected categorical
// value indices. Keys are unique by construction of the map type.
type DiscreteValues map[Key]int

// NewDiscreteValues returns an empty, non-nil assignment.
func NewDiscreteValues() DiscreteValues {
	return make(DiscreteValues)
}

// Clone returns an independent copy of the assignment.
func (dv DiscreteValues) Clone() DiscreteValues {
	out := make(DiscreteValues, len(dv))
	for k, v := range dv {
		out[k] = v
	}

	return out
}

// Keys returns the assigned identifiers in ascending order.
func (dv DiscreteValues) Keys() []Key {
	out := make([]Key, 0, len(dv))
	for k := range dv {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// ContainsAll reports whether every key in ids is assigned.
func (dv DiscreteValues) ContainsAll(ids []Key) bool {
	for _, id := range ids {
		if _, ok := dv[id]; !ok {
			return false
		}
	}

	return true
}

// Merge returns a new assignment holding the union of dv and other.
// On a shared key, the value from other wins. Neither input is mutated.
func (dv DiscreteValues) Merge(other DiscreteValues) DiscreteValues {
	out := dv.Clone()
	for k, v := range other {
		out[k] = v
	}

	return out
}

// Equal reports exact equality of key sets and values.
func (dv DiscreteValues) Equal(other DiscreteValues) bool {
	if len(dv) != len(other) {
		return false
	}
	for k, v := range dv {
		w, ok := other[k]
		if !ok || w != v {
			return false
		}
	}

	return true
}

// VectorValues maps continuous-variable identifiers to real vectors.
// Vectors are treated as immutable once inserted; Clone deep-copies them.
type VectorValues map[Key]*mat.VecDense

// NewVectorValues returns an empty, non-nil value map.
func NewVectorValues() VectorValues {
	return make(VectorValues)
}

// Insert adds a vector under id. Returns ErrDuplicateKey if id is already
// present and ErrNilVector if v is nil.
func (vv VectorValues) Insert(id Key, v *mat.VecDense) error {
	if v == nil {
		return fmt.Errorf("%w: key %q", ErrNilVector, id)
	}
	if _, ok := vv[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, id)
	}
	vv[id] = v

	return nil
}

// At returns the vector stored under id, or ErrKeyNotFound.
func (vv VectorValues) At(id Key) (*mat.VecDense, error) {
	v, ok := vv[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, id)
	}

	return v, nil
}

// Has reports whether id is assigned.
func (vv VectorValues) Has(id Key) bool {
	_, ok := vv[id]

	return ok
}

// Keys returns the assigned identifiers in ascending order.
func (vv VectorValues) Keys() []Key {
	out := make([]Key, 0, len(vv))
	for k := range vv {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Clone returns a deep copy: every vector is copied, so the result can be
// mutated without affecting the receiver.
func (vv VectorValues) Clone() VectorValues {
	out := make(VectorValues, len(vv))
	for k, v := range vv {
		out[k] = mat.VecDenseCopyOf(v)
	}

	return out
}

// Merge returns a new map holding the union of vv and other. On a shared
// key the vector from other wins. Vectors are shared by reference; they are
// immutable by convention.
func (vv VectorValues) Merge(other VectorValues) VectorValues {
	out := make(VectorValues, len(vv)+len(other))
	for k, v := range vv {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}

	return out
}

// Equal reports whether both maps assign the same keys and every pair of
// vectors matches element-wise within tol.
func (vv VectorValues) Equal(other VectorValues, tol float64) bool {
	if len(vv) != len(other) {
		return false
	}
	for k, v := range vv {
		w, ok := other[k]
		if !ok || !mat.EqualApprox(v, w, tol) {
			return false
		}
	}

	return true
}

// HybridValues is the pair of a discrete assignment and continuous vector
// values: the unit of evaluation, optimization, and sampling.
type HybridValues struct {
	Discrete   DiscreteValues
	Continuous VectorValues
}

// NewHybridValues returns a HybridValues with both maps initialized.
func NewHybridValues() HybridValues {
	return HybridValues{Discrete: NewDiscreteValues(), Continuous: NewVectorValues()}
}

// Clone returns an independent deep copy of both halves.
func (hv HybridValues) Clone() HybridValues {
	return HybridValues{Discrete: hv.Discrete.Clone(), Continuous: hv.Continuous.Clone()}
}

// Equal reports exact discrete equality and tolerance-based continuous
// equality.
func (hv HybridValues) Equal(other HybridValues, tol float64) bool {
	return hv.Discrete.Equal(other.Discrete) && hv.Continuous.Equal(other.Continuous, tol)
}
