package linear

import (
	"fmt"
	"strings"

	"github.com/jrpowers/gtsam/core"
	"gonum.org/v1/gonum/mat"
)

// JacobianFactor is a Gaussian likelihood factor exp(−0.5‖Σ Aj·yj − b‖²)
// over a set of continuous keys. It is the shape produced by anchoring a
// conditional's frontal variable at a measurement.
type JacobianFactor struct {
	keys []core.Key
	a    map[core.Key]*mat.Dense
	b    *mat.VecDense
}

// NewJacobianFactor builds a factor from per-key blocks and the rhs vector.
// Every block must have b's row count (ErrDimensionMismatch); keys must be
// unique (core.ErrDuplicateKey).
func NewJacobianFactor(keys []core.Key, blocks []*mat.Dense, b *mat.VecDense) (*JacobianFactor, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil b", ErrDimensionMismatch)
	}
	if len(keys) != len(blocks) {
		return nil, fmt.Errorf("%w: %d keys, %d blocks", ErrDimensionMismatch, len(keys), len(blocks))
	}

	n := b.Len()
	a := make(map[core.Key]*mat.Dense, len(keys))
	order := make([]core.Key, len(keys))
	for i, k := range keys {
		if k == "" {
			return nil, ErrEmptyKey
		}
		if _, ok := a[k]; ok {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateKey, k)
		}
		if blocks[i] == nil {
			return nil, fmt.Errorf("%w: nil block for %q", ErrDimensionMismatch, k)
		}
		if rows, _ := blocks[i].Dims(); rows != n {
			return nil, fmt.Errorf("%w: block for %q has %d rows, want %d",
				ErrDimensionMismatch, k, rows, n)
		}
		a[k] = blocks[i]
		order[i] = k
	}

	return &JacobianFactor{keys: order, a: a, b: mat.VecDenseCopyOf(b)}, nil
}

// Keys returns the factor's keys in construction order.
func (f *JacobianFactor) Keys() []core.Key {
	out := make([]core.Key, len(f.keys))
	copy(out, f.keys)

	return out
}

// A returns the block for key, or core.ErrKeyNotFound.
func (f *JacobianFactor) A(key core.Key) (*mat.Dense, error) {
	block, ok := f.a[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrKeyNotFound, key)
	}

	return block, nil
}

// B returns a copy of the rhs vector.
func (f *JacobianFactor) B() *mat.VecDense { return mat.VecDenseCopyOf(f.b) }

// Error returns 0.5‖Σ Aj·yj − b‖² at the given values.
func (f *JacobianFactor) Error(vv core.VectorValues) (float64, error) {
	res := mat.NewVecDense(f.b.Len(), nil)
	for _, k := range f.keys {
		y, err := vv.At(k)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMissingParent, k)
		}
		var ay mat.VecDense
		ay.MulVec(f.a[k], y)
		res.AddVec(res, &ay)
	}
	res.SubVec(res, f.b)

	return 0.5 * mat.Dot(res, res), nil
}

// Equal reports structural equality within tol.
func (f *JacobianFactor) Equal(other *JacobianFactor, tol float64) bool {
	if other == nil || len(f.keys) != len(other.keys) {
		return false
	}
	for i, k := range f.keys {
		if other.keys[i] != k {
			return false
		}
	}
	if !mat.EqualApprox(f.b, other.b, tol) {
		return false
	}
	for _, k := range f.keys {
		if !mat.EqualApprox(f.a[k], other.a[k], tol) {
			return false
		}
	}

	return true
}

// String renders the factor's key list.
func (f *JacobianFactor) String() string {
	keys := make([]string, len(f.keys))
	for i, k := range f.keys {
		keys[i] = string(k)
	}

	return fmt.Sprintf("JacobianFactor(%s)", strings.Join(keys, " "))
}
