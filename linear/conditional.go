package linear

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jrpowers/gtsam/core"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// log2Pi is ln(2π), the per-dimension term of the Gaussian normalization.
const log2Pi = 1.8378770664093454835606594728112353

// GaussianConditional is a linear-Gaussian density over a frontal continuous
// variable conditioned on continuous parents:
//
//	p(x | y1..yk) ∝ exp(−0.5‖R·x + Σ Sj·yj − d‖²)
//
// R is square upper-triangular with the noise already folded in. The value
// is immutable once constructed and safe to share across readers.
type GaussianConditional struct {
	key     core.Key
	parents []core.Key
	r       *mat.TriDense
	s       map[core.Key]*mat.Dense
	d       *mat.VecDense
	dim     int
}

// NewConditional builds a conditional from its blocks.
//
// Preconditions and validation (in order):
//  1. key must be non-empty (ErrEmptyKey).
//  2. r must be non-nil upper-triangular (ErrNotUpperTriangular).
//  3. d must be non-nil with length matching r (ErrDimensionMismatch).
//  4. parents and s must pair up: same length, no duplicate or self parent
//     (core.ErrDuplicateKey), every block with r's row count
//     (ErrDimensionMismatch).
//
// Singularity of r is not checked here: it only matters for Solve/Sample and
// surfaces there as ErrSingularSystem.
func NewConditional(key core.Key, r *mat.TriDense, parents []core.Key, s []*mat.Dense, d *mat.VecDense) (*GaussianConditional, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil R", ErrNotUpperTriangular)
	}
	n, kind := r.Triangle()
	if kind != mat.Upper {
		return nil, fmt.Errorf("%w: key %q", ErrNotUpperTriangular, key)
	}
	if d == nil || d.Len() != n {
		return nil, fmt.Errorf("%w: key %q: R is %d×%d, d has length %d",
			ErrDimensionMismatch, key, n, n, vecLen(d))
	}
	if len(parents) != len(s) {
		return nil, fmt.Errorf("%w: key %q: %d parents, %d S blocks",
			ErrDimensionMismatch, key, len(parents), len(s))
	}

	blocks := make(map[core.Key]*mat.Dense, len(parents))
	order := make([]core.Key, len(parents))
	for i, p := range parents {
		if p == "" {
			return nil, ErrEmptyKey
		}
		if p == key {
			return nil, fmt.Errorf("%w: parent %q equals frontal key", core.ErrDuplicateKey, p)
		}
		if _, ok := blocks[p]; ok {
			return nil, fmt.Errorf("%w: parent %q", core.ErrDuplicateKey, p)
		}
		if s[i] == nil {
			return nil, fmt.Errorf("%w: key %q: nil S block for %q", ErrDimensionMismatch, key, p)
		}
		if rows, _ := s[i].Dims(); rows != n {
			return nil, fmt.Errorf("%w: key %q: S block for %q has %d rows, want %d",
				ErrDimensionMismatch, key, p, rows, n)
		}
		blocks[p] = s[i]
		order[i] = p
	}

	return &GaussianConditional{key: key, parents: order, r: r, s: blocks, d: mat.VecDenseCopyOf(d), dim: n}, nil
}

// FromMeanAndStddev builds the parentless prior x ~ N(mean, sigma²·I):
// R = I/sigma, d = mean/sigma.
func FromMeanAndStddev(key core.Key, mean []float64, sigma float64) (*GaussianConditional, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadSigma, sigma)
	}

	n := len(mean)
	r := identityOver(n, 1/sigma)
	d := mat.NewVecDense(n, nil)
	for i, m := range mean {
		d.SetVec(i, m/sigma)
	}

	return NewConditional(key, r, nil, nil, d)
}

// FromLinearMeanAndStddev builds x = A·y + b + ε with ε ~ N(0, sigma²·I):
// R = I/sigma, S = −A/sigma, d = b/sigma.
func FromLinearMeanAndStddev(key core.Key, a *mat.Dense, parent core.Key, b []float64, sigma float64) (*GaussianConditional, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadSigma, sigma)
	}
	rows, cols := a.Dims()
	if rows != len(b) {
		return nil, fmt.Errorf("%w: A has %d rows, b has length %d", ErrDimensionMismatch, rows, len(b))
	}

	r := identityOver(rows, 1/sigma)
	s := mat.NewDense(rows, cols, nil)
	s.Scale(-1/sigma, a)
	d := mat.NewVecDense(rows, nil)
	for i, v := range b {
		d.SetVec(i, v/sigma)
	}

	return NewConditional(key, r, []core.Key{parent}, []*mat.Dense{s}, d)
}

// Key returns the frontal variable identifier.
func (c *GaussianConditional) Key() core.Key { return c.key }

// Parents returns the parent identifiers in construction order.
func (c *GaussianConditional) Parents() []core.Key {
	out := make([]core.Key, len(c.parents))
	copy(out, c.parents)

	return out
}

// Dim returns the frontal variable's vector dimension.
func (c *GaussianConditional) Dim() int { return c.dim }

// residual computes R·x + Σ Sj·yj − d at the given values. Every involved
// variable must be assigned.
func (c *GaussianConditional) residual(vv core.VectorValues) (*mat.VecDense, error) {
	x, err := vv.At(c.key)
	if err != nil {
		return nil, err
	}
	if x.Len() != c.dim {
		return nil, fmt.Errorf("%w: value for %q has length %d, want %d",
			ErrDimensionMismatch, c.key, x.Len(), c.dim)
	}

	res := mat.NewVecDense(c.dim, nil)
	res.MulVec(c.r, x)
	for _, p := range c.parents {
		y, err := vv.At(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingParent, p)
		}
		var sy mat.VecDense
		sy.MulVec(c.s[p], y)
		res.AddVec(res, &sy)
	}
	res.SubVec(res, c.d)

	return res, nil
}

// Error returns 0.5 × the squared Mahalanobis distance at values.
func (c *GaussianConditional) Error(vv core.VectorValues) (float64, error) {
	res, err := c.residual(vv)
	if err != nil {
		return 0, err
	}

	return 0.5 * mat.Dot(res, res), nil
}

// NegLogConstant returns −log of the normalization constant:
// 0.5·n·ln(2π) − Σ ln|R_ii|. A zero diagonal entry yields +Inf.
func (c *GaussianConditional) NegLogConstant() float64 {
	sum := 0.5 * float64(c.dim) * log2Pi
	for i := 0; i < c.dim; i++ {
		sum -= math.Log(math.Abs(c.r.At(i, i)))
	}

	return sum
}

// LogDensity returns the normalized log-density at values.
func (c *GaussianConditional) LogDensity(vv core.VectorValues) (float64, error) {
	e, err := c.Error(vv)
	if err != nil {
		return 0, err
	}

	return -e - c.NegLogConstant(), nil
}

// Density returns the normalized density at values, computed in linear
// probability space.
func (c *GaussianConditional) Density(vv core.VectorValues) (float64, error) {
	ld, err := c.LogDensity(vv)
	if err != nil {
		return 0, err
	}

	return math.Exp(ld), nil
}

// Solve returns the conditional mean R⁻¹(d − Σ Sj·yj) given parent values.
// Returns ErrMissingParent for an unresolved parent and ErrSingularSystem
// for a zero pivot.
func (c *GaussianConditional) Solve(vv core.VectorValues) (*mat.VecDense, error) {
	rhs := mat.VecDenseCopyOf(c.d)
	for _, p := range c.parents {
		y, err := vv.At(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingParent, p)
		}
		var sy mat.VecDense
		sy.MulVec(c.s[p], y)
		rhs.SubVec(rhs, &sy)
	}

	return c.backSubstitute(rhs)
}

// SampleWithRNG draws x = mean + R⁻¹·z with z a unit-normal vector from rng.
// The draw order is fixed (coordinates ascending) so identically seeded
// generators produce bit-identical samples.
func (c *GaussianConditional) SampleWithRNG(vv core.VectorValues, rng *rand.Rand) (*mat.VecDense, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}

	mean, err := c.Solve(vv)
	if err != nil {
		return nil, err
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	z := mat.NewVecDense(c.dim, nil)
	for i := 0; i < c.dim; i++ {
		z.SetVec(i, norm.Rand())
	}

	noise, err := c.backSubstitute(z)
	if err != nil {
		return nil, err
	}
	noise.AddVec(mean, noise)

	return noise, nil
}

// Likelihood anchors the frontal variable at measurement and returns the
// implied factor over the parents only: A_j = S_j, b = d − R·measurement.
// The measurement is folded in as a fixed offset; discrete anchoring is
// never needed at this layer.
func (c *GaussianConditional) Likelihood(measurement *mat.VecDense) (*JacobianFactor, error) {
	if measurement == nil || measurement.Len() != c.dim {
		return nil, fmt.Errorf("%w: measurement for %q has length %d, want %d",
			ErrDimensionMismatch, c.key, vecLen(measurement), c.dim)
	}

	b := mat.NewVecDense(c.dim, nil)
	b.MulVec(c.r, measurement)
	b.SubVec(c.d, b)

	blocks := make([]*mat.Dense, len(c.parents))
	for i, p := range c.parents {
		blocks[i] = c.s[p]
	}

	return NewJacobianFactor(c.Parents(), blocks, b)
}

// backSubstitute solves R·x = rhs for upper-triangular R.
func (c *GaussianConditional) backSubstitute(rhs *mat.VecDense) (*mat.VecDense, error) {
	for i := 0; i < c.dim; i++ {
		if c.r.At(i, i) == 0 {
			return nil, fmt.Errorf("%w: zero pivot at row %d of %q", ErrSingularSystem, i, c.key)
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(c.r, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	return &x, nil
}

// Equal reports structural equality within tol: same keys in the same order
// and element-wise matching blocks.
func (c *GaussianConditional) Equal(other *GaussianConditional, tol float64) bool {
	if other == nil || c.key != other.key || c.dim != other.dim {
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
	if !mat.EqualApprox(c.r, other.r, tol) || !mat.EqualApprox(c.d, other.d, tol) {
		return false
	}
	for _, p := range c.parents {
		if !mat.EqualApprox(c.s[p], other.s[p], tol) {
			return false
		}
	}

	return true
}

// String renders the conditional as p(key | parents).
func (c *GaussianConditional) String() string {
	if len(c.parents) == 0 {
		return fmt.Sprintf("p(%s)", c.key)
	}

	parents := make([]string, len(c.parents))
	for i, p := range c.parents {
		parents[i] = string(p)
	}

	return fmt.Sprintf("p(%s | %s)", c.key, strings.Join(parents, " "))
}

// identityOver returns scale·I as an n×n upper-triangular matrix.
func identityOver(n int, scale float64) *mat.TriDense {
	r := mat.NewTriDense(n, mat.Upper, nil)
	for i := 0; i < n; i++ {
		r.SetTri(i, i, scale)
	}

	return r
}

// vecLen tolerates nil vectors in error messages.
func vecLen(v *mat.VecDense) int {
	if v == nil {
		return 0
	}

	return v.Len()
}
