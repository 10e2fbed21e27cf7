package hybrid

import (
	"fmt"

	"github.com/jrpowers/gtsam/core"
	"github.com/jrpowers/gtsam/discrete"
	"github.com/jrpowers/gtsam/linear"
)

// kind tags the three conditional variants.
type kind uint8

const (
	kindDiscrete kind = iota
	kindGaussian
	kindMixture
)

// Conditional is a hybrid Bayes net node: a tagged union holding exactly one
// of a discrete table conditional, a pure Gaussian conditional, or a
// Gaussian mixture. Algorithms dispatch on the tag with exhaustive switches
// so that handling of all three variants is checkable at a glance.
//
// Conditionals are immutable and shareable between nets.
type Conditional struct {
	kind     kind
	discrete *discrete.Conditional
	gaussian *linear.GaussianConditional
	mixture  *GaussianMixture
}

// NewDiscrete wraps a discrete conditional as a net node.
func NewDiscrete(c *discrete.Conditional) (*Conditional, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: discrete", ErrNilConditional)
	}

	return &Conditional{kind: kindDiscrete, discrete: c}, nil
}

// NewGaussian wraps a pure Gaussian conditional as a net node.
func NewGaussian(c *linear.GaussianConditional) (*Conditional, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: gaussian", ErrNilConditional)
	}

	return &Conditional{kind: kindGaussian, gaussian: c}, nil
}

// NewMixture wraps a Gaussian mixture as a net node.
func NewMixture(m *GaussianMixture) (*Conditional, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: mixture", ErrNilConditional)
	}

	return &Conditional{kind: kindMixture, mixture: m}, nil
}

// IsDiscrete reports whether the node is a discrete table conditional.
func (c *Conditional) IsDiscrete() bool { return c.kind == kindDiscrete }

// IsGaussian reports whether the node is a pure Gaussian conditional.
func (c *Conditional) IsGaussian() bool { return c.kind == kindGaussian }

// IsMixture reports whether the node is a Gaussian mixture.
func (c *Conditional) IsMixture() bool { return c.kind == kindMixture }

// AsDiscrete returns the inner discrete conditional, or nil for other kinds.
func (c *Conditional) AsDiscrete() *discrete.Conditional { return c.discrete }

// AsGaussian returns the inner Gaussian conditional, or nil for other kinds.
func (c *Conditional) AsGaussian() *linear.GaussianConditional { return c.gaussian }

// AsMixture returns the inner mixture, or nil for other kinds.
func (c *Conditional) AsMixture() *GaussianMixture { return c.mixture }

// DiscreteKeys returns the discrete keys the node involves.
func (c *Conditional) DiscreteKeys() core.DiscreteKeys {
	switch c.kind {
	case kindDiscrete:
		return c.discrete.Keys()
	case kindMixture:
		return c.mixture.DiscreteKeys()
	default:
		return nil
	}
}

// ContinuousKeys returns the continuous keys the node involves, frontal
// first.
func (c *Conditional) ContinuousKeys() []core.Key {
	switch c.kind {
	case kindGaussian:
		return append([]core.Key{c.gaussian.Key()}, c.gaussian.Parents()...)
	case kindMixture:
		return append([]core.Key{c.mixture.Key()}, c.mixture.Parents()...)
	default:
		return nil
	}
}

// Equal reports same-variant structural equality within tol.
func (c *Conditional) Equal(other *Conditional, tol float64) bool {
	if other == nil || c.kind != other.kind {
		return false
	}
	switch c.kind {
	case kindDiscrete:
		return c.discrete.Equal(other.discrete, tol)
	case kindGaussian:
		return c.gaussian.Equal(other.gaussian, tol)
	default:
		return c.mixture.Equal(other.mixture, tol)
	}
}

// String renders the node with its variant tag.
func (c *Conditional) String() string {
	switch c.kind {
	case kindDiscrete:
		return fmt.Sprintf("Discrete %s", c.discrete)
	case kindGaussian:
		return fmt.Sprintf("Gaussian %s", c.gaussian)
	default:
		return fmt.Sprintf("Mixture %s", c.mixture)
	}
}
