package core

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors returned by the core value types.
var (
	// ErrKeyNotFound indicates a lookup of a variable that is not present.
	ErrKeyNotFound = errors.New("core: key not found")

	// ErrDuplicateKey indicates a double insertion or a repeated key in a key set.
	ErrDuplicateKey = errors.New("core: duplicate key")

	// ErrBadCardinality indicates a cardinality below 1, or two declarations
	// of the same discrete key that disagree on cardinality.
	ErrBadCardinality = errors.New("core: cardinality must be at least 1 and consistent")

	// ErrNilVector indicates an attempt to insert a nil vector into VectorValues.
	ErrNilVector = errors.New("core: vector must be non-nil")
)

// Key identifies a single random variable, discrete or continuous.
// Keys compare lexically; all deterministic orderings in the library are
// ascending-lexicographic over Key.
type Key string

// Sym builds a Key from a one-letter prefix and an index: Sym('x', 0) == "x0".
// It is the conventional shorthand for naming variables in tests and examples.
func Sym(prefix rune, index int) Key {
	return Key(fmt.Sprintf("%c%d", prefix, index))
}

// DiscreteKey pairs a discrete variable identifier with its cardinality
// (the number of categorical values the variable can take).
type DiscreteKey struct {
	ID          Key
	Cardinality int
}

// DiscreteKeys is an ordered set of DiscreteKey. The order of a literal is
// preserved; use Sorted for the canonical ascending order.
type DiscreteKeys []DiscreteKey

// Validate checks that every cardinality is at least 1 and that no key
// appears twice. Returns ErrBadCardinality or ErrDuplicateKey.
func (dk DiscreteKeys) Validate() error {
	seen := make(map[Key]struct{}, len(dk))
	for _, k := range dk {
		if k.Cardinality < 1 {
			return fmt.Errorf("%w: key %q has cardinality %d", ErrBadCardinality, k.ID, k.Cardinality)
		}
		if _, ok := seen[k.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, k.ID)
		}
		seen[k.ID] = struct{}{}
	}

	return nil
}

// Sorted returns a copy of dk in ascending order of ID. The receiver is
// never mutated.
func (dk DiscreteKeys) Sorted() DiscreteKeys {
	out := make(DiscreteKeys, len(dk))
	copy(out, dk)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// IDs returns the key identifiers in the receiver's order.
func (dk DiscreteKeys) IDs() []Key {
	out := make([]Key, len(dk))
	for i, k := range dk {
		out[i] = k.ID
	}

	return out
}

// Contains reports whether id appears in the set.
func (dk DiscreteKeys) Contains(id Key) bool {
	for _, k := range dk {
		if k.ID == id {
			return true
		}
	}

	return false
}

// Union merges two key sets into a new sorted set. Returns ErrBadCardinality
// if the same key is declared with two different cardinalities.
func (dk DiscreteKeys) Union(other DiscreteKeys) (DiscreteKeys, error) {
	card := make(map[Key]int, len(dk)+len(other))
	for _, set := range []DiscreteKeys{dk, other} {
		for _, k := range set {
			if c, ok := card[k.ID]; ok && c != k.Cardinality {
				return nil, fmt.Errorf("%w: key %q declared with cardinality %d and %d",
					ErrBadCardinality, k.ID, c, k.Cardinality)
			}
			card[k.ID] = k.Cardinality
		}
	}

	out := make(DiscreteKeys, 0, len(card))
	for id, c := range card {
		out = append(out, DiscreteKey{ID: id, Cardinality: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// Minus returns the keys of dk whose IDs do not appear in other,
// preserving the receiver's order.
func (dk DiscreteKeys) Minus(other DiscreteKeys) DiscreteKeys {
	out := make(DiscreteKeys, 0, len(dk))
	for _, k := range dk {
		if !other.Contains(k.ID) {
			out = append(out, k)
		}
	}

	return out
}

// NumAssignments returns the number of distinct full assignments of the set,
// i.e. the product of all cardinalities. An empty set has exactly one
// (empty) assignment.
func (dk DiscreteKeys) NumAssignments() int {
	n := 1
	for _, k := range dk {
		n *= k.Cardinality
	}

	return n
}

// Assignments enumerates every full assignment of the set in the library's
// fixed lexicographic order: keys are sorted ascending, the first (smallest)
// key is the most significant position, and the last key varies fastest.
// An empty set yields a single empty assignment.
func (dk DiscreteKeys) Assignments() []DiscreteValues {
	sorted := dk.Sorted()
	total := sorted.NumAssignments()

	out := make([]DiscreteValues, 0, total)
	counters := make([]int, len(sorted))
	for i := 0; i < total; i++ {
		dv := make(DiscreteValues, len(sorted))
		for j, k := range sorted {
			dv[k.ID] = counters[j]
		}
		out = append(out, dv)

		// Advance the odometer: last key is the fastest-varying digit.
		for j := len(sorted) - 1; j >= 0; j-- {
			counters[j]++
			if counters[j] < sorted[j].Cardinality {
				break
			}
			counters[j] = 0
		}
	}

	return out
}
