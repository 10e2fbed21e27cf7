// Package dtree implements the decision-tree algebra over discrete keys used
// throughout the hybrid inference library: a lazily-combinable representation
// of a function from full discrete assignments to values of any leaf type.
//
// A Tree[L] is either a leaf holding a value of type L, or a choice node that
// splits on one discrete key with one branch per categorical value. Along any
// root-to-leaf path keys strictly increase, which makes the representation
// canonical and lets two trees over different key sets be combined without
// materializing the full joint table.
//
// Operations:
//
//	FromTable(keys, values)  // build a canonical tree from a dense table
//	t.At(assignment)         // look up the leaf for a full assignment
//	t.Restrict(assignment)   // fix a subset of keys, dropping their choices
//	Apply(t, fn)             // leaf-wise transform to a new leaf type
//	Combine(a, b, op)        // binary combine, aligning the two key sets
//	t.Keys()                 // sorted keys appearing in the tree
//
// The float64 specialization Scalar adds the algebraic layer used for factor
// products and error accumulation: Mul, Add, MaxLeaf, Sum, and ArgMax with a
// deterministic ascending-lexicographic tie-break.
//
// Table layout convention: FromTable and core.DiscreteKeys.Assignments share
// one ordering — keys sorted ascending, first key most significant, last key
// varying fastest. A table index is therefore the odometer reading of its
// assignment.
//
// Complexity:
//
//   - At/Restrict: O(depth) = O(k) for k keys.
//   - Apply: O(nodes).
//   - Combine: O(product of branch counts along shared paths); never worse
//     than the joint table size, usually far smaller.
//   - ArgMax/Sum: O(number of full assignments) — these must enumerate.
//
// Errors (sentinel):
//
//	ErrMissingKey    – At reached a choice node whose key is unassigned
//	ErrBadAssignment – an assigned value index is outside a key's cardinality
//	ErrBadTable      – table length does not match the key set
//	ErrNilSubtree    – a nil branch or operand was supplied
//
// Cardinality clashes between combined trees surface core.ErrBadCardinality.
package dtree
