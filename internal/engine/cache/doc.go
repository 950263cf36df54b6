// Package cache implements the flattened display cache: a pre-order
// traversal of the node tree into a dense sequence of display rows, plus
// lexicographic reverse lookup from (tree-index, line number) back to a
// row.
//
// The cache stores tree-indices rather than node borrows, re-deriving the
// node on each access via tree.Node.At. This sidesteps the
// borrow-invalidated-by-mutation hazard the original implementation's
// reference_wrapper-based cache carries, at the cost of an extra tree walk
// per lookup - cheap relative to the rebuild this package's contract
// already requires after every structural change.
package cache
