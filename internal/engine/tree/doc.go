// Package tree implements the node tree: ownership of child nodes and
// per-node content, plus the topology-mutation primitives (reorder, insert,
// detach) that the document command stack composes into reversible
// document-level commands.
//
// A node is addressed by a tree-index: a slice of child positions read from
// the root. The empty index addresses the root itself, which is invisible
// in the rendered document and exists only to own the top-level nodes.
package tree
