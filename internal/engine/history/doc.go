// Package history implements the document-wide command stack: a single
// linear undo/redo timeline over both tree-structural commands and
// per-node text edits, with multi-command grouping and save-point
// tracking.
//
// Unlike a dual undo/redo-stack design, the stack here is one array plus a
// position cursor into it: commands at indices below position are applied,
// those at or above are undone. This is a deliberate simplification of the
// editor this package's author previously shipped, matching the single
// linear timeline this document model calls for.
package history
