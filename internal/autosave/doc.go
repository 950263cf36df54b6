// Package autosave implements save_to_tmp: a best-effort snapshot written to
// <dir>/treenote.<pid>.save, with numeric-suffix conflict resolution
// (.save.0, .save.1, ...) bounded at a small limit.
package autosave
