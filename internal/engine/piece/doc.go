// Package piece implements the per-node text store: a piece table over a
// shared content arena, with its own local undo history and command-level
// compaction so that typing a word doesn't cost a keystroke's worth of undo
// steps.
//
// A Table holds one or more lines; each line is an ordered slice of
// arena.Entry values whose concatenated byte ranges are that line's UTF-8
// content. All mutation goes through reversible low-level commands recorded
// in the table's own history, independent of the document-wide history that
// internal/engine/history manages.
package piece
