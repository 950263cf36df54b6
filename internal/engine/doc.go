// Package engine composes the arena, piece-table, tree, history, cache, and
// cursor packages into Facade, the single type a host program drives: one
// document lifecycle, one cursor, one undo timeline.
//
// Facade owns the "active node" compaction token directly (see
// internal/engine/piece and internal/engine/history's command-compaction
// contracts): it records which node's content was last edited and releases
// that token on any navigation, undo, redo, or structural change, so a
// module-scoped global is never needed to decide whether two consecutive
// edits may fold into one undo step.
//
// Facade is not safe for concurrent use: it models a single mutator and a
// single reader sharing one actor, matching the host event-loop model this
// core is built for.
package engine
