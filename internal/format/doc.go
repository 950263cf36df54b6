// Package format implements load/save of the on-disk tree-drawing text
// format: a column-based state machine parser mirroring the original
// implementation's indent-column scanner, and a pre-order serializer that
// reuses tree.IndentInfoByIndex/MakeLineStringDefault to render the same
// box-drawing prefixes it parses.
//
// The parser operates on runes, not raw terminal columns, so unwinding a
// misread prefix never lands mid-character even when a column glyph (a
// no-break space, say) is multi-byte.
package format
