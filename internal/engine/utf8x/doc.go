// Package utf8x provides the byte-level UTF-8 primitives shared by the
// content arena and the piece table.
//
// The encoding is validated byte-by-byte using the canonical lead/continuation
// bit patterns rather than delegating to the standard library's rune decoder:
// the arena and piece table need to know, mid-stream, exactly how many raw
// bytes a character occupies so they can rewind and substitute U+FFFD for a
// truncated or malformed sequence without losing the bytes already written.
package utf8x
