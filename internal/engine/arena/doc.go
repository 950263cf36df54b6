// Package arena implements the append-only content store shared by every
// piece table in a document.
//
// Bytes are held in fixed-size 1024-byte blocks addressed by a strictly
// increasing absolute byte offset. Once written, bytes are never overwritten
// or relocated, which is what lets a piece-table entry hold a bare arena
// offset (rather than a borrowed view) and remain valid across later
// appends.
//
// Unlike the C++ original this package is modeled on, reads here return
// copied Go strings rather than aliasing views into the block storage. Go
// strings are immutable value types, so the aliasing hazard the original's
// string_view-based API guards against (a view outliving the buffer it
// points into) simply does not exist in this port; copying on read is the
// idiomatic trade and costs nothing the original's "views valid until next
// append" contract wasn't already paying for internally.
package arena
