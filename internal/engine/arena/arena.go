package arena

import (
	"strings"

	"github.com/wildp/treenote/internal/engine/utf8x"
)

// BlockSize is the fixed size, in bytes, of every arena block.
const BlockSize = 1024

// Offset is an absolute byte offset into an Arena.
type Offset int64

// Entry is a piece-table entry: a contiguous run of characters addressed by
// an arena offset. DispLen is the character count, ByteLen the byte count;
// DispLen <= ByteLen always, with equality iff the run is pure ASCII.
type Entry struct {
	Start   Offset
	DispLen int
	ByteLen int
}

// ASCII reports whether the entry's range contains only single-byte
// characters. This is the fast-path hint used throughout the piece table.
func (e Entry) ASCII() bool {
	return e.DispLen == e.ByteLen
}

// End returns the offset one past the entry's last byte.
func (e Entry) End() Offset {
	return e.Start + Offset(e.ByteLen)
}

// Adjoins reports whether e's byte range ends exactly where other's begins,
// i.e. the two entries are candidates for merging.
func (e Entry) Adjoins(other Entry) bool {
	return e.End() == other.Start
}

type block struct {
	data [BlockSize]byte
	used int
}

// Arena is an append-only, block-chunked byte store. The zero value is not
// usable; construct with New.
type Arena struct {
	blocks []*block
	victim *block // a single retired block kept around to avoid churn
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{}
}

func (a *Arena) newBlock() *block {
	if a.victim != nil {
		b := a.victim
		a.victim = nil
		b.used = 0
		return b
	}
	return &block{}
}

func (a *Arena) tail() *block {
	if len(a.blocks) == 0 || a.blocks[len(a.blocks)-1].used == BlockSize {
		a.blocks = append(a.blocks, a.newBlock())
	}
	return a.blocks[len(a.blocks)-1]
}

// Len returns the total number of bytes appended to the arena so far.
func (a *Arena) Len() Offset {
	if len(a.blocks) == 0 {
		return 0
	}
	full := len(a.blocks) - 1
	return Offset(full*BlockSize + a.blocks[len(a.blocks)-1].used)
}

// appendByte writes a single byte at the arena's current append position and
// returns its absolute offset.
func (a *Arena) appendByte(b byte) Offset {
	off := a.Len()
	blk := a.tail()
	blk.data[blk.used] = b
	blk.used++
	return off
}

// Append consumes bytes from data until a newline, a NUL, or the end of data,
// validating UTF-8 per character and substituting U+FFFD for any malformed or
// truncated sequence. It returns the recorded entry and the number of bytes
// of data consumed, including a trailing delimiter if one was found (the
// delimiter itself is never written to the arena).
//
// The caller is expected to begin each new display line with its own call to
// Append; embedded delimiters in a single call simply end that call early so
// the caller can split on them.
func (a *Arena) Append(data string) (Entry, int) {
	start := a.Len()
	entry := Entry{Start: start}

	src := utf8x.NewSliceSource([]byte(data))
	for {
		posBefore := src.Pos()
		chars, ok := utf8x.NextChar(src)
		if !ok {
			break
		}
		if len(chars) == 1 && (chars[0] == '\n' || chars[0] == 0) {
			// Delimiter: it is not stored in the entry, but the consumed
			// count returned below includes its byte.
			return entry, posBefore + 1
		}
		for _, b := range chars {
			a.appendByte(b)
		}
		entry.DispLen++
		entry.ByteLen += len(chars)
	}

	return entry, src.Pos()
}

// ByteAt returns the byte stored at the given absolute offset.
func (a *Arena) ByteAt(offset Offset) (byte, bool) {
	if offset < 0 || offset >= a.Len() {
		return 0, false
	}
	idx := int(offset) / BlockSize
	within := int(offset) % BlockSize
	return a.blocks[idx].data[within], true
}

// Slice returns the byte range [start, start+byteLen) as a string, walking
// across block boundaries transparently.
func (a *Arena) Slice(start Offset, byteLen int) string {
	if byteLen <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(byteLen)

	idx := int(start) / BlockSize
	within := int(start) % BlockSize
	remaining := byteLen

	for remaining > 0 && idx < len(a.blocks) {
		blk := a.blocks[idx]
		avail := blk.used - within
		if avail <= 0 {
			idx++
			within = 0
			continue
		}
		n := remaining
		if n > avail {
			n = avail
		}
		sb.Write(blk.data[within : within+n])
		remaining -= n
		within += n
		if within >= BlockSize {
			idx++
			within = 0
		}
	}
	return sb.String()
}

// View returns the concatenated text of every entry in line, in order.
func (a *Arena) View(line []Entry) string {
	var sb strings.Builder
	for _, e := range line {
		sb.WriteString(a.Slice(e.Start, e.ByteLen))
	}
	return sb.String()
}

// ViewRange returns the text covering [charPos, charPos+charLen) characters
// across the entries of line, honoring each entry's ASCII fast path and
// falling back to character-by-character walking otherwise.
func ViewRange(a *Arena, line []Entry, charPos, charLen int) string {
	if charLen <= 0 {
		return ""
	}

	var sb strings.Builder
	pos := 0
	remaining := charLen

	for _, e := range line {
		if remaining <= 0 {
			break
		}
		if pos+e.DispLen <= charPos {
			pos += e.DispLen
			continue
		}

		skip := 0
		if charPos > pos {
			skip = charPos - pos
		}
		take := e.DispLen - skip
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			pos += e.DispLen
			continue
		}

		text := a.Slice(e.Start, e.ByteLen)
		if e.ASCII() {
			sb.WriteString(text[skip : skip+take])
		} else {
			text = utf8x.DropFirstN(text, skip)
			for i := 0; i < take; i++ {
				src := utf8x.NewSliceSource([]byte(text))
				chars, ok := utf8x.NextChar(src)
				if !ok {
					break
				}
				sb.Write(chars)
				text = text[len(chars):]
			}
		}

		pos += e.DispLen
		remaining -= take
	}

	return sb.String()
}
