package piece

import (
	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/utf8x"
)

// Kind classifies the user-facing action a table command implements, used
// both for compaction matching and for the name surfaced on undo/redo.
type Kind int8

const (
	KindNone Kind = iota
	KindInsertion
	KindDeletionBefore // backspace
	KindDeletionAfter  // forward delete
	KindLineBreak
	KindLineJoin
)

// Cmd is a reversible low-level table command. Invoke applies it forward,
// InvokeReverse undoes it; both mutate the table in place.
type Cmd interface {
	Invoke(t *Table)
	InvokeReverse(t *Table)
	Kind() Kind
}

// SplitInsert splits entry Idx of Line at PosInEntry (a character offset
// within that entry) and inserts Inserted between the two halves.
type SplitInsert struct {
	Line, Idx    int
	PosInEntry   int
	Inserted     arena.Entry
	leftLen      int // cached disp length of the left half, set on first Invoke
	leftByteLen  int
	rightLen     int
	rightByteLen int
}

func (c *SplitInsert) Kind() Kind { return KindInsertion }

func (c *SplitInsert) Invoke(t *Table) {
	line := t.lines[c.Line]
	orig := line[c.Idx]
	leftBytes := charToByteOffset(t.arena, orig, c.PosInEntry)
	left := arena.Entry{Start: orig.Start, DispLen: c.PosInEntry, ByteLen: leftBytes}
	right := arena.Entry{
		Start:   orig.Start + arena.Offset(leftBytes),
		DispLen: orig.DispLen - c.PosInEntry,
		ByteLen: orig.ByteLen - leftBytes,
	}
	c.leftLen, c.leftByteLen = left.DispLen, left.ByteLen
	c.rightLen, c.rightByteLen = right.DispLen, right.ByteLen

	replacement := make([]arena.Entry, 0, 3)
	if left.DispLen > 0 {
		replacement = append(replacement, left)
	}
	replacement = append(replacement, c.Inserted)
	if right.DispLen > 0 {
		replacement = append(replacement, right)
	}
	t.lines[c.Line] = spliceLine(line, c.Idx, 1, replacement...)
}

func (c *SplitInsert) InvokeReverse(t *Table) {
	line := t.lines[c.Line]
	start := c.Idx
	count := 0
	if c.leftLen > 0 {
		count++
	}
	count++ // the inserted entry itself
	if c.rightLen > 0 {
		count++
	}
	var leftStart arena.Offset
	if c.leftLen > 0 {
		leftStart = line[start].Start
	} else if c.rightLen > 0 {
		leftStart = line[start+1].Start
	}
	merged := arena.Entry{
		Start:   leftStart,
		DispLen: c.leftLen + c.rightLen,
		ByteLen: c.leftByteLen + c.rightByteLen,
	}
	t.lines[c.Line] = spliceLine(line, start, count, merged)
}

// SplitDelete removes the character range [LPos, RPos) from the interior of
// entry Idx, splitting it into a left remainder and a right remainder.
// Original is the entry's value before the delete, captured at command
// creation time so the delete is reversible without re-reading the arena.
type SplitDelete struct {
	Line, Idx int
	LPos, RPos int
	Original  arena.Entry
}

func (c *SplitDelete) Kind() Kind { return KindDeletionBefore }

func (c *SplitDelete) Invoke(t *Table) {
	lStart := charToByteOffset(t.arena, c.Original, c.LPos)
	rStart := charToByteOffset(t.arena, c.Original, c.RPos)

	left := arena.Entry{Start: c.Original.Start, DispLen: c.LPos, ByteLen: lStart}
	right := arena.Entry{
		Start:   c.Original.Start + arena.Offset(rStart),
		DispLen: c.Original.DispLen - c.RPos,
		ByteLen: c.Original.ByteLen - rStart,
	}

	replacement := make([]arena.Entry, 0, 2)
	if left.DispLen > 0 {
		replacement = append(replacement, left)
	}
	if right.DispLen > 0 {
		replacement = append(replacement, right)
	}
	if len(replacement) == 0 {
		replacement = append(replacement, arena.Entry{Start: c.Original.Start, DispLen: 0, ByteLen: 0})
	}
	t.lines[c.Line] = spliceLine(t.lines[c.Line], c.Idx, 1, replacement...)
}

func (c *SplitDelete) InvokeReverse(t *Table) {
	line := t.lines[c.Line]
	n := 0
	if c.LPos > 0 {
		n++
	}
	if c.Original.DispLen-c.RPos > 0 {
		n++
	}
	if n == 0 {
		n = 1
	}
	t.lines[c.Line] = spliceLine(line, c.Idx, n, c.Original)
}

// GrowRHS extends entry Idx's display and byte length by DispAmt/ByteAmt,
// consuming bytes that were just appended contiguously after it in the
// arena. Also used, unmodified in shape, as the vehicle for command-level
// insertion compaction (see compact.go).
type GrowRHS struct {
	Line, Idx        int
	DispAmt, ByteAmt int
}

func (c *GrowRHS) Kind() Kind { return KindInsertion }

func (c *GrowRHS) Invoke(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.DispLen += c.DispAmt
	e.ByteLen += c.ByteAmt
}

func (c *GrowRHS) InvokeReverse(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.DispLen -= c.DispAmt
	e.ByteLen -= c.ByteAmt
}

// ShrinkRHS removes DispAmt/ByteAmt characters/bytes from the right (tail)
// end of entry Idx.
type ShrinkRHS struct {
	Line, Idx        int
	DispAmt, ByteAmt int
}

func (c *ShrinkRHS) Kind() Kind { return KindDeletionAfter }

func (c *ShrinkRHS) Invoke(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.DispLen -= c.DispAmt
	e.ByteLen -= c.ByteAmt
}

func (c *ShrinkRHS) InvokeReverse(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.DispLen += c.DispAmt
	e.ByteLen += c.ByteAmt
}

// ShrinkLHS advances entry Idx's start offset and removes DispAmt/ByteAmt
// characters/bytes from the left (front) end.
type ShrinkLHS struct {
	Line, Idx        int
	DispAmt, ByteAmt int
}

func (c *ShrinkLHS) Kind() Kind { return KindDeletionBefore }

func (c *ShrinkLHS) Invoke(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.Start += arena.Offset(c.ByteAmt)
	e.DispLen -= c.DispAmt
	e.ByteLen -= c.ByteAmt
}

func (c *ShrinkLHS) InvokeReverse(t *Table) {
	e := &t.lines[c.Line][c.Idx]
	e.Start -= arena.Offset(c.ByteAmt)
	e.DispLen += c.DispAmt
	e.ByteLen += c.ByteAmt
}

// InsertEntry inserts Inserted as a new entry at Idx, not touching any
// neighbor.
type InsertEntry struct {
	Line, Idx int
	Inserted  arena.Entry
}

func (c *InsertEntry) Kind() Kind { return KindInsertion }

func (c *InsertEntry) Invoke(t *Table) {
	t.lines[c.Line] = spliceLine(t.lines[c.Line], c.Idx, 0, c.Inserted)
}

func (c *InsertEntry) InvokeReverse(t *Table) {
	t.lines[c.Line] = spliceLine(t.lines[c.Line], c.Idx, 1)
}

// DeleteEntry removes entry Idx entirely. If the entries on either side of
// the removed slot now abut in the arena, they are merged into one;
// MergePos records the character offset (within the merged entry) where the
// join occurred, so undo can re-split cleanly. MergePos is -1 when no merge
// happened.
type DeleteEntry struct {
	Line, Idx int
	Deleted   arena.Entry
	MergePos  int
}

func (c *DeleteEntry) Kind() Kind { return KindDeletionAfter }

func (c *DeleteEntry) Invoke(t *Table) {
	line := t.lines[c.Line]
	t.lines[c.Line] = spliceLine(line, c.Idx, 1)
	c.MergePos = -1

	line = t.lines[c.Line]
	if c.Idx > 0 && c.Idx < len(line) {
		left, right := line[c.Idx-1], line[c.Idx]
		if left.Adjoins(right) {
			c.MergePos = left.DispLen
			merged := arena.Entry{Start: left.Start, DispLen: left.DispLen + right.DispLen, ByteLen: left.ByteLen + right.ByteLen}
			t.lines[c.Line] = spliceLine(line, c.Idx-1, 2, merged)
		}
	}
}

func (c *DeleteEntry) InvokeReverse(t *Table) {
	if c.MergePos < 0 {
		t.lines[c.Line] = spliceLine(t.lines[c.Line], c.Idx, 0, c.Deleted)
		return
	}
	merged := t.lines[c.Line][c.Idx-1]
	leftBytes := charToByteOffset(t.arena, merged, c.MergePos)
	left := arena.Entry{Start: merged.Start, DispLen: c.MergePos, ByteLen: leftBytes}
	right := arena.Entry{
		Start:   merged.Start + arena.Offset(leftBytes),
		DispLen: merged.DispLen - c.MergePos,
		ByteLen: merged.ByteLen - leftBytes,
	}
	t.lines[c.Line] = spliceLine(t.lines[c.Line], c.Idx-1, 1, left, c.Deleted, right)
}

// LineBreak splits LineBefore into two lines at PosBefore (a character
// offset), pushing everything from PosBefore onward into a new line
// immediately after.
type LineBreak struct {
	LineBefore, PosBefore int
}

func (c *LineBreak) Kind() Kind { return KindLineBreak }

func (c *LineBreak) Invoke(t *Table) {
	line := t.lines[c.LineBefore]
	idx, within := locateEntry(t.arena, line, c.PosBefore)

	var head, tail []arena.Entry
	head = append(head, line[:idx]...)
	if idx < len(line) {
		tail = append(tail, line[idx+1:]...)
	}

	if within > 0 {
		e := line[idx]
		bytesAt := charToByteOffset(t.arena, e, within)
		left := arena.Entry{Start: e.Start, DispLen: within, ByteLen: bytesAt}
		right := arena.Entry{Start: e.Start + arena.Offset(bytesAt), DispLen: e.DispLen - within, ByteLen: e.ByteLen - bytesAt}
		head = append(head, left)
		tail = append([]arena.Entry{right}, tail...)
	} else if idx < len(line) {
		tail = append([]arena.Entry{line[idx]}, tail...)
	}

	newLines := make([][]arena.Entry, 0, len(t.lines)+1)
	newLines = append(newLines, t.lines[:c.LineBefore]...)
	newLines = append(newLines, head, tail)
	newLines = append(newLines, t.lines[c.LineBefore+1:]...)
	t.lines = newLines
}

func (c *LineBreak) InvokeReverse(t *Table) {
	merged := append(append([]arena.Entry{}, t.lines[c.LineBefore]...), t.lines[c.LineBefore+1]...)
	newLines := make([][]arena.Entry, 0, len(t.lines)-1)
	newLines = append(newLines, t.lines[:c.LineBefore]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, t.lines[c.LineBefore+2:]...)
	t.lines = newLines
}

// LineJoin merges LineAfter+1 onto the end of LineAfter. PosAfter is the
// character length of LineAfter at join time, recorded so undo can re-split
// at the right offset.
type LineJoin struct {
	LineAfter, PosAfter int
}

func (c *LineJoin) Kind() Kind { return KindLineJoin }

func (c *LineJoin) Invoke(t *Table) {
	merged := append(append([]arena.Entry{}, t.lines[c.LineAfter]...), t.lines[c.LineAfter+1]...)
	newLines := make([][]arena.Entry, 0, len(t.lines)-1)
	newLines = append(newLines, t.lines[:c.LineAfter]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, t.lines[c.LineAfter+2:]...)
	t.lines = newLines
}

func (c *LineJoin) InvokeReverse(t *Table) {
	line := t.lines[c.LineAfter]
	idx, within := locateEntry(t.arena, line, c.PosAfter)

	var head, tail []arena.Entry
	head = append(head, line[:idx]...)
	if idx < len(line) {
		tail = append(tail, line[idx+1:]...)
	}

	if within > 0 {
		e := line[idx]
		bytesAt := charToByteOffset(t.arena, e, within)
		left := arena.Entry{Start: e.Start, DispLen: within, ByteLen: bytesAt}
		right := arena.Entry{Start: e.Start + arena.Offset(bytesAt), DispLen: e.DispLen - within, ByteLen: e.ByteLen - bytesAt}
		head = append(head, left)
		tail = append([]arena.Entry{right}, tail...)
	} else if idx < len(line) {
		tail = append([]arena.Entry{line[idx]}, tail...)
	}

	newLines := make([][]arena.Entry, 0, len(t.lines)+1)
	newLines = append(newLines, t.lines[:c.LineAfter]...)
	newLines = append(newLines, head, tail)
	newLines = append(newLines, t.lines[c.LineAfter+1:]...)
	t.lines = newLines
}

// Multi groups several low-level commands so they invoke/reverse atomically
// and in the correct order.
type Multi struct {
	Cmds []Cmd
}

func (c *Multi) Kind() Kind {
	if len(c.Cmds) == 0 {
		return KindNone
	}
	return c.Cmds[0].Kind()
}

func (c *Multi) Invoke(t *Table) {
	for _, sub := range c.Cmds {
		sub.Invoke(t)
	}
}

func (c *Multi) InvokeReverse(t *Table) {
	for i := len(c.Cmds) - 1; i >= 0; i-- {
		c.Cmds[i].InvokeReverse(t)
	}
}

// spliceLine replaces count entries starting at idx with replacement,
// returning the resulting line. It never aliases the input slice's backing
// array past the splice point, so earlier-held sub-slices stay valid.
func spliceLine(line []arena.Entry, idx, count int, replacement ...arena.Entry) []arena.Entry {
	out := make([]arena.Entry, 0, len(line)-count+len(replacement))
	out = append(out, line[:idx]...)
	out = append(out, replacement...)
	out = append(out, line[idx+count:]...)
	return out
}

// charToByteOffset returns the byte offset from e.Start corresponding to
// charPos characters into e.
func charToByteOffset(a *arena.Arena, e arena.Entry, charPos int) int {
	if charPos <= 0 {
		return 0
	}
	if e.ASCII() || charPos >= e.DispLen {
		if charPos >= e.DispLen {
			return e.ByteLen
		}
		return charPos
	}
	full := a.Slice(e.Start, e.ByteLen)
	rem := utf8x.DropFirstN(full, charPos)
	return e.ByteLen - len(rem)
}

// locateEntry finds which entry in line contains character position pos,
// returning its index and the character offset within that entry. A pos on
// the boundary between two entries resolves to the earlier one, with within
// equal to its DispLen, so the end of the line resolves to the last entry.
// Only an entry-less line, or a pos past the end, yields idx == len(line)
// and within == 0.
func locateEntry(a *arena.Arena, line []arena.Entry, pos int) (idx, within int) {
	remaining := pos
	for i, e := range line {
		if remaining <= e.DispLen {
			return i, remaining
		}
		remaining -= e.DispLen
	}
	return len(line), 0
}
