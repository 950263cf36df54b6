package piece

import "github.com/wildp/treenote/internal/engine/arena"

// InsertStr inserts text (assumed newline-free; multi-character strings
// insert atomically) at character position pos of line. tokenHeld should be
// true when the caller (the editor facade) considers this table the
// current compaction target, i.e. the last edit anywhere in the document
// was this same table at this same position.
//
// Line and pos are clamped: an out-of-range line becomes the last line, an
// out-of-range pos becomes end-of-line. Returns the number of characters
// the cursor should advance by, and whether a new local history entry was
// created (false when folded into the previous one via compaction).
func (t *Table) InsertStr(line, pos int, text string, tokenHeld bool) (cursorInc int, created bool) {
	line = t.clampLine(line)
	pos = t.clampPos(line, pos)

	entry, _ := t.arena.Append(text)
	if entry.DispLen == 0 {
		return 0, false
	}

	if tokenHeld {
		if he, ok := t.lastEdit(); ok && he.line == line && he.pos == pos && he.cmd.Kind() == KindInsertion {
			if t.compactInsertion(entryGrowth{entry.DispLen, entry.ByteLen}, line, pos+entry.DispLen) {
				return entry.DispLen, false
			}
		}
	}

	lineEntries := t.lines[line]
	idx, within := locateEntry(t.arena, lineEntries, pos)

	switch {
	case pos == 0:
		t.exec(&InsertEntry{Line: line, Idx: 0, Inserted: entry}, line, pos+entry.DispLen)
	case within > 0:
		t.exec(&SplitInsert{Line: line, Idx: idx, PosInEntry: within, Inserted: entry}, line, pos+entry.DispLen)
	default:
		if idx > 0 && lineEntries[idx-1].Adjoins(entry) {
			t.exec(&GrowRHS{Line: line, Idx: idx - 1, DispAmt: entry.DispLen, ByteAmt: entry.ByteLen}, line, pos+entry.DispLen)
		} else {
			t.exec(&InsertEntry{Line: line, Idx: idx, Inserted: entry}, line, pos+entry.DispLen)
		}
	}
	return entry.DispLen, true
}

// buildDeleteCmd constructs the low-level command that deletes the single
// character starting at character position delPos of line, chosen by
// whether that character is the sole occupant of its entry, sits at an
// entry boundary, or is interior.
func (t *Table) buildDeleteCmd(line, delPos int) Cmd {
	entries := t.lines[line]
	idx, within := locateEntry(t.arena, entries, delPos)
	for within == entries[idx].DispLen && idx+1 < len(entries) {
		idx, within = idx+1, 0
	}
	e := entries[idx]

	switch {
	case e.DispLen == 1:
		return &DeleteEntry{Line: line, Idx: idx, Deleted: e}
	case within == 0:
		firstLen := charToByteOffset(t.arena, e, 1)
		return &ShrinkLHS{Line: line, Idx: idx, DispAmt: 1, ByteAmt: firstLen}
	case within == e.DispLen-1:
		lastStart := charToByteOffset(t.arena, e, within)
		return &ShrinkRHS{Line: line, Idx: idx, DispAmt: 1, ByteAmt: e.ByteLen - lastStart}
	default:
		return &SplitDelete{Line: line, Idx: idx, LPos: within, RPos: within + 1, Original: e}
	}
}

// execDelete runs the single-character deletion at delPos, folding it into
// the previous history entry (as a Multi) when tokenHeld and the previous
// edit was the same kind ending exactly at cursorBefore.
func (t *Table) execDelete(line, delPos, cursorBefore, cursorAfter int, kind Kind, tokenHeld bool) bool {
	cmd := t.buildDeleteCmd(line, delPos)

	if tokenHeld {
		if he, ok := t.lastEdit(); ok && he.line == line && he.pos == cursorBefore && he.cmd.Kind() == kind {
			cmd.Invoke(t)
			if m, isMulti := he.cmd.(*Multi); isMulti {
				m.Cmds = append(m.Cmds, cmd)
			} else {
				t.hist[t.pos-1].cmd = &Multi{Cmds: []Cmd{he.cmd, cmd}}
			}
			t.hist[t.pos-1].pos = cursorAfter
			return false
		}
	}

	t.exec(cmd, line, cursorAfter)
	return true
}

// DeleteCharCurrent performs a forward delete (the "Delete" key) at
// character position pos of line. Returns false (a no-op, do-nothing) when
// pos is already at the end of the line; the facade is responsible for
// issuing MakeLineJoin in that situation.
func (t *Table) DeleteCharCurrent(line, pos int, tokenHeld bool) bool {
	line = t.clampLine(line)
	if pos < 0 {
		pos = 0
	}
	if pos >= t.LineLength(line) {
		return false
	}
	t.execDelete(line, pos, pos, pos, KindDeletionAfter, tokenHeld)
	return true
}

// DeleteCharBefore performs a backspace at character position pos of line,
// returning the amount the cursor should move left (always 1) and whether
// a new history entry was created. Returns (0, false) when pos is already
// at the start of the line; the facade handles line-join there.
func (t *Table) DeleteCharBefore(line, pos int, tokenHeld bool) (dec int, created bool) {
	line = t.clampLine(line)
	if pos <= 0 {
		return 0, false
	}
	created = t.execDelete(line, pos-1, pos, pos-1, KindDeletionBefore, tokenHeld)
	return 1, created
}

// MakeLineBreak splits line at character position pos into two lines.
func (t *Table) MakeLineBreak(line, pos int) bool {
	line = t.clampLine(line)
	pos = t.clampPos(line, pos)
	t.exec(&LineBreak{LineBefore: line, PosBefore: pos}, line+1, 0)
	return true
}

// MakeLineJoin merges line+1 onto the end of line. Returns false if line is
// already the last line.
func (t *Table) MakeLineJoin(line int) bool {
	line = t.clampLine(line)
	if line >= len(t.lines)-1 {
		return false
	}
	posAfter := t.LineLength(line)
	t.exec(&LineJoin{LineAfter: line, PosAfter: posAfter}, line, posAfter)
	return true
}

// entryAt returns a copy of the entry at (line, idx), used by callers that
// need to inspect content without mutating the table (e.g. cloning for the
// clipboard).
func (t *Table) entryAt(line, idx int) arena.Entry {
	return t.lines[line][idx]
}
