package piece

import "github.com/wildp/treenote/internal/engine/arena"

// MaxHistory bounds a table's local undo history; once reached, the oldest
// half is discarded and positions renumbered.
const MaxHistory = 2000

// histEntry pairs a command with the cursor-facing line/pos it last acted
// at, used purely for compaction matching.
type histEntry struct {
	cmd  Cmd
	line int
	pos  int // character position after the edit
}

// Table is a per-node piece table: a sequence of lines, each a slice of
// arena entries, with its own local undo history.
type Table struct {
	arena *arena.Arena
	lines [][]arena.Entry
	hist  []histEntry
	pos   int
}

// New creates an empty, single-line table backed by a.
func New(a *arena.Arena) *Table {
	return &Table{arena: a, lines: [][]arena.Entry{{}}}
}

// NewFromText creates a one-line table by appending text as that line's
// sole content, with no history (used when parsing a document from disk).
func NewFromText(a *arena.Arena, text string) *Table {
	t := &Table{arena: a, lines: [][]arena.Entry{{}}}
	if entry, _ := a.Append(text); entry.DispLen > 0 {
		t.lines[0] = []arena.Entry{entry}
	}
	return t
}

// AppendLine appends a new, final line whose sole content is text, with no
// history (used when parsing a multi-line node from disk).
func (t *Table) AppendLine(text string) {
	if entry, _ := t.arena.Append(text); entry.DispLen > 0 {
		t.lines = append(t.lines, []arena.Entry{entry})
	} else {
		t.lines = append(t.lines, []arena.Entry{})
	}
}

// Clone deep-copies the table's content into a new table over the same
// arena, with fresh (empty) history. Content is re-appended rather than
// aliased, so the clone remains valid even if this table's node is later
// deleted and the deletion undone.
func (t *Table) Clone() *Table {
	lines := make([][]arena.Entry, len(t.lines))
	for i, line := range t.lines {
		text := t.arena.View(line)
		if entry, _ := t.arena.Append(text); entry.DispLen > 0 {
			lines[i] = []arena.Entry{entry}
		} else {
			lines[i] = []arena.Entry{}
		}
	}
	return &Table{arena: t.arena, lines: lines}
}

// Arena returns the backing content arena.
func (t *Table) Arena() *arena.Arena { return t.arena }

// Empty reports whether the table has exactly one, empty line.
func (t *Table) Empty() bool {
	return len(t.lines) == 1 && len(t.lines[0]) == 0
}

func (t *Table) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(t.lines) {
		return len(t.lines) - 1
	}
	return line
}

func (t *Table) clampPos(line, pos int) int {
	ll := t.LineLength(line)
	if pos < 0 {
		return 0
	}
	if pos > ll {
		return ll
	}
	return pos
}

// exec pushes cmd onto history, invokes it, and advances the undo position,
// truncating any redo tail and bounding history length.
func (t *Table) exec(cmd Cmd, line, pos int) {
	if t.pos < len(t.hist) {
		t.hist = t.hist[:t.pos]
	}
	cmd.Invoke(t)
	t.hist = append(t.hist, histEntry{cmd: cmd, line: line, pos: pos})
	t.pos++

	if len(t.hist) >= MaxHistory {
		half := len(t.hist) / 2
		t.hist = append([]histEntry{}, t.hist[half:]...)
		t.pos -= half
		if t.pos < 0 {
			t.pos = 0
		}
	}
}

// Undo reverses the command at position-1. Returns false if there is
// nothing to undo.
func (t *Table) Undo() bool {
	if t.pos == 0 {
		return false
	}
	t.pos--
	t.hist[t.pos].cmd.InvokeReverse(t)
	return true
}

// Redo forward-invokes the command at position. Returns false if there is
// nothing to redo.
func (t *Table) Redo() bool {
	if t.pos >= len(t.hist) {
		return false
	}
	t.hist[t.pos].cmd.Invoke(t)
	t.pos++
	return true
}

// LineCount returns the number of lines in the table.
func (t *Table) LineCount() int { return len(t.lines) }

// LineLength returns the character length of a line, summing its entries'
// display lengths.
func (t *Table) LineLength(line int) int {
	n := 0
	for _, e := range t.lines[line] {
		n += e.DispLen
	}
	return n
}

// ToStr returns the full UTF-8 text of a line.
func (t *Table) ToStr(line int) string {
	return t.arena.View(t.lines[line])
}

// ToSubstr returns the substring of a line covering [pos, pos+length)
// characters.
func (t *Table) ToSubstr(line, pos, length int) string {
	return arena.ViewRange(t.arena, t.lines[line], pos, length)
}

// GetCurrentCmdName maps the most recently executed command to a
// user-facing name, descending once into a Multi to classify by its first
// element.
func (t *Table) GetCurrentCmdName() string {
	if t.pos == 0 {
		return "none"
	}
	cmd := t.hist[t.pos-1].cmd
	return cmdName(cmd.Kind())
}

func cmdName(k Kind) string {
	switch k {
	case KindInsertion:
		return "insert_text"
	case KindDeletionBefore, KindDeletionAfter:
		return "delete_text"
	case KindLineBreak:
		return "line_break"
	case KindLineJoin:
		return "line_join"
	default:
		return "none"
	}
}

// lastEdit returns the most recently executed history entry, or false if
// there isn't one.
func (t *Table) lastEdit() (histEntry, bool) {
	if t.pos == 0 {
		return histEntry{}, false
	}
	return t.hist[t.pos-1], true
}
