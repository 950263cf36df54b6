package history

import "github.com/wildp/treenote/internal/engine/tree"

// MaxHistory bounds the document-level history; once reached, the oldest
// half is discarded and position/save-position renumbered.
const MaxHistory = 5000

// CursorSnapshot is the subset of cursor state the history stack persists
// alongside each command, letting undo/redo restore where the user was.
type CursorSnapshot struct {
	Y, X          int
	DepthIntended int
	IndexIntended tree.Index
	MoveNodeDepth int
}

type stackEntry struct {
	cmd      Cmd
	before   CursorSnapshot
	after    CursorSnapshot
	hasAfter bool
}

// Stack is the document-wide command stack: one array of entries plus a
// position cursor into it. Entries at indices below Position() are
// considered applied; those at or above are undone.
type Stack struct {
	root    *tree.Node
	entries []stackEntry
	pos     int
	savePos int
}

// NewStack returns an empty stack mutating root.
func NewStack(root *tree.Node) *Stack {
	return &Stack{root: root}
}

// Exec truncates any redo tail, then records cmd with the given
// cursor-before snapshot. For every command except EditContents, cmd is
// invoked forward here; EditContents is skipped because the underlying
// piece-table edit has already executed by the time the facade calls Exec.
func (s *Stack) Exec(cmd Cmd, before CursorSnapshot) {
	if s.pos < len(s.entries) {
		s.entries = s.entries[:s.pos]
	}
	if _, isEdit := cmd.(*EditContents); !isEdit {
		cmd.Invoke(s.root)
	}
	s.entries = append(s.entries, stackEntry{cmd: cmd, before: before})
	s.pos++
	s.truncateIfNeeded()
}

// SetCursorAfter records the cursor position following the most recently
// executed entry, called once the facade has rebuilt the cache and
// clamped/moved the cursor.
func (s *Stack) SetCursorAfter(after CursorSnapshot) {
	if s.pos == 0 {
		return
	}
	s.entries[s.pos-1].after = after
	s.entries[s.pos-1].hasAfter = true
}

// AppendMulti applies cmd forward and folds it into the current top entry,
// promoting that entry to a Multi if it wasn't already one. Used to batch
// the 2-3 sub-steps of a compound structural operation (promote with
// descendants, indent, etc.) into a single undo step.
func (s *Stack) AppendMulti(cmd Cmd, after CursorSnapshot) {
	cmd.Invoke(s.root)

	if s.pos == 0 {
		s.entries = append(s.entries, stackEntry{cmd: cmd})
		s.pos++
	} else {
		top := &s.entries[s.pos-1]
		if m, ok := top.cmd.(*Multi); ok {
			m.Cmds = append(m.Cmds, cmd)
		} else {
			top.cmd = &Multi{Cmds: []Cmd{top.cmd, cmd}}
		}
	}
	s.entries[s.pos-1].after = after
	s.entries[s.pos-1].hasAfter = true
	s.truncateIfNeeded()
}

func (s *Stack) truncateIfNeeded() {
	if len(s.entries) < MaxHistory {
		return
	}
	half := len(s.entries) / 2
	s.entries = append([]stackEntry{}, s.entries[half:]...)
	s.pos -= half
	if s.pos < 0 {
		s.pos = 0
	}
	s.savePos -= half
	if s.savePos < 0 {
		s.savePos = 0
	}
}

// Undo reverses the entry immediately before the current position,
// returning the cursor snapshot recorded just before it ran and its
// display name. ok is false if there is nothing to undo.
func (s *Stack) Undo() (before CursorSnapshot, name string, ok bool) {
	if s.pos == 0 {
		return CursorSnapshot{}, "none", false
	}
	s.pos--
	e := s.entries[s.pos]
	e.cmd.InvokeReverse(s.root)
	return e.before, s.nameOf(e.cmd), true
}

// Redo forward-invokes the entry at the current position, returning the
// cursor snapshot recorded after it last ran (if any) and its display
// name. ok is false if there is nothing to redo.
func (s *Stack) Redo() (after CursorSnapshot, name string, ok bool) {
	if s.pos >= len(s.entries) {
		return CursorSnapshot{}, "none", false
	}
	e := s.entries[s.pos]
	e.cmd.Invoke(s.root)
	s.pos++
	if e.hasAfter {
		return e.after, s.nameOf(e.cmd), true
	}
	return CursorSnapshot{}, s.nameOf(e.cmd), true
}

// GetCurrentCmdName returns the display name of the most recently executed
// entry, descending into Multi (first sub-command) and EditContents (the
// referenced node's own piece-table command name).
func (s *Stack) GetCurrentCmdName() string {
	if s.pos == 0 {
		return "none"
	}
	return s.nameOf(s.entries[s.pos-1].cmd)
}

func (s *Stack) nameOf(cmd Cmd) string {
	switch c := cmd.(type) {
	case *Multi:
		if len(c.Cmds) == 0 {
			return "none"
		}
		return s.nameOf(c.Cmds[0])
	case *EditContents:
		if n, ok := s.root.At(c.Pos); ok {
			return n.Content.GetCurrentCmdName()
		}
		return "none"
	default:
		return cmd.Kind().String()
	}
}

// Position returns the index of the next command that would be redone.
func (s *Stack) Position() int { return s.pos }

// Len returns the total number of recorded entries (applied and undone).
func (s *Stack) Len() int { return len(s.entries) }

// Modified reports whether the document differs from its last save point.
func (s *Stack) Modified() bool { return s.pos != s.savePos }

// MarkSaved sets the save point to the current position.
func (s *Stack) MarkSaved() { s.savePos = s.pos }
