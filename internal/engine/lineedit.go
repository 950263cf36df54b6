package engine

import (
	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/engine/history"
	"github.com/wildp/treenote/internal/engine/tree"
	"github.com/wildp/treenote/internal/engine/utf8x"
)

// Line-editing operations sequence one user action as: snapshot
// cursor-before, perform the edit against the current node's piece table,
// then (when the edit changed the line count) rebuild the cache and
// reposition the cursor before recording cursor-after.

// LineInsertText inserts text (assumed newline-free) at the cursor,
// advancing the cursor right by its character count. Compacts into the
// previous insertion when the active-node token is held.
func (f *Facade) LineInsertText(text string) int {
	n, e, ok := f.currentNode()
	if !ok || text == "" {
		return 0
	}
	before := f.cursorSnapshot()
	inc, created := n.Content.InsertStr(e.LineNo, f.cur.X, text, f.tokenHeld(e.Index))
	f.cur.X += inc
	f.cur.XIntended = f.cur.X
	if created {
		f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
	}
	f.setToken(e.Index)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return inc
}

// LineDeleteChar performs a forward delete (the "Delete" key). At
// end-of-line it joins the next line onto this one instead.
func (f *Facade) LineDeleteChar() int {
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	if n.Content.DeleteCharCurrent(e.LineNo, f.cur.X, f.tokenHeld(e.Index)) {
		f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
		f.setToken(e.Index)
		f.hist.SetCursorAfter(f.cursorSnapshot())
		return 0
	}
	if !n.Content.MakeLineJoin(e.LineNo) {
		return 1
	}
	f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
	f.releaseToken()
	f.rebuildCache()
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// LineBackspace deletes the character before the cursor. At start-of-line
// it joins this line onto the previous one instead, moving the cursor to
// the join point.
func (f *Facade) LineBackspace() int {
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	if dec, created := n.Content.DeleteCharBefore(e.LineNo, f.cur.X, f.tokenHeld(e.Index)); dec > 0 {
		f.cur.X -= dec
		f.cur.XIntended = f.cur.X
		if created {
			f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
		}
		f.setToken(e.Index)
		f.hist.SetCursorAfter(f.cursorSnapshot())
		return 0
	}
	if e.LineNo == 0 {
		return 1
	}
	joinLen := n.Content.LineLength(e.LineNo - 1)
	if !n.Content.MakeLineJoin(e.LineNo - 1) {
		return 1
	}
	f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
	f.releaseToken()
	f.rebuildCache()
	f.cur.GoToIndex(f.root, f.cache, e.Index, e.LineNo-1, joinLen)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// LineNewline splits the current line at the cursor, moving the cursor to
// column 0 of the new line below.
func (f *Facade) LineNewline() int {
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	if !n.Content.MakeLineBreak(e.LineNo, f.cur.X) {
		return 1
	}
	f.hist.Exec(&history.EditContents{Pos: e.Index}, before)
	f.releaseToken()
	f.rebuildCache()
	f.cur.GoToIndex(f.root, f.cache, e.Index, e.LineNo+1, 0)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// LineForwardDeleteWord repeatedly deletes the character ahead of the
// cursor until the word-boundary rule fires, falling through into a
// line-join at end-of-line.
func (f *Facade) LineForwardDeleteWord() int {
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := charAtRow(n, e, f.cur.X)
	for {
		if f.cur.X >= n.Content.LineLength(e.LineNo) {
			if f.LineDeleteChar() != 0 {
				return 0
			}
			n, e, ok = f.currentNode()
			if !ok {
				return 0
			}
			before = ""
			continue
		}
		after := charAtRow(n, e, f.cur.X)
		if utf8x.WordConstituent(before) && !utf8x.WordConstituent(after) {
			return 0
		}
		f.LineDeleteChar()
		before = after
	}
}

// LineBackwardDeleteWord repeatedly deletes the character behind the
// cursor until the word-boundary rule fires, falling through into a
// line-join at start-of-line.
func (f *Facade) LineBackwardDeleteWord() int {
	for {
		n, e, ok := f.currentNode()
		if !ok {
			return 1
		}
		if f.cur.X == 0 {
			if f.LineBackspace() != 0 {
				return 0
			}
			continue
		}
		cur := charAtRow(n, e, f.cur.X-1)
		prev := ""
		if f.cur.X-1 > 0 {
			prev = charAtRow(n, e, f.cur.X-2)
		}
		f.LineBackspace()
		if utf8x.WordConstituent(cur) && !utf8x.WordConstituent(prev) {
			return 0
		}
	}
}

func charAtRow(n *tree.Node, e cache.Entry, col int) string {
	if col < 0 || col >= n.Content.LineLength(e.LineNo) {
		return ""
	}
	return n.Content.ToSubstr(e.LineNo, col, 1)
}
