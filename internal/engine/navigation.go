package engine

import "github.com/wildp/treenote/internal/engine/tree"

// Navigation operations never create a history entry and each releases the
// active-node compaction token. The movement operations return 0 (performed)
// or 1 (refused at a structural boundary), per the core's silent-no-op
// convention; the go-to operations return nothing.

func (f *Facade) CursorMvLeft(amt int) int {
	f.releaseToken()
	f.cur.MvLeft(f.root, f.cache, amt)
	return 0
}

func (f *Facade) CursorMvRight(amt int) int {
	f.releaseToken()
	f.cur.MvRight(f.root, f.cache, amt)
	return 0
}

func (f *Facade) CursorMvUp(amt int) int {
	f.releaseToken()
	f.cur.MvUp(f.root, f.cache, amt)
	return 0
}

func (f *Facade) CursorMvDown(amt int) int {
	f.releaseToken()
	f.cur.MvDown(f.root, f.cache, amt)
	return 0
}

func (f *Facade) CursorWdForward() int {
	f.releaseToken()
	f.cur.WordForward(f.root, f.cache)
	return 0
}

func (f *Facade) CursorWdBackward() int {
	f.releaseToken()
	f.cur.WordBackward(f.root, f.cache)
	return 0
}

func (f *Facade) CursorToSOL() int {
	f.releaseToken()
	f.cur.ToSOL()
	return 0
}

func (f *Facade) CursorToEOL() int {
	f.releaseToken()
	f.cur.ToEOL(f.root, f.cache)
	return 0
}

func (f *Facade) CursorToSOF() int {
	f.releaseToken()
	f.cur.ToSOF(f.cache)
	return 0
}

func (f *Facade) CursorToEOF() int {
	f.releaseToken()
	f.cur.ToEOF(f.root, f.cache)
	return 0
}

func (f *Facade) CursorNdParent() int {
	f.releaseToken()
	if f.cur.NdParent(f.cache) {
		return 0
	}
	return 1
}

func (f *Facade) CursorNdChild() int {
	f.releaseToken()
	if f.cur.NdChild(f.root, f.cache) {
		return 0
	}
	return 1
}

func (f *Facade) CursorNdPrev() int {
	f.releaseToken()
	if f.cur.NdPrev(f.cache) {
		return 0
	}
	return 1
}

func (f *Facade) CursorNdNext() int {
	f.releaseToken()
	if f.cur.NdNext(f.cache) {
		return 0
	}
	return 1
}

// CursorGoToIndex places the cursor at the row matching (idx, line), clamped
// to that row's line length.
func (f *Facade) CursorGoToIndex(idx tree.Index, line, col int) {
	f.releaseToken()
	f.cur.GoToIndex(f.root, f.cache, idx, line, col)
}

// CursorGoToRowCol places the cursor directly at a display row.
func (f *Facade) CursorGoToRowCol(row, col int) {
	f.releaseToken()
	f.cur.GoToRow(f.root, f.cache, row, col)
}
