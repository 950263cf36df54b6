package engine

import (
	"github.com/rivo/uniseg"

	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/engine/tree"
)

// GetLCRange returns up to count consecutive display entries starting at
// row, for the host to render.
func (f *Facade) GetLCRange(row, count int) []cache.Entry {
	return f.cache.Range(row, count)
}

// GetEntryPrefix renders the box-drawing prefix for the display row at e.
func (f *Facade) GetEntryPrefix(e cache.Entry) string {
	ii := tree.IndentInfoByIndex(f.root, e.Index, e.LineNo > 0)
	return tree.MakeLineStringDefault(ii)
}

// GetEntryPrefixLength returns the display-column width of e's prefix,
// counting by grapheme cluster rather than byte or rune so combining glyphs
// never miscount a host's fixed-width terminal grid.
func (f *Facade) GetEntryPrefixLength(e cache.Entry) int {
	prefix := f.GetEntryPrefix(e)
	return uniseg.GraphemeClusterCount(prefix)
}

// GetEntryContent returns the substring [begin, begin+length) of e's line.
func (f *Facade) GetEntryContent(e cache.Entry, begin, length int) string {
	n, ok := f.root.At(e.Index)
	if !ok {
		return ""
	}
	return n.Content.ToSubstr(e.LineNo, begin, length)
}

// GetEntryLineLength returns the character length of e's line.
func (f *Facade) GetEntryLineLength(e cache.Entry) int {
	n, ok := f.root.At(e.Index)
	if !ok {
		return 0
	}
	return n.Content.LineLength(e.LineNo)
}

// EntryDepth returns the tree depth of the node at e (len(e.Index)).
func (f *Facade) EntryDepth(e cache.Entry) int { return len(e.Index) }

// EntryChildCount returns the child count of the node at e.
func (f *Facade) EntryChildCount(e cache.Entry) int {
	n, ok := f.root.At(e.Index)
	if !ok {
		return 0
	}
	return n.ChildCount()
}

// RowCount returns the total number of display rows.
func (f *Facade) RowCount() int { return f.cache.Len() }

// CursorPos returns the cursor's current (row, col).
func (f *Facade) CursorPos() (row, col int) { return f.cur.Y, f.cur.X }
