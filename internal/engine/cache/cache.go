package cache

import (
	"sort"

	"github.com/wildp/treenote/internal/engine/tree"
)

// Entry is one display row: the tree-index of the node it belongs to and
// the in-node line number it renders.
type Entry struct {
	Index  tree.Index
	LineNo int
}

// Cache is the flattened, pre-order sequence of display rows below the
// root. It holds no references into the tree; every lookup re-resolves the
// node for a row via tree.Node.At.
type Cache struct {
	entries []Entry
}

// Build performs a full pre-order traversal of root's children, producing
// max(line_count, 1) consecutive entries per node so that an empty node
// still occupies one display row.
func Build(root *tree.Node) *Cache {
	c := &Cache{}
	c.walk(root, tree.Index{})
	return c
}

func (c *Cache) walk(node *tree.Node, prefix tree.Index) {
	for i, child := range node.Children {
		idx := append(prefix.Clone(), i)
		lines := child.LineCount()
		if lines < 1 {
			lines = 1
		}
		for line := 0; line < lines; line++ {
			c.entries = append(c.entries, Entry{Index: idx.Clone(), LineNo: line})
		}
		c.walk(child, idx)
	}
}

// Len returns the number of display rows.
func (c *Cache) Len() int { return len(c.entries) }

// At returns the entry at row r.
func (c *Cache) At(r int) Entry { return c.entries[r] }

// Range returns up to count consecutive entries starting at row, clamped to
// the cache's bounds.
func (c *Cache) Range(row, count int) []Entry {
	if row < 0 {
		row = 0
	}
	if row >= len(c.entries) {
		return nil
	}
	end := row + count
	if end > len(c.entries) {
		end = len(c.entries)
	}
	return c.entries[row:end]
}

// compare orders two (index, line_no) keys lexicographically on index, then
// by line_no.
func compare(a tree.Index, aLine int, b tree.Index, bLine int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	if aLine != bLine {
		if aLine < bLine {
			return -1
		}
		return 1
	}
	return 0
}

// ApproxPosOfTreeIdx returns the row nearest (idx, line) by lexicographic
// order over (index, line_no), via binary search. Exact when such a row
// exists.
func (c *Cache) ApproxPosOfTreeIdx(idx tree.Index, line int) int {
	n := len(c.entries)
	row := sort.Search(n, func(i int) bool {
		return compare(c.entries[i].Index, c.entries[i].LineNo, idx, line) >= 0
	})
	if row >= n {
		return n - 1
	}
	return row
}
