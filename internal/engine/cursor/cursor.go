package cursor

import (
	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/engine/tree"
	"github.com/wildp/treenote/internal/engine/utf8x"
)

// State is the cursor's position plus its intended-position memory.
type State struct {
	Y, X          int
	XIntended     int
	DepthIntended int
	IndexIntended tree.Index
	MoveNodeDepth int
}

// New returns a cursor positioned at the first row, defaulting its intended
// depth/index/move-node-depth to the first root-level node.
func New() *State {
	return &State{DepthIntended: 1, IndexIntended: tree.Index{0}, MoveNodeDepth: 1}
}

// Saved is a lightweight (x, y) snapshot for the go-back-after-navigation
// pattern (e.g. restoring position after a "go to" jump elsewhere).
type Saved struct{ X, Y int }

// Save captures the cursor's row/column.
func (s *State) Save() Saved { return Saved{X: s.X, Y: s.Y} }

// Restore re-applies a saved row/column, clamping to the current cache and
// re-deriving intended depth/index from the resulting row.
func (s *State) Restore(root *tree.Node, ch *cache.Cache, saved Saved) {
	s.X, s.Y = saved.X, saved.Y
	s.Clamp(root, ch)
	s.updateIntendedFromRow(ch)
}

// Clamp bounds Y to [0, cache.Len()-1] and X to [0, line_length(Y)].
func (s *State) Clamp(root *tree.Node, ch *cache.Cache) {
	if ch.Len() == 0 {
		s.Y, s.X = 0, 0
		return
	}
	if s.Y < 0 {
		s.Y = 0
	}
	if s.Y >= ch.Len() {
		s.Y = ch.Len() - 1
	}
	ll := lineLengthAt(root, ch, s.Y)
	if s.X < 0 {
		s.X = 0
	}
	if s.X > ll {
		s.X = ll
	}
}

func rowInfo(root *tree.Node, ch *cache.Cache, row int) (*tree.Node, cache.Entry, bool) {
	if row < 0 || row >= ch.Len() {
		return nil, cache.Entry{}, false
	}
	e := ch.At(row)
	n, ok := root.At(e.Index)
	if !ok {
		return nil, cache.Entry{}, false
	}
	return n, e, true
}

func lineLengthAt(root *tree.Node, ch *cache.Cache, row int) int {
	n, e, ok := rowInfo(root, ch, row)
	if !ok {
		return 0
	}
	return n.Content.LineLength(e.LineNo)
}

func charAt(root *tree.Node, ch *cache.Cache, row, col int) string {
	n, e, ok := rowInfo(root, ch, row)
	if !ok || col < 0 {
		return ""
	}
	ll := n.Content.LineLength(e.LineNo)
	if col >= ll {
		return ""
	}
	return n.Content.ToSubstr(e.LineNo, col, 1)
}

func charBefore(root *tree.Node, ch *cache.Cache, row, col int) string {
	if col <= 0 {
		return ""
	}
	return charAt(root, ch, row, col-1)
}

// ResetMND resets the move-node-depth memory to the current intended
// depth, cancelling any "stay at this depth" memory from a prior
// back/forward move.
func (s *State) ResetMND() { s.MoveNodeDepth = s.DepthIntended }

// UpdateIntendedPos re-derives the intended depth/index from the cursor's
// current row, called after a structural move that didn't itself reposition
// the cursor to a specific row.
func (s *State) UpdateIntendedPos(ch *cache.Cache) { s.updateIntendedFromRow(ch) }

func (s *State) updateIntendedFromRow(ch *cache.Cache) {
	if ch.Len() == 0 {
		return
	}
	e := ch.At(s.Y)
	s.DepthIntended = len(e.Index)
	s.IndexIntended = e.Index.Clone()
}

// stepRight moves one character to the right, wrapping to the next row at
// column 0 when at end-of-line. Returns false at end-of-file.
func (s *State) stepRight(root *tree.Node, ch *cache.Cache) bool {
	ll := lineLengthAt(root, ch, s.Y)
	if s.X < ll {
		s.X++
		return true
	}
	if s.Y < ch.Len()-1 {
		s.Y++
		s.X = 0
		return true
	}
	return false
}

// stepLeft moves one character to the left, wrapping to the end of the
// previous row at column 0. Returns false at start-of-file.
func (s *State) stepLeft(root *tree.Node, ch *cache.Cache) bool {
	if s.X > 0 {
		s.X--
		return true
	}
	if s.Y > 0 {
		s.Y--
		s.X = lineLengthAt(root, ch, s.Y)
		return true
	}
	return false
}

// MvLeft moves amt characters to the left, wrapping across line/node
// boundaries, stopping early at start-of-file.
func (s *State) MvLeft(root *tree.Node, ch *cache.Cache, amt int) {
	for ; amt > 0; amt-- {
		if !s.stepLeft(root, ch) {
			break
		}
	}
	s.XIntended = s.X
}

// MvRight moves amt characters to the right, wrapping across line/node
// boundaries, stopping early at end-of-file.
func (s *State) MvRight(root *tree.Node, ch *cache.Cache, amt int) {
	for ; amt > 0; amt-- {
		if !s.stepRight(root, ch) {
			break
		}
	}
	s.XIntended = s.X
}

// MvUp moves amt rows up, restoring X from XIntended (clamped to the new
// row's length) and refreshing the intended depth/index.
func (s *State) MvUp(root *tree.Node, ch *cache.Cache, amt int) {
	s.Y -= amt
	if s.Y < 0 {
		s.Y = 0
	}
	s.afterVerticalMove(root, ch)
}

// MvDown moves amt rows down, restoring X from XIntended (clamped to the
// new row's length) and refreshing the intended depth/index.
func (s *State) MvDown(root *tree.Node, ch *cache.Cache, amt int) {
	s.Y += amt
	if s.Y >= ch.Len() {
		s.Y = ch.Len() - 1
	}
	s.afterVerticalMove(root, ch)
}

func (s *State) afterVerticalMove(root *tree.Node, ch *cache.Cache) {
	ll := lineLengthAt(root, ch, s.Y)
	if s.XIntended < ll {
		s.X = s.XIntended
	} else {
		s.X = ll
	}
	s.updateIntendedFromRow(ch)
}

// WordForward advances until the character just stepped over is not a word
// character but the character now under the cursor is, i.e. the start of
// the next word; crosses node boundaries transparently via stepRight.
func (s *State) WordForward(root *tree.Node, ch *cache.Cache) {
	before := charAt(root, ch, s.Y, s.X)
	for s.stepRight(root, ch) {
		after := charAt(root, ch, s.Y, s.X)
		if !utf8x.WordConstituent(before) && utf8x.WordConstituent(after) {
			break
		}
		before = after
	}
	s.XIntended = s.X
}

// WordBackward steps one character left unconditionally, then continues
// left until the character under the cursor is a word character preceded
// by a non-word character.
func (s *State) WordBackward(root *tree.Node, ch *cache.Cache) {
	if !s.stepLeft(root, ch) {
		s.XIntended = s.X
		return
	}
	for {
		cur := charAt(root, ch, s.Y, s.X)
		prev := charBefore(root, ch, s.Y, s.X)
		if utf8x.WordConstituent(cur) && !utf8x.WordConstituent(prev) {
			break
		}
		if !s.stepLeft(root, ch) {
			break
		}
	}
	s.XIntended = s.X
}

// ToSOL moves to the start of the current line.
func (s *State) ToSOL() { s.X = 0; s.XIntended = 0 }

// ToEOL moves to the end of the current line.
func (s *State) ToEOL(root *tree.Node, ch *cache.Cache) {
	s.X = lineLengthAt(root, ch, s.Y)
	s.XIntended = s.X
}

// ToSOF moves to the very first row and column.
func (s *State) ToSOF(ch *cache.Cache) {
	s.Y, s.X, s.XIntended = 0, 0, 0
	s.updateIntendedFromRow(ch)
}

// ToEOF moves to the last row, end of its line.
func (s *State) ToEOF(root *tree.Node, ch *cache.Cache) {
	if ch.Len() == 0 {
		return
	}
	s.Y = ch.Len() - 1
	s.X = lineLengthAt(root, ch, s.Y)
	s.XIntended = s.X
	s.updateIntendedFromRow(ch)
}

func depthAt(ch *cache.Cache, row int) int { return len(ch.At(row).Index) }

// NdParent moves to the row of the current node's parent, refusing (false)
// if the current node is already at the root-child boundary (depth 1).
func (s *State) NdParent(ch *cache.Cache) bool {
	d := depthAt(ch, s.Y)
	if d <= 1 {
		return false
	}
	s.DepthIntended = d - 1
	for y := s.Y; y >= 0; y-- {
		if depthAt(ch, y) == s.DepthIntended {
			s.Y, s.X, s.XIntended = y, 0, 0
			s.IndexIntended = ch.At(y).Index.Clone()
			return true
		}
	}
	return false
}

// NdChild moves into the current node's first child, preferring the child
// matching IndexIntended at the new depth if one exists; refuses (false)
// if the current node has no children.
func (s *State) NdChild(root *tree.Node, ch *cache.Cache) bool {
	n, _, ok := rowInfo(root, ch, s.Y)
	if !ok || n.ChildCount() == 0 {
		return false
	}
	parentIdx := ch.At(s.Y).Index
	target := len(parentIdx) + 1
	s.DepthIntended = target

	best := -1
	for y := s.Y + 1; y < ch.Len(); y++ {
		idx := ch.At(y).Index
		if len(idx) <= len(parentIdx) || !idx[:len(parentIdx)].Equal(parentIdx) {
			break
		}
		if len(idx) != target {
			continue
		}
		if best == -1 {
			best = y
		}
		if len(s.IndexIntended) >= target && idx[target-1] == s.IndexIntended[target-1] {
			best = y
			break
		}
	}
	if best == -1 {
		return false
	}
	s.Y, s.X, s.XIntended = best, 0, 0
	return true
}

// NdPrev moves to the previous row whose node depth equals DepthIntended.
func (s *State) NdPrev(ch *cache.Cache) bool {
	for y := s.Y - 1; y >= 0; y-- {
		if depthAt(ch, y) == s.DepthIntended {
			s.Y, s.X, s.XIntended = y, 0, 0
			s.IndexIntended = ch.At(y).Index.Clone()
			return true
		}
	}
	return false
}

// NdNext moves to the next row whose node depth equals DepthIntended.
func (s *State) NdNext(ch *cache.Cache) bool {
	for y := s.Y + 1; y < ch.Len(); y++ {
		if depthAt(ch, y) == s.DepthIntended {
			s.Y, s.X, s.XIntended = y, 0, 0
			s.IndexIntended = ch.At(y).Index.Clone()
			return true
		}
	}
	return false
}

// GoToIndex positions the cursor at the row matching (idx, line), clamping
// col to that row's line length.
func (s *State) GoToIndex(root *tree.Node, ch *cache.Cache, idx tree.Index, line, col int) {
	row := ch.ApproxPosOfTreeIdx(idx, line)
	s.goToRow(root, ch, row, col)
}

// GoToRow positions the cursor directly at a display row, clamping col to
// that row's line length.
func (s *State) GoToRow(root *tree.Node, ch *cache.Cache, row, col int) {
	s.goToRow(root, ch, row, col)
}

func (s *State) goToRow(root *tree.Node, ch *cache.Cache, row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= ch.Len() {
		row = ch.Len() - 1
	}
	s.Y = row
	ll := lineLengthAt(root, ch, row)
	if col > ll {
		col = ll
	}
	if col < 0 {
		col = 0
	}
	s.X, s.XIntended = col, col
	s.updateIntendedFromRow(ch)
}
