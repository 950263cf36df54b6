package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/engine/piece"
	"github.com/wildp/treenote/internal/engine/tree"
)

// buildTree creates:
//
//	root
//	 ├── 0: "hi there" (1 line)
//	 │    └── 0,0: "grandchild" (1 line)
//	 └── 1: "ab" / "cd" (2 lines)
func buildTree() (*tree.Node, *cache.Cache) {
	a := arena.New()
	root := tree.NewRoot(a)

	child0 := &tree.Node{Content: piece.NewFromText(a, "hi there")}
	tree.InsertChild(root, 0, child0)

	grandchild := &tree.Node{Content: piece.NewFromText(a, "grandchild")}
	tree.InsertChild(child0, 0, grandchild)

	child1 := &tree.Node{Content: piece.NewFromText(a, "ab")}
	child1.Content.AppendLine("cd")
	tree.InsertChild(root, 1, child1)

	return root, cache.Build(root)
}

func TestNewCursor(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.DepthIntended)
	assert.Equal(t, tree.Index{0}, s.IndexIntended)
}

func TestClamp(t *testing.T) {
	root, ch := buildTree()
	s := &State{Y: 100, X: 100}
	s.Clamp(root, ch)
	assert.Equal(t, ch.Len()-1, s.Y)
	assert.Equal(t, 2, s.X) // last row is "cd", length 2
}

func TestMvRightAcrossRows(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 0, 0 // "hi there", length 8

	s.MvRight(root, ch, 8)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 8, s.X)

	s.MvRight(root, ch, 1) // wraps to next row
	assert.Equal(t, 1, s.Y)
	assert.Equal(t, 0, s.X)
}

func TestMvLeftAcrossRows(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 1, 0 // start of "grandchild"

	s.MvLeft(root, ch, 1)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 8, s.X) // end of "hi there"
}

func TestMvLeftStopsAtStartOfFile(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 0, 0
	s.MvLeft(root, ch, 5)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 0, s.X)
}

func TestMvUpDownRestoresXIntended(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X, s.XIntended = 0, 8, 8 // end of "hi there" (8 chars)

	s.MvDown(root, ch, 1) // to "grandchild" (10 chars), long enough to keep X at 8
	assert.Equal(t, 1, s.Y)
	assert.Equal(t, 8, s.X)

	s.MvUp(root, ch, 1)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 8, s.X)
}

func TestMvDownClampsXToShorterLine(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X, s.XIntended = 1, 10, 10 // end of "grandchild"

	s.MvDown(root, ch, 1) // to child1 line0 "ab", length 2
	assert.Equal(t, 2, s.Y)
	assert.Equal(t, 2, s.X)
}

func TestWordForwardAndBackward(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 0, 0 // "hi there"

	s.WordForward(root, ch)
	assert.Equal(t, 3, s.X, "should land at the start of 'there'")

	s.WordBackward(root, ch)
	assert.Equal(t, 0, s.X)
}

func TestToSOLEOL(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 0, 3

	s.ToSOL()
	assert.Equal(t, 0, s.X)

	s.ToEOL(root, ch)
	assert.Equal(t, 8, s.X)
}

func TestToSOFEOF(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 1, 5

	s.ToSOF(ch)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 0, s.X)

	s.ToEOF(root, ch)
	assert.Equal(t, ch.Len()-1, s.Y)
	assert.Equal(t, 2, s.X) // last row "cd"
}

func TestNdParentChildPrevNext(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y = 1 // grandchild, depth 2

	ok := s.NdParent(ch)
	require.True(t, ok)
	assert.Equal(t, 0, s.Y) // child0

	ok = s.NdChild(root, ch)
	require.True(t, ok)
	assert.Equal(t, 1, s.Y) // grandchild again

	ok = s.NdParent(ch)
	require.True(t, ok)

	ok = s.NdNext(ch)
	require.True(t, ok)
	assert.Equal(t, 2, s.Y) // child1 (first row)

	ok = s.NdPrev(ch)
	require.True(t, ok)
	assert.Equal(t, 0, s.Y)
}

func TestNdParentRefusesAtRootChild(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y = 0 // child0, depth 1

	ok := s.NdParent(ch)
	assert.False(t, ok)
}

func TestNdChildRefusesWithoutChildren(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y = 2 // child1, no children

	ok := s.NdChild(root, ch)
	assert.False(t, ok)
}

func TestGoToIndex(t *testing.T) {
	root, ch := buildTree()
	s := New()

	s.GoToIndex(root, ch, tree.Index{1}, 1, 1)
	assert.Equal(t, 3, s.Y) // child1 line 1 ("cd")
	assert.Equal(t, 1, s.X)
}

func TestResetMNDAndUpdateIntendedPos(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y = 1

	s.MoveNodeDepth = 99
	s.ResetMND()
	assert.Equal(t, s.DepthIntended, s.MoveNodeDepth)

	s.UpdateIntendedPos(ch)
	assert.Equal(t, tree.Index{0, 0}, s.IndexIntended)
	_ = root
}

func TestSaveRestore(t *testing.T) {
	root, ch := buildTree()
	s := New()
	s.Y, s.X = 2, 1
	saved := s.Save()

	s.Y, s.X = 0, 0
	s.Restore(root, ch, saved)
	assert.Equal(t, 2, s.Y)
	assert.Equal(t, 1, s.X)
}
