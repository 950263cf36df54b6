package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/piece"
	"github.com/wildp/treenote/internal/engine/tree"
)

func withLines(a *arena.Arena, lines ...string) *piece.Table {
	t := piece.NewFromText(a, lines[0])
	for _, l := range lines[1:] {
		t.AppendLine(l)
	}
	return t
}

func buildSampleTree(a *arena.Arena) *tree.Node {
	root := tree.NewRoot(a)
	child0 := &tree.Node{Content: withLines(a, "one line")}
	child1 := &tree.Node{Content: withLines(a, "first", "second", "third")}
	tree.InsertChild(root, 0, child0)
	tree.InsertChild(root, 1, child1)

	grandchild := &tree.Node{Content: withLines(a, "grandchild")}
	tree.InsertChild(child0, 0, grandchild)
	return root
}

func TestBuildFlattensPreOrder(t *testing.T) {
	a := arena.New()
	root := buildSampleTree(a)
	c := Build(root)

	// child0 (1 row) + grandchild (1 row) + child1 (3 rows) = 5
	require.Equal(t, 5, c.Len())

	assert.Equal(t, tree.Index{0}, c.At(0).Index)
	assert.Equal(t, 0, c.At(0).LineNo)

	assert.Equal(t, tree.Index{0, 0}, c.At(1).Index)

	assert.Equal(t, tree.Index{1}, c.At(2).Index)
	assert.Equal(t, 0, c.At(2).LineNo)
	assert.Equal(t, tree.Index{1}, c.At(3).Index)
	assert.Equal(t, 1, c.At(3).LineNo)
	assert.Equal(t, tree.Index{1}, c.At(4).Index)
	assert.Equal(t, 2, c.At(4).LineNo)
}

func TestBuildEmptyNodeOccupiesOneRow(t *testing.T) {
	a := arena.New()
	root := tree.NewEmpty(a)
	c := Build(root)
	assert.Equal(t, 1, c.Len())
}

func TestRange(t *testing.T) {
	a := arena.New()
	root := buildSampleTree(a)
	c := Build(root)

	entries := c.Range(2, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].LineNo)
	assert.Equal(t, 1, entries[1].LineNo)

	assert.Nil(t, c.Range(100, 2))
	assert.Len(t, c.Range(4, 10), 1)
}

func TestApproxPosOfTreeIdx(t *testing.T) {
	a := arena.New()
	root := buildSampleTree(a)
	c := Build(root)

	assert.Equal(t, 2, c.ApproxPosOfTreeIdx(tree.Index{1}, 0))
	assert.Equal(t, 3, c.ApproxPosOfTreeIdx(tree.Index{1}, 1))
	// no row at (index{1}, line 99): lands on the next row in order, which
	// here is past the end, so it clamps to the last row.
	assert.Equal(t, 4, c.ApproxPosOfTreeIdx(tree.Index{1}, 99))
	assert.Equal(t, 0, c.ApproxPosOfTreeIdx(tree.Index{0}, 0))
}
