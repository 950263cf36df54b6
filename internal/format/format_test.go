package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/piece"
	"github.com/wildp/treenote/internal/engine/tree"
)

func buildDoc(a *arena.Arena) *tree.Node {
	root := tree.NewRoot(a)
	root.Content = piece.NewFromText(a, "notes")

	first := &tree.Node{Content: piece.NewFromText(a, "first")}
	tree.InsertChild(root, 0, first)

	child := &tree.Node{Content: piece.NewFromText(a, "child of first")}
	tree.InsertChild(first, 0, child)

	second := &tree.Node{Content: piece.NewFromText(a, "second")}
	second.Content.AppendLine("second, line two")
	tree.InsertChild(root, 1, second)

	return root
}

func TestSerializeProducesBoxDrawingPrefixes(t *testing.T) {
	a := arena.New()
	root := buildDoc(a)
	text := Serialize(root)

	assert.Contains(t, text, "├── first")
	assert.Contains(t, text, "│   └── child of first")
	assert.Contains(t, text, "└── second")
	assert.Contains(t, text, "    second, line two")
}

func TestParseRoundTrip(t *testing.T) {
	a1 := arena.New()
	original := buildDoc(a1)
	text := Serialize(original)

	a2 := arena.New()
	reparsed := Parse(a2, text, "irrelevant.tree")

	require.Equal(t, 2, reparsed.ChildCount())
	assert.Equal(t, "first", reparsed.Children[0].Content.ToStr(0))
	require.Equal(t, 1, reparsed.Children[0].ChildCount())
	assert.Equal(t, "child of first", reparsed.Children[0].Children[0].Content.ToStr(0))

	assert.Equal(t, "second", reparsed.Children[1].Content.ToStr(0))
	require.Equal(t, 2, reparsed.Children[1].LineCount())
	assert.Equal(t, "second, line two", reparsed.Children[1].Content.ToStr(1))
}

func TestParseStoresNormalizedFilename(t *testing.T) {
	a := arena.New()
	// "é" as NFD (e + combining acute) should normalize to NFC on parse.
	decomposed := "café.tree"
	root := Parse(a, "", decomposed)
	assert.Equal(t, "café.tree", root.Content.ToStr(0))
}

func TestParseEmptyDocumentHasOneBlankChild(t *testing.T) {
	a := arena.New()
	root := Parse(a, "", "empty.tree")
	require.Equal(t, 1, root.ChildCount())
	assert.True(t, root.Children[0].Content.Empty())
}

func TestParseTrimsTrailingBlankNode(t *testing.T) {
	a := arena.New()
	root := Parse(a, "├── one\n└── \n", "doc.tree")
	require.Equal(t, 1, root.ChildCount())
	assert.Equal(t, "one", root.Children[0].Content.ToStr(0))
}

func TestParseWithTabWidthChangesIndentDivision(t *testing.T) {
	// A bare depth-1 marker line is 4 columns wide ("├── "). Under the
	// default tab width (4) that divides out to indent level 1; under a
	// narrower tab width (2) it divides out to indent level 2, so the
	// parser synthesizes an extra blank ancestor to reach that depth.
	a1 := arena.New()
	root := ParseWithTabWidth(a1, "├── x\n", "doc.tree", DefaultTabWidth)
	require.Equal(t, 1, root.ChildCount())
	assert.Equal(t, "x", root.Children[0].Content.ToStr(0))

	a2 := arena.New()
	narrow := ParseWithTabWidth(a2, "├── x\n", "doc.tree", 2)
	require.Equal(t, 1, narrow.ChildCount())
	blank1 := narrow.Children[0]
	assert.True(t, blank1.Content.Empty())
	require.Equal(t, 1, blank1.ChildCount())
	leaf := blank1.Children[0]
	assert.False(t, leaf.Content.Empty())
	require.Equal(t, 0, leaf.ChildCount())
	assert.Equal(t, "x", leaf.Content.ToStr(0))
}

func TestParseWithTabWidthRejectsNonPositiveValue(t *testing.T) {
	a := arena.New()
	root := ParseWithTabWidth(a, "├── x\n", "doc.tree", 0)
	require.Equal(t, 1, root.ChildCount())
	assert.Equal(t, "x", root.Children[0].Content.ToStr(0))
}

func TestParseMultipleTopLevelNodes(t *testing.T) {
	a := arena.New()
	root := Parse(a, "├── alpha\n├── beta\n└── gamma\n", "doc.tree")
	require.Equal(t, 3, root.ChildCount())
	assert.Equal(t, "alpha", root.Children[0].Content.ToStr(0))
	assert.Equal(t, "beta", root.Children[1].Content.ToStr(0))
	assert.Equal(t, "gamma", root.Children[2].Content.ToStr(0))
}
