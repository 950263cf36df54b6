package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine/tree"
)

func TestMakeEmptyStartingState(t *testing.T) {
	f := New()
	assert.Equal(t, 1, f.RowCount())
	row, col := f.CursorPos()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
	assert.False(t, f.Modified())
}

func TestLineInsertTextAndContent(t *testing.T) {
	f := New()
	f.LineInsertText("hello")
	row, col := f.CursorPos()
	assert.Equal(t, 0, row)
	assert.Equal(t, 5, col)

	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "hello", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
	assert.True(t, f.Modified())
}

func TestLineInsertTextCompactsUndo(t *testing.T) {
	f := New()
	f.LineInsertText("a")
	f.LineInsertText("b")
	f.LineInsertText("c")

	name := f.Undo()
	assert.Equal(t, "insert_text", name)
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)), "one undo should remove the whole compacted run")
}

func TestLineNewlineSplitsNode(t *testing.T) {
	f := New()
	f.LineInsertText("helloworld")
	f.CursorGoToRowCol(0, 5)
	f.LineNewline()

	e0 := f.GetLCRange(0, 2)[0]
	e1 := f.GetLCRange(0, 2)[1]
	assert.Equal(t, "hello", f.GetEntryContent(e0, 0, f.GetEntryLineLength(e0)))
	assert.Equal(t, "world", f.GetEntryContent(e1, 0, f.GetEntryLineLength(e1)))
	row, col := f.CursorPos()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestLineBackspaceJoinsLines(t *testing.T) {
	f := New()
	f.LineInsertText("hello")
	f.LineNewline()
	f.LineInsertText("world")
	f.CursorGoToRowCol(1, 0)

	f.LineBackspace()
	require.Equal(t, 1, f.RowCount())
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "helloworld", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
}

func TestLineDeleteCharJoinsNextLine(t *testing.T) {
	f := New()
	f.LineInsertText("hello")
	f.LineNewline()
	f.LineInsertText("world")
	f.CursorGoToRowCol(0, 5)

	f.LineDeleteChar()
	require.Equal(t, 1, f.RowCount())
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "helloworld", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
}

func TestLineForwardDeleteWord(t *testing.T) {
	f := New()
	f.LineInsertText("hello world")
	f.CursorGoToRowCol(0, 0)

	f.LineForwardDeleteWord()
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, " world", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
}

func TestLineBackwardDeleteWord(t *testing.T) {
	f := New()
	f.LineInsertText("hello world")
	f.CursorGoToRowCol(0, 11)

	f.LineBackwardDeleteWord()
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "hello ", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
}

func TestNodeInsertBelowAndDefault(t *testing.T) {
	f := New()
	rv := f.NodeInsertBelow()
	assert.Equal(t, 0, rv)
	assert.Equal(t, 2, f.RowCount())

	row, _ := f.CursorPos()
	assert.Equal(t, 1, row)
}

func TestNodeInsertChildAndNdParent(t *testing.T) {
	f := New()
	f.NodeInsertChild()
	require.Equal(t, 2, f.RowCount())

	rv := f.CursorNdParent()
	assert.Equal(t, 0, rv)
	row, _ := f.CursorPos()
	assert.Equal(t, 0, row)
}

func TestNodeDeleteCheckRefusesWithChildren(t *testing.T) {
	f := New()
	f.NodeInsertChild()
	f.CursorNdParent()

	rv := f.NodeDeleteCheck()
	assert.Equal(t, 2, rv, "deleting a node with children should request confirmation")
}

func TestNodeDeleteRecRefusesOnSoleEmptyRoot(t *testing.T) {
	f := New()
	rv := f.NodeDeleteRec()
	assert.Equal(t, 1, rv)
	assert.Equal(t, 1, f.RowCount())
}

func TestNodeDeleteRecReinsertsBlankWhenEmptied(t *testing.T) {
	f := New()
	f.LineInsertText("only content")

	rv := f.NodeDeleteRec()
	assert.Equal(t, 0, rv)
	require.Equal(t, 1, f.RowCount())
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, "", f.GetEntryContent(e, 0, f.GetEntryLineLength(e)))
}

func TestNodeMoveHigherRecPromotesLaterSiblingsAsChildren(t *testing.T) {
	f := New()
	// root -> p -> [target, s1, s2]
	f.NodeInsertChild()
	f.LineInsertText("target")
	f.NodeInsertBelow()
	f.LineInsertText("s1")
	f.NodeInsertBelow()
	f.LineInsertText("s2")

	f.CursorGoToIndex(tree.Index{0, 0}, 0, 0) // back to "target"
	rv := f.NodeMoveHigherRec()
	assert.Equal(t, 0, rv)

	require.Equal(t, 2, f.root.ChildCount())
	p := f.root.Children[0]
	target := f.root.Children[1]
	assert.Equal(t, 0, p.ChildCount(), "p's children were all promoted away")
	require.Equal(t, 2, target.ChildCount())
	assert.Equal(t, "s1", target.Children[0].Content.ToStr(0))
	assert.Equal(t, "s2", target.Children[1].Content.ToStr(0))
}

func TestNodeMoveLowerRecDemotesUnderPredecessor(t *testing.T) {
	f := New()
	f.LineInsertText("a")
	f.NodeInsertBelow()
	f.LineInsertText("b")

	rv := f.NodeMoveLowerRec()
	assert.Equal(t, 0, rv)
	require.Equal(t, 1, f.root.ChildCount())
	assert.Equal(t, 1, f.root.Children[0].ChildCount())
}

func TestNodeMoveLowerRecRefusesOnFirstChild(t *testing.T) {
	f := New()
	rv := f.NodeMoveLowerRec()
	assert.Equal(t, 1, rv)
}

func TestNodeMoveLowerIndentPreservesChildOrder(t *testing.T) {
	f := New()
	// root -> [a, b -> [b1, b2]]
	f.LineInsertText("a")
	f.NodeInsertBelow()
	f.LineInsertText("b")
	f.NodeInsertChild()
	f.LineInsertText("b1")
	f.NodeInsertBelow()
	f.LineInsertText("b2")

	f.CursorGoToIndex(tree.Index{1}, 0, 0) // back to "b"
	rv := f.NodeMoveLowerIndent()
	assert.Equal(t, 0, rv)

	require.Equal(t, 1, f.root.ChildCount())
	a := f.root.Children[0]
	require.Equal(t, 3, a.ChildCount())
	assert.Equal(t, "b", a.Children[0].Content.ToStr(0))
	assert.Equal(t, "b1", a.Children[1].Content.ToStr(0))
	assert.Equal(t, "b2", a.Children[2].Content.ToStr(0))
	assert.Equal(t, 0, a.Children[0].ChildCount(), "b's own children were promoted out to a")
}

func TestNodeCopyAndPasteDefault(t *testing.T) {
	f := New()
	f.LineInsertText("source")

	rv := f.NodeCopy()
	assert.Equal(t, 0, rv)

	rv = f.NodePasteDefault()
	assert.Equal(t, 0, rv)
	assert.Equal(t, 2, f.root.ChildCount())
	assert.Equal(t, "source", f.root.Children[1].Content.ToStr(0))
}

func TestNodeCutThenPasteAbove(t *testing.T) {
	f := New()
	f.LineInsertText("a")
	f.NodeInsertBelow()
	f.LineInsertText("b")
	f.CursorGoToRowCol(1, 0)

	rv := f.NodeCut()
	assert.Equal(t, 0, rv)
	require.Equal(t, 1, f.root.ChildCount())

	rv = f.NodePasteAbove()
	assert.Equal(t, 0, rv)
	require.Equal(t, 2, f.root.ChildCount())
}

func TestUndoRedoAcrossStructuralEdit(t *testing.T) {
	f := New()
	f.NodeInsertBelow()
	require.Equal(t, 2, f.RowCount())

	name := f.Undo()
	assert.Equal(t, "insert_node", name)
	assert.Equal(t, 1, f.RowCount())

	name = f.Redo()
	assert.Equal(t, "insert_node", name)
	assert.Equal(t, 2, f.RowCount())
}

func TestSerialize(t *testing.T) {
	f := New()
	f.LineInsertText("hello")
	text := f.Serialize()
	assert.Contains(t, text, "hello")
}

func TestLoadSaveFileRoundTrip(t *testing.T) {
	f := New()
	f.LineInsertText("roundtrip")

	dir := t.TempDir()
	path := filepath.Join(dir, "note.tree")

	status, _ := f.SaveFile(path)
	require.Equal(t, StatusNone, status)
	assert.False(t, f.Modified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "roundtrip")

	f2 := New()
	status, stats := f2.LoadFile(path)
	require.Equal(t, StatusNone, status)
	assert.Equal(t, 1, stats.Nodes)
	e := f2.GetLCRange(0, 1)[0]
	assert.Equal(t, "roundtrip", f2.GetEntryContent(e, 0, f2.GetEntryLineLength(e)))
}

func TestLoadFileDoesNotExist(t *testing.T) {
	f := New()
	status, _ := f.LoadFile(filepath.Join(t.TempDir(), "missing.tree"))
	assert.Equal(t, StatusDoesNotExist, status)
}

func TestSaveFileNoPath(t *testing.T) {
	f := New()
	status, _ := f.SaveFile("")
	assert.Equal(t, StatusUnknownError, status)
}

func TestCloseFileResets(t *testing.T) {
	f := New()
	f.LineInsertText("something")
	f.CloseFile()
	assert.Equal(t, 1, f.RowCount())
	assert.False(t, f.Modified())
}

func TestCloseFilePreservesConfiguredOptions(t *testing.T) {
	f := New(WithTabWidth(2), WithAutosaveDir("/configured"))
	f.LineInsertText("something")
	f.CloseFile()
	assert.Equal(t, 2, f.tabWidth)
	assert.Equal(t, "/configured", f.autosaveDir)
}

func TestWithTabWidthAppliedToLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.tree")
	require.NoError(t, os.WriteFile(path, []byte("├── x\n"), 0o644))

	// Under the default tab width (4), a bare depth-1 marker line's column
	// count (4) divides out to indent level 1: "x" is a direct child of the
	// invisible root.
	withDefault := New()
	status, _ := withDefault.LoadFile(path)
	require.Equal(t, StatusNone, status)
	require.Equal(t, 1, withDefault.root.ChildCount())
	assert.Equal(t, "x", withDefault.root.Children[0].Content.ToStr(0))

	// Under WithTabWidth(2), the same 4-column prefix divides out to indent
	// level 2, so the parser synthesizes two intermediate blank nodes to
	// reach that depth before placing "x".
	withNarrow := New(WithTabWidth(2))
	status, _ = withNarrow.LoadFile(path)
	require.Equal(t, StatusNone, status)
	require.Equal(t, 1, withNarrow.root.ChildCount())
	blank1 := withNarrow.root.Children[0]
	assert.True(t, blank1.Content.Empty())
	require.Equal(t, 1, blank1.ChildCount())
	blank2 := blank1.Children[0]
	assert.True(t, blank2.Content.Empty())
	require.Equal(t, 1, blank2.ChildCount())
	assert.Equal(t, "x", blank2.Children[0].Content.ToStr(0))
}

func TestWithAutosaveDirAppliedToSaveToTmp(t *testing.T) {
	dir := t.TempDir()
	f := New(WithAutosaveDir(dir))
	f.LineInsertText("autosaved")

	var outPath string
	status := f.SaveToTmp(&outPath)
	require.Equal(t, StatusNone, status)
	assert.Equal(t, dir, filepath.Dir(outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "autosaved")
}

func TestWithoutAutosaveDirFallsBackToDocumentDir(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "note.tree")

	f := New()
	require.NoError(t, os.WriteFile(docPath, []byte("hello\n"), 0o644))
	status, _ := f.LoadFile(docPath)
	require.Equal(t, StatusNone, status)

	var outPath string
	status = f.SaveToTmp(&outPath)
	require.Equal(t, StatusNone, status)
	assert.Equal(t, dir, filepath.Dir(outPath))
}

func TestEntryDepthAndChildCount(t *testing.T) {
	f := New()
	f.NodeInsertChild()
	e := f.GetLCRange(0, 1)[0]
	assert.Equal(t, 1, f.EntryDepth(e))
	assert.Equal(t, 1, f.EntryChildCount(e))
}

func TestGetEntryPrefix(t *testing.T) {
	f := New()
	f.NodeInsertBelow()
	e0 := f.GetLCRange(0, 2)[0]
	e1 := f.GetLCRange(0, 2)[1]
	assert.Equal(t, "├── ", f.GetEntryPrefix(e0))
	assert.Equal(t, "└── ", f.GetEntryPrefix(e1))
	assert.True(t, f.GetEntryPrefixLength(e0) > 0)
}

func TestCursorGoToIndex(t *testing.T) {
	f := New()
	f.NodeInsertBelow()
	f.CursorGoToIndex(tree.Index{0}, 0, 0)
	row, _ := f.CursorPos()
	assert.Equal(t, 0, row)
}
