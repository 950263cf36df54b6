package engine

import (
	"github.com/wildp/treenote/internal/engine/history"
	"github.com/wildp/treenote/internal/engine/piece"
	"github.com/wildp/treenote/internal/engine/tree"
)

func newEmptyNode(f *Facade) *tree.Node {
	return &tree.Node{Content: piece.New(f.arena)}
}

func decLast(idx tree.Index) tree.Index {
	out := idx.Clone()
	out[len(out)-1]--
	return out
}

func incLast(idx tree.Index) tree.Index {
	out := idx.Clone()
	out[len(out)-1]++
	return out
}

func withChild(idx tree.Index, pos int) tree.Index {
	return append(idx.Clone(), pos)
}

/* --- Node insertion --- */

// NodeInsertAbove inserts a blank sibling immediately before the current
// node, leaving the cursor on the new blank node.
func (f *Facade) NodeInsertAbove() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	f.hist.Exec(&history.InsertNode{Pos: e.Index.Clone(), Payload: newEmptyNode(f)}, before)
	f.rebuildCache()
	f.cur.MvDown(f.root, f.cache, 1)
	f.cur.NdPrev(f.cache)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeInsertBelow inserts a blank sibling immediately after the current
// node, moving the cursor onto it.
func (f *Facade) NodeInsertBelow() int {
	_, e, ok := f.currentNode()
	if !ok || len(e.Index) == 0 {
		return 1
	}
	before := f.cursorSnapshot()
	dst := incLast(e.Index)
	f.hist.Exec(&history.InsertNode{Pos: dst, Payload: newEmptyNode(f)}, before)
	f.rebuildCache()
	f.cur.NdNext(f.cache)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeInsertChild inserts a blank first child of the current node, moving
// the cursor onto it.
func (f *Facade) NodeInsertChild() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	dst := withChild(e.Index, 0)
	f.hist.Exec(&history.InsertNode{Pos: dst, Payload: newEmptyNode(f)}, before)
	f.rebuildCache()
	f.cur.MvDown(f.root, f.cache, 1)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeInsertDefault inserts a child of the current node if it already has
// children, else a following sibling.
func (f *Facade) NodeInsertDefault() int {
	n, _, ok := f.currentNode()
	if !ok {
		return 1
	}
	if n.ChildCount() == 0 {
		return f.NodeInsertBelow()
	}
	return f.NodeInsertChild()
}

// NodeInsertEnter inserts a child when at root-child depth, else defers to
// NodeInsertDefault.
func (f *Facade) NodeInsertEnter() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	if len(e.Index) <= 1 {
		return f.NodeInsertChild()
	}
	return f.NodeInsertDefault()
}

/* --- Node movement --- */

// NodeMoveHigherRec promotes the current node: its later siblings become
// its own trailing children, then it becomes a sibling of its former
// parent, just after it.
func (f *Facade) NodeMoveHigherRec() int {
	f.cur.ResetMND()
	_, e, ok := f.currentNode()
	if !ok || len(e.Index) <= 1 {
		return 1
	}
	before := f.cursorSnapshot()
	srcIdx := e.Index.Clone()
	srcParentIdx := srcIdx[:len(srcIdx)-1].Clone()
	srcParent, _ := f.root.At(srcParentIdx)
	srcNode, _ := f.root.At(srcIdx)

	f.hist.Exec(&history.Multi{}, before)

	altSrc := incLast(srcIdx)
	altDst := withChild(srcIdx, srcNode.ChildCount())
	for srcParent.ChildCount() > srcIdx[len(srcIdx)-1]+1 {
		f.hist.AppendMulti(&history.MoveNode{Src: altSrc.Clone(), Dst: altDst.Clone()}, history.CursorSnapshot{})
		altDst = incLast(altDst)
	}

	dstIdx := incLast(srcParentIdx)
	f.hist.AppendMulti(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, history.CursorSnapshot{})

	f.rebuildCache()
	f.cur.UpdateIntendedPos(f.cache)
	f.cur.ResetMND()
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeMoveLowerRec demotes the current node under its immediate preceding
// sibling, appended after that sibling's existing children.
func (f *Facade) NodeMoveLowerRec() int {
	_, e, ok := f.currentNode()
	if !ok || e.Index[len(e.Index)-1] == 0 {
		return 1
	}
	before := f.cursorSnapshot()
	srcIdx := e.Index.Clone()
	predIdx := decLast(srcIdx)
	pred, ok := f.root.At(predIdx)
	if !ok {
		return 1
	}
	dstIdx := withChild(predIdx, pred.ChildCount())
	f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, before)
	f.rebuildCache()
	f.cur.UpdateIntendedPos(f.cache)
	f.cur.ResetMND()
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeMoveBackRec moves the node one position back on the page: within its
// sibling list if not at the front, or by promoting it before its former
// parent if it is.
func (f *Facade) NodeMoveBackRec() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	srcIdx := e.Index.Clone()
	last := srcIdx[len(srcIdx)-1]
	if len(srcIdx) <= 1 && last == 0 {
		return 1
	}
	before := f.cursorSnapshot()

	if last == 0 {
		parentIdx := srcIdx[:len(srcIdx)-1].Clone()
		f.cur.NdParent(f.cache)
		f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: parentIdx}, before)
		f.rebuildCache()
	} else {
		dstIdx := decLast(srcIdx)
		if len(e.Index) < f.cur.MoveNodeDepth {
			pred, ok := f.root.At(dstIdx)
			if !ok {
				return 1
			}
			dstIdx = withChild(dstIdx, pred.ChildCount())
			f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, before)
			f.rebuildCache()
			f.cur.UpdateIntendedPos(f.cache)
		} else {
			f.cur.ResetMND()
			f.cur.UpdateIntendedPos(f.cache)
			f.cur.NdPrev(f.cache)
			f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, before)
			f.rebuildCache()
		}
	}
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeMoveForwardRec moves the node one position forward on the page: within
// its sibling list if not at the back, or by promoting it after its former
// parent if it is.
func (f *Facade) NodeMoveForwardRec() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	srcIdx := e.Index.Clone()
	parentIdx := srcIdx[:len(srcIdx)-1].Clone()
	parent, ok := f.root.At(parentIdx)
	if !ok {
		return 1
	}
	last := srcIdx[len(srcIdx)-1]
	if len(srcIdx) == 1 && last+1 == f.root.ChildCount() {
		return 1
	}
	before := f.cursorSnapshot()

	if last+1 >= parent.ChildCount() {
		dstIdx := incLast(parentIdx)
		f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, before)
		f.rebuildCache()
	} else {
		var dstIdx tree.Index
		if len(e.Index) < f.cur.MoveNodeDepth {
			if !tree.Exists(f.root, incLast(srcIdx)) {
				return 1
			}
			// dst is resolved after the detach, when the next sibling
			// has moved up to srcIdx.
			dstIdx = withChild(srcIdx, 0)
		} else {
			dstIdx = incLast(srcIdx)
			f.cur.ResetMND()
			f.cur.UpdateIntendedPos(f.cache)
		}
		f.hist.Exec(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, before)
		f.rebuildCache()
		f.cur.NdNext(f.cache)
	}
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeMoveLowerIndent moves the node to the left on the page by lowering it
// within the tree while leaving its children where they visually sit: its
// children are promoted to siblings of it first, then it is demoted under
// its immediate preceding sibling.
func (f *Facade) NodeMoveLowerIndent() int {
	_, e, ok := f.currentNode()
	if !ok || e.Index[len(e.Index)-1] == 0 {
		return 1
	}
	before := f.cursorSnapshot()
	srcIdx := e.Index.Clone()
	srcNode, _ := f.root.At(srcIdx)

	f.hist.Exec(&history.Multi{}, before)

	predIdx := decLast(srcIdx)
	pred, _ := f.root.At(predIdx)
	dstIdx := withChild(predIdx, pred.ChildCount())

	srcChildIdx := withChild(srcIdx, 0)
	for srcNode.ChildCount() > 0 {
		srcChildIdx[len(srcChildIdx)-1] = srcNode.ChildCount() - 1
		f.hist.AppendMulti(&history.MoveNode{Src: srcChildIdx.Clone(), Dst: dstIdx.Clone()}, history.CursorSnapshot{})
	}

	f.hist.AppendMulti(&history.MoveNode{Src: srcIdx, Dst: dstIdx}, history.CursorSnapshot{})

	f.rebuildCache()
	f.cur.UpdateIntendedPos(f.cache)
	f.cur.ResetMND()
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

/* --- Deletion --- */

func (f *Facade) soleEmptyRoot() bool {
	return f.root.ChildCount() == 1 && f.root.Children[0].ChildCount() == 0 && f.root.Children[0].Content.LineLength(0) == 0
}

// NodeDeleteCheck deletes the current node recursively if it has no
// children, else refuses with code 2 so the host can ask for confirmation.
func (f *Facade) NodeDeleteCheck() int {
	n, _, ok := f.currentNode()
	if !ok {
		return 1
	}
	if n.ChildCount() == 0 {
		return f.NodeDeleteRec()
	}
	return 2
}

// NodeDeleteRec deletes the current node and its whole subtree, refusing
// only when it is the sole, empty, childless node in the document.
func (f *Facade) NodeDeleteRec() int {
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	if f.soleEmptyRoot() {
		return 1
	}
	before := f.cursorSnapshot()
	f.hist.Exec(&history.DeleteNode{Pos: e.Index.Clone()}, before)
	if f.root.ChildCount() == 0 {
		f.hist.AppendMulti(&history.InsertNode{Pos: e.Index.Clone(), Payload: newEmptyNode(f)}, history.CursorSnapshot{})
	}
	f.releaseToken()
	f.rebuildCache()
	f.cur.Clamp(f.root, f.cache)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodeDeleteSpecial deletes the current node, keeping its children: they
// are raised to its former position if it was the first child, else moved
// under its preceding sibling.
func (f *Facade) NodeDeleteSpecial() int {
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	if n.ChildCount() == 0 {
		return f.NodeDeleteRec()
	}
	before := f.cursorSnapshot()
	deletedIdx := e.Index.Clone()

	f.hist.Exec(&history.Multi{}, before)

	if deletedIdx[len(deletedIdx)-1] > 0 {
		srcIdx := withChild(deletedIdx, 0)
		predIdx := decLast(deletedIdx)
		pred, _ := f.root.At(predIdx)
		dstIdx := withChild(predIdx, pred.ChildCount())
		for n.ChildCount() > 0 {
			f.hist.AppendMulti(&history.MoveNode{Src: srcIdx.Clone(), Dst: dstIdx.Clone()}, history.CursorSnapshot{})
			dstIdx = incLast(dstIdx)
		}
	} else {
		dstIdx := incLast(deletedIdx)
		srcIdx := withChild(deletedIdx, n.ChildCount())
		for n.ChildCount() > 0 {
			srcIdx[len(srcIdx)-1] = n.ChildCount() - 1
			f.hist.AppendMulti(&history.MoveNode{Src: srcIdx.Clone(), Dst: dstIdx.Clone()}, history.CursorSnapshot{})
		}
	}

	f.hist.AppendMulti(&history.DeleteNode{Pos: deletedIdx}, history.CursorSnapshot{})

	f.releaseToken()
	f.rebuildCache()
	f.cur.Clamp(f.root, f.cache)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

/* --- Cut / copy / paste --- */

// NodeCopy deep-clones the current node into the single-slot clipboard,
// refusing for an empty, childless node (for which a plain insert suffices).
func (f *Facade) NodeCopy() int {
	n, _, ok := f.currentNode()
	if !ok {
		return 1
	}
	if n.ChildCount() == 0 && n.Content.LineLength(0) == 0 {
		return 1
	}
	f.clipboard = tree.CloneNode(n)
	return 0
}

// NodeCut copies the current node then deletes it recursively.
func (f *Facade) NodeCut() int {
	if rv := f.NodeCopy(); rv != 0 {
		return rv
	}
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	if f.soleEmptyRoot() {
		return 1
	}
	before := f.cursorSnapshot()
	f.hist.Exec(&history.DeleteNode{Pos: e.Index.Clone(), IsCut: true}, before)
	if f.root.ChildCount() == 0 {
		f.hist.AppendMulti(&history.InsertNode{Pos: e.Index.Clone(), Payload: newEmptyNode(f)}, history.CursorSnapshot{})
	}
	f.releaseToken()
	f.rebuildCache()
	f.cur.Clamp(f.root, f.cache)
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodePasteAbove inserts a clone of the clipboard immediately before the
// current node.
func (f *Facade) NodePasteAbove() int {
	if f.clipboard == nil {
		return 1
	}
	_, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()
	f.hist.Exec(&history.InsertNode{Pos: e.Index.Clone(), Payload: tree.CloneNode(f.clipboard), IsPaste: true}, before)
	f.releaseToken()
	f.rebuildCache()
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}

// NodePasteDefault inserts a clone of the clipboard as a child of the
// current node if it has children, else as a following sibling.
func (f *Facade) NodePasteDefault() int {
	if f.clipboard == nil {
		return 1
	}
	n, e, ok := f.currentNode()
	if !ok {
		return 1
	}
	before := f.cursorSnapshot()

	if n.ChildCount() == 0 {
		if len(e.Index) == 0 {
			return 1
		}
		dst := incLast(e.Index)
		f.hist.Exec(&history.InsertNode{Pos: dst, Payload: tree.CloneNode(f.clipboard), IsPaste: true}, before)
		f.releaseToken()
		f.rebuildCache()
		f.cur.NdNext(f.cache)
	} else {
		dst := withChild(e.Index, 0)
		f.hist.Exec(&history.InsertNode{Pos: dst, Payload: tree.CloneNode(f.clipboard), IsPaste: true}, before)
		f.releaseToken()
		f.rebuildCache()
		f.cur.MvDown(f.root, f.cache, 1)
	}
	f.hist.SetCursorAfter(f.cursorSnapshot())
	return 0
}
