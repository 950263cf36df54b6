package history

import "github.com/wildp/treenote/internal/engine/tree"

// Kind classifies a document-level command for naming purposes.
type Kind int8

const (
	KindNone Kind = iota
	KindMoveNode
	KindInsertNode
	KindDeleteNode
	KindCutNode
	KindPasteNode
	KindEditContents
)

func (k Kind) String() string {
	switch k {
	case KindMoveNode:
		return "move_node"
	case KindInsertNode:
		return "insert_node"
	case KindDeleteNode:
		return "delete_node"
	case KindCutNode:
		return "cut_node"
	case KindPasteNode:
		return "paste_node"
	case KindEditContents:
		return "edit_contents"
	default:
		return "none"
	}
}

// Cmd is a reversible document-level command.
type Cmd interface {
	Invoke(root *tree.Node)
	InvokeReverse(root *tree.Node)
	Kind() Kind
}

// MoveNode relocates the node at Src to Dst; its reverse moves the node
// found at Dst back to Src. Used directly by reorder_children and composed
// into Multi by the promote/demote/indent facade operations.
type MoveNode struct {
	Src, Dst tree.Index
}

func (c *MoveNode) Kind() Kind { return KindMoveNode }

func (c *MoveNode) Invoke(root *tree.Node) { tree.MoveNode(root, c.Src, c.Dst) }

func (c *MoveNode) InvokeReverse(root *tree.Node) { tree.UnmoveNode(root, c.Dst, c.Src) }

// InsertNode inserts Payload as a new child at Pos. IsPaste distinguishes
// node_paste_* from a plain node_insert_* for naming purposes only.
type InsertNode struct {
	Pos     tree.Index
	Payload *tree.Node
	IsPaste bool
}

func (c *InsertNode) Kind() Kind {
	if c.IsPaste {
		return KindPasteNode
	}
	return KindInsertNode
}

func (c *InsertNode) Invoke(root *tree.Node) {
	parent, ok := root.At(c.Pos[:len(c.Pos)-1])
	if !ok {
		return
	}
	tree.InsertChild(parent, c.Pos[len(c.Pos)-1], c.Payload)
}

func (c *InsertNode) InvokeReverse(root *tree.Node) {
	parent, ok := root.At(c.Pos[:len(c.Pos)-1])
	if !ok {
		return
	}
	c.Payload = tree.DetachChild(parent, c.Pos[len(c.Pos)-1])
}

// DeleteNode detaches the node at Pos, storing it in Deleted so undo can
// restore it. IsCut distinguishes node_cut from a plain node_delete_* for
// naming purposes only; the actual clipboard snapshot is taken by the
// facade before this command runs.
type DeleteNode struct {
	Pos     tree.Index
	Deleted *tree.Node
	IsCut   bool
}

func (c *DeleteNode) Kind() Kind {
	if c.IsCut {
		return KindCutNode
	}
	return KindDeleteNode
}

func (c *DeleteNode) Invoke(root *tree.Node) {
	parent, ok := root.At(c.Pos[:len(c.Pos)-1])
	if !ok {
		return
	}
	c.Deleted = tree.DetachChild(parent, c.Pos[len(c.Pos)-1])
}

func (c *DeleteNode) InvokeReverse(root *tree.Node) {
	parent, ok := root.At(c.Pos[:len(c.Pos)-1])
	if !ok {
		return
	}
	tree.InsertChild(parent, c.Pos[len(c.Pos)-1], c.Deleted)
}

// EditContents marks that the node at Pos had a text edit recorded directly
// in its own piece-table history; invoking/reversing this command simply
// forwards to that piece table's own Redo/Undo.
type EditContents struct {
	Pos tree.Index
}

func (c *EditContents) Kind() Kind { return KindEditContents }

func (c *EditContents) Invoke(root *tree.Node) {
	if n, ok := root.At(c.Pos); ok {
		n.Content.Redo()
	}
}

func (c *EditContents) InvokeReverse(root *tree.Node) {
	if n, ok := root.At(c.Pos); ok {
		n.Content.Undo()
	}
}

// Multi groups several document-level commands so they invoke/reverse
// atomically and in the correct order. Its Kind and display name are taken
// from its first sub-command.
type Multi struct {
	Cmds []Cmd
}

func (c *Multi) Kind() Kind {
	if len(c.Cmds) == 0 {
		return KindNone
	}
	return c.Cmds[0].Kind()
}

func (c *Multi) Invoke(root *tree.Node) {
	for _, sub := range c.Cmds {
		sub.Invoke(root)
	}
}

func (c *Multi) InvokeReverse(root *tree.Node) {
	for i := len(c.Cmds) - 1; i >= 0; i-- {
		c.Cmds[i].InvokeReverse(root)
	}
}
