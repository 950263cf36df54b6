package tree

import (
	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/piece"
)

// Index is a tree-index: a sequence of child positions from the root. The
// empty slice addresses the root itself.
type Index []int

// Clone returns a copy of idx that shares no backing array with it.
func (idx Index) Clone() Index {
	out := make(Index, len(idx))
	copy(out, idx)
	return out
}

// Equal reports whether idx and other address the same node.
func (idx Index) Equal(other Index) bool {
	if len(idx) != len(other) {
		return false
	}
	for i := range idx {
		if idx[i] != other[i] {
			return false
		}
	}
	return true
}

// Depth returns len(idx); by convention the root has depth 0 and its direct
// children have depth 1.
func Depth(idx Index) int { return len(idx) }

// Node owns its textual content and an ordered sequence of child nodes.
type Node struct {
	Content  *piece.Table
	Children []*Node
}

// NewEmpty returns the invisible root of a brand-new document: one child,
// itself empty, satisfying the root.children.count >= 1 invariant.
func NewEmpty(a *arena.Arena) *Node {
	root := &Node{Content: piece.New(a)}
	root.Children = append(root.Children, &Node{Content: piece.New(a)})
	return root
}

// NewRoot returns a bare invisible root with no children. Callers that
// populate children themselves (e.g. the parser) use this and must restore
// the root.children.count >= 1 invariant before handing the tree back.
func NewRoot(a *arena.Arena) *Node {
	return &Node{Content: piece.New(a)}
}

// LineCount returns the node's content line count.
func (n *Node) LineCount() int { return n.Content.LineCount() }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.Children) }

// At resolves idx starting from n, returning (nil, false) if any component
// of idx is out of range.
func (n *Node) At(idx Index) (*Node, bool) {
	current := n
	for _, i := range idx {
		if i < 0 || i >= len(current.Children) {
			return nil, false
		}
		current = current.Children[i]
	}
	return current, true
}

// Exists reports whether idx addresses a real node under root.
func Exists(root *Node, idx Index) bool {
	_, ok := root.At(idx)
	return ok
}

// Parent resolves the parent of idx and the child position of idx within
// it. Calling with the root's own (empty) index is an error: the root has
// no parent.
func Parent(root *Node, idx Index) (parent *Node, pos int, ok bool) {
	if len(idx) == 0 {
		return nil, 0, false
	}
	parent, ok = root.At(idx[:len(idx)-1])
	if !ok {
		return nil, 0, false
	}
	return parent, idx[len(idx)-1], true
}

// ReorderChildren rotates the contiguous range of parent's children between
// src and dst so the child originally at src ends up at dst, preserving the
// relative order of everything it passed over. Equivalent to a detach
// followed by an insert when expressed against the same parent, but done as
// a single slice rotation to avoid a spurious allocation.
func ReorderChildren(parent *Node, src, dst int) {
	if src == dst {
		return
	}
	c := parent.Children
	moved := c[src]
	if src < dst {
		copy(c[src:dst], c[src+1:dst+1])
	} else {
		copy(c[dst+1:src+1], c[dst:src])
	}
	c[dst] = moved
}

// InsertChild inserts child as parent's new child at position at.
func InsertChild(parent *Node, at int, child *Node) {
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[at+1:], parent.Children[at:])
	parent.Children[at] = child
}

// DetachChild removes and returns parent's child at position at.
func DetachChild(parent *Node, at int) *Node {
	child := parent.Children[at]
	parent.Children = append(parent.Children[:at], parent.Children[at+1:]...)
	return child
}

// MoveNode detaches the node at src and re-inserts it at dst. dst is
// interpreted against the tree as it stands immediately after the detach
// (i.e. the same convention std::vector insert uses: dst's parent/position
// are resolved post-detach).
func MoveNode(root *Node, src, dst Index) {
	srcParent, srcPos, _ := Parent(root, src)
	node := DetachChild(srcParent, srcPos)

	dstParent, ok := root.At(dst[:len(dst)-1])
	if !ok {
		dstParent = srcParent
	}
	dstPos := dst[len(dst)-1]
	if dstPos > len(dstParent.Children) {
		dstPos = len(dstParent.Children)
	}
	InsertChild(dstParent, dstPos, node)
}

// UnmoveNode is MoveNode's inverse: moving the node currently at dst back
// to src.
func UnmoveNode(root *Node, dst, src Index) {
	MoveNode(root, dst, src)
}

// CloneNode deep-clones a subtree, including its piece-table content. Piece
// tables are cloned by flattening to strings and re-appending into the same
// arena (see piece.Table.Clone), which is what lets a clipboard clone
// outlive deletion-then-undo of its source.
func CloneNode(n *Node) *Node {
	clone := &Node{Content: n.Content.Clone()}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = CloneNode(c)
		}
	}
	return clone
}
