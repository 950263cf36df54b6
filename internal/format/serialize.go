package format

import (
	"strings"

	"github.com/wildp/treenote/internal/engine/tree"
)

// Serialize renders root back into the on-disk tree-drawing text format, a
// pre-order walk that reuses tree.IndentInfoByIndex and
// tree.MakeLineStringDefault so the serializer draws exactly the prefixes
// the parser recognizes.
func Serialize(root *tree.Node) string {
	var sb strings.Builder

	var walk func(node *tree.Node, idx tree.Index)
	walk = func(node *tree.Node, idx tree.Index) {
		lines := node.LineCount()
		if lines == 0 {
			lines = 1
		}
		for line := 0; line < lines; line++ {
			ii := tree.IndentInfoByIndex(root, idx, line > 0)
			sb.WriteString(tree.MakeLineStringDefault(ii))
			if node.LineCount() > 0 {
				sb.WriteString(node.Content.ToStr(line))
			}
			sb.WriteByte('\n')
		}
		for i, child := range node.Children {
			walk(child, append(idx.Clone(), i))
		}
	}

	for i, child := range root.Children {
		walk(child, tree.Index{i})
	}
	return sb.String()
}
