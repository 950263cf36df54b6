package format

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/piece"
	"github.com/wildp/treenote/internal/engine/tree"
)

// DefaultTabWidth is the indent-column width scanIndent assumes when a host
// doesn't override it via Parse's tabWidth parameter.
const DefaultTabWidth = 4

// noBreakSpace is treated identically to an ASCII space in an indent column,
// matching terminals that render a blank column as U+00A0 rather than 0x20.
const noBreakSpace = ' '

// scanState is the column-scanner's state, mirroring the original parser's
// state machine exactly (one state transition per rune consumed).
type scanState int8

const (
	stStart scanState = iota
	stVLine
	stVLineCont
	stVAndRight
	stHLine
	stUnwindAll
	stUnwindOne
	stUnwindPartial
	stEnd
	stError
)

// scanIndent consumes the leading indent-prefix of a line of runes, returning
// the indent level (the prefix width in columns divided by tabWidth, rounded
// to the nearest level),
// whether a branch marker (├ or └) was seen, and the rune index at which
// actual content begins. prevIndent anchors the "continuation" decision: a
// vertical-bar run past the previous line's indent width belongs to content,
// not to the prefix.
func scanIndent(runes []rune, prevIndent, tabWidth int) (indent int, marker bool, contentStart int) {
	column := 0
	i := 0
	var c rune
	st := stStart

	for st != stEnd {
		switch st {
		case stStart, stVLine, stVLineCont, stVAndRight, stHLine:
			if i >= len(runes) {
				st = stEnd
				continue
			}
			c = runes[i]
			i++
			column++
		}

		if st == stVLine && column > prevIndent*tabWidth {
			st = stVLineCont
		}

		switch st {
		case stStart:
			switch {
			case c == ' ' || c == noBreakSpace:
			case c == '│':
				st = stVLine
			case c == '├' || c == '└':
				st = stVAndRight
			case c == '─':
				st = stError
			default:
				st = stUnwindOne
			}
		case stVLine:
			switch {
			case c == ' ' || c == noBreakSpace || c == '│':
			case c == '├' || c == '└':
				st = stVAndRight
			default:
				st = stError
			}
		case stVLineCont:
			switch {
			case c == ' ' || c == noBreakSpace:
			case c == '├' || c == '└':
				st = stVAndRight
			default:
				st = stUnwindPartial
			}
		case stVAndRight:
			marker = true
			switch {
			case c == '─':
				st = stHLine
			case c == ' ' || c == noBreakSpace:
				st = stEnd
			default:
				st = stError
			}
		case stHLine:
			marker = true
			switch {
			case c == '─':
			case c == ' ' || c == noBreakSpace:
				st = stEnd
			case c == '├' || c == '└' || c == '─':
				st = stError
			default:
				st = stUnwindOne
			}
		case stUnwindAll:
			i -= column
			column = 0
			st = stEnd
		case stUnwindOne:
			i--
			column--
			st = stEnd
		case stUnwindPartial:
			for column > prevIndent*tabWidth {
				i--
				column--
			}
			st = stEnd
		case stError:
			st = stUnwindAll
		}
	}

	indent = (column + tabWidth/2) / tabWidth
	return indent, marker, i
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Parse reads text in the on-disk tree-drawing format into a document tree
// backed by a, using DefaultTabWidth to interpret indent columns. filename is
// NFC-normalized and stored as the invisible root's own content, line 0, per
// the title-line convention.
func Parse(a *arena.Arena, text string, filename string) *tree.Node {
	return ParseWithTabWidth(a, text, filename, DefaultTabWidth)
}

// ParseWithTabWidth is Parse with the indent-column width overridden, for
// hosts that configure a non-default tab width.
func ParseWithTabWidth(a *arena.Arena, text string, filename string, tabWidth int) *tree.Node {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	root := tree.NewRoot(a)
	root.Content = piece.NewFromText(a, norm.NFC.String(filename))

	stack := []*tree.Node{root}
	prevIndent := 0

	for _, line := range splitLines(text) {
		runes := []rune(line)
		indent, marker, contentStart := scanIndent(runes, prevIndent, tabWidth)
		rest := string(runes[contentStart:])

		if !marker && indent != 0 {
			top := stack[len(stack)-1]
			top.Content.AppendLine(rest)
		} else {
			depth := indent
			if depth < 1 {
				depth = 1
			}
			for len(stack) > depth {
				stack = stack[:len(stack)-1]
			}
			for len(stack) < depth {
				parent := stack[len(stack)-1]
				child := &tree.Node{Content: piece.New(a)}
				tree.InsertChild(parent, len(parent.Children), child)
				stack = append(stack, child)
			}

			parent := stack[len(stack)-1]
			child := &tree.Node{Content: piece.NewFromText(a, rest)}
			tree.InsertChild(parent, len(parent.Children), child)
			stack = append(stack, child)
		}

		prevIndent = indent
	}

	for len(root.Children) > 0 {
		last := root.Children[len(root.Children)-1]
		if len(last.Children) == 0 && last.Content.Empty() {
			root.Children = root.Children[:len(root.Children)-1]
		} else {
			break
		}
	}
	if len(root.Children) == 0 {
		root.Children = append(root.Children, &tree.Node{Content: piece.New(a)})
	}

	return root
}
