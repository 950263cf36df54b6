package tree

// LineMode classifies one prefix column of a rendered row.
type LineMode int8

const (
	Blank LineMode = iota // "    "
	Line                  // "│   "
	Entry                 // "├── "
	Last                  // "└── "
)

// IndentInfo is the sequence of prefix columns for one display row, one
// entry per ancestor below the root plus the row's own branch column.
type IndentInfo []LineMode

// MakeLineStringDefault renders ii using the default box-drawing glyphs.
func MakeLineStringDefault(ii IndentInfo) string {
	result := make([]byte, 0, len(ii)*4)
	for _, level := range ii {
		switch level {
		case Blank:
			result = append(result, "    "...)
		case Line:
			result = append(result, "│   "...)
		case Entry:
			result = append(result, "├── "...)
		case Last:
			result = append(result, "└── "...)
		}
	}
	return string(result)
}

// IndentInfoByIndex computes the prefix columns for the row addressed by
// idx: one column per ancestor (Line if that ancestor has later siblings,
// Blank if it's the last child of its parent), plus a final column for the
// node itself. cont selects the continuation-line variant (used for a
// multi-line node's second and later display rows), which never shows a
// branch glyph in that final column, only Line/Blank.
//
// idx must have depth >= 1 (the root itself is never rendered).
func IndentInfoByIndex(root *Node, idx Index, cont bool) IndentInfo {
	if len(idx) < 1 {
		return nil
	}

	result := make(IndentInfo, 0, len(idx))
	current := root
	for _, i := range idx[:len(idx)-1] {
		if i >= len(current.Children) {
			return nil
		}
		if i < len(current.Children)-1 {
			result = append(result, Line)
		} else {
			result = append(result, Blank)
		}
		current = current.Children[i]
	}

	last := idx[len(idx)-1]
	if last >= len(current.Children) {
		return nil
	}
	isLast := last == len(current.Children)-1

	switch {
	case !cont && !isLast:
		result = append(result, Entry)
	case !cont && isLast:
		result = append(result, Last)
	case cont && isLast:
		result = append(result, Blank)
	default:
		result = append(result, Line)
	}
	return result
}
