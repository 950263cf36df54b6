package main

import (
	"os"

	"github.com/wildp/treenote/internal/engine"
	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/macro"
)

// macroHooks adapts doc's entry-based render accessors (which key off a
// cache.Entry resolved from GetLCRange) to the row-int shape macro.Hooks
// expects, so Lua scripts address rows the same way the status line does.
func macroHooks(doc *engine.Facade) macro.Hooks {
	entryAt := func(row int) (cache.Entry, bool) {
		es := doc.GetLCRange(row, 1)
		if len(es) == 0 {
			return cache.Entry{}, false
		}
		return es[0], true
	}

	return macro.Hooks{
		// node_count reports display rows: a node with k content lines
		// counts k times.
		NodeCount: doc.RowCount,
		EntryLineLength: func(row int) int {
			e, ok := entryAt(row)
			if !ok {
				return 0
			}
			return doc.GetEntryLineLength(e)
		},
		EntryContent: func(row, begin, length int) string {
			e, ok := entryAt(row)
			if !ok {
				return ""
			}
			return doc.GetEntryContent(e, begin, length)
		},
		EntryPrefix: func(row int) string {
			e, ok := entryAt(row)
			if !ok {
				return ""
			}
			return doc.GetEntryPrefix(e)
		},
	}
}

// runMacroScript loads and executes the Lua script at path against doc,
// read-only, before the interactive session starts.
func runMacroScript(doc *engine.Facade, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	rt := macro.New(macroHooks(doc))
	defer rt.Close()
	return rt.RunString(string(data))
}
