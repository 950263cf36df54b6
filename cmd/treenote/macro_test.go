package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine"
)

func TestMacroHooksNodeCountAndContent(t *testing.T) {
	doc := engine.New()
	doc.LineInsertText("hello")
	hooks := macroHooks(doc)

	assert.Equal(t, doc.RowCount(), hooks.NodeCount())
	assert.Equal(t, 5, hooks.EntryLineLength(0))
	assert.Equal(t, "hello", hooks.EntryContent(0, 0, 5))
}

func TestMacroHooksOutOfRangeRowIsSafe(t *testing.T) {
	doc := engine.New()
	hooks := macroHooks(doc)

	assert.Equal(t, 0, hooks.EntryLineLength(99))
	assert.Equal(t, "", hooks.EntryContent(99, 0, 1))
	assert.Equal(t, "", hooks.EntryPrefix(99))
}

func TestRunMacroScriptExecutesAgainstDocument(t *testing.T) {
	doc := engine.New()
	doc.LineInsertText("first line")

	dir := t.TempDir()
	script := filepath.Join(dir, "count.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
		assert(treenote.node_count() == 1)
		assert(treenote.entry_content(0, 0, 10) == "first line")
	`), 0o644))

	require.NoError(t, runMacroScript(doc, script))
}

func TestRunMacroScriptMissingFile(t *testing.T) {
	doc := engine.New()
	err := runMacroScript(doc, filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
