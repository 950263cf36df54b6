package engine

import (
	"os"
	"path/filepath"

	"github.com/wildp/treenote/internal/autosave"
	"github.com/wildp/treenote/internal/engine/arena"
	"github.com/wildp/treenote/internal/engine/cache"
	"github.com/wildp/treenote/internal/engine/cursor"
	"github.com/wildp/treenote/internal/engine/history"
	"github.com/wildp/treenote/internal/engine/tree"
	"github.com/wildp/treenote/internal/format"
)

// Facade is the editor's whole external surface: document lifecycle,
// cursor navigation, line/tree editing, undo/redo, and the read-only
// rendering accessors a host uses to draw the flattened tree.
type Facade struct {
	arena *arena.Arena
	root  *tree.Node
	cache *cache.Cache
	cur   *cursor.State
	hist  *history.Stack

	clipboard *tree.Node
	path      string

	activeNode  tree.Index
	activeValid bool

	tabWidth    int
	autosaveDir string
}

// New is an alias for MakeEmpty, the facade's zero-document starting point.
func New(opts ...Option) *Facade { return MakeEmpty(opts...) }

// MakeEmpty returns a brand-new, untitled document: one invisible root with
// a single empty child. opts carries host-tunable knobs (see WithTabWidth,
// WithAutosaveDir) sourced from internal/config.
func MakeEmpty(opts ...Option) *Facade {
	a := arena.New()
	root := tree.NewEmpty(a)
	f := &Facade{
		arena:       a,
		root:        root,
		cur:         cursor.New(),
		hist:        history.NewStack(root),
		tabWidth:    DefaultTabWidth,
		autosaveDir: DefaultAutosaveDir,
	}
	applyOptions(f, opts)
	f.rebuildCache()
	return f
}

func countStats(root *tree.Node) Stats {
	var s Stats
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		for _, c := range n.Children {
			s.Nodes++
			lc := c.LineCount()
			if lc == 0 {
				lc = 1
			}
			s.Lines += lc
			walk(c)
		}
	}
	walk(root)
	return s
}

// LoadFile replaces the current document with the one parsed from path.
func (f *Facade) LoadFile(path string) (Status, Stats) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusDoesNotExist, Stats{}
		}
		return StatusUnknownError, Stats{}
	}
	if info.IsDir() {
		return StatusIsDirectory, Stats{}
	}
	if !info.Mode().IsRegular() {
		return StatusIsDeviceFile, Stats{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return StatusIsUnreadable, Stats{}
		}
		return StatusUnknownError, Stats{}
	}

	a := arena.New()
	root := format.ParseWithTabWidth(a, string(data), filepath.Base(path), f.tabWidth)

	f.arena = a
	f.root = root
	f.path = path
	f.clipboard = nil
	f.cur = cursor.New()
	f.hist = history.NewStack(root)
	f.activeValid = false
	f.rebuildCache()

	return StatusNone, countStats(root)
}

// SaveFile serializes the document to path, or to the path last used to
// load/save if path is empty.
func (f *Facade) SaveFile(path string) (Status, Stats) {
	if path == "" {
		path = f.path
	}
	if path == "" {
		return StatusUnknownError, Stats{}
	}

	text := format.Serialize(f.root)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		if os.IsPermission(err) {
			return StatusIsUnwritable, Stats{}
		}
		return StatusUnknownError, Stats{}
	}

	f.path = path
	f.hist.MarkSaved()
	return StatusNone, countStats(f.root)
}

// CloseFile discards the current document, resetting the facade to a fresh
// empty one. The host-tunable knobs set at construction (tab width,
// autosave directory) survive the reset; they describe the host, not the
// document.
func (f *Facade) CloseFile() {
	tabWidth, autosaveDir := f.tabWidth, f.autosaveDir
	*f = *MakeEmpty()
	f.tabWidth, f.autosaveDir = tabWidth, autosaveDir
}

// Modified reports whether the document differs from its last save point.
func (f *Facade) Modified() bool { return f.hist.Modified() }

// Serialize renders the document to its on-disk text form without writing
// it anywhere, for hosts that want to inspect or pipe it directly.
func (f *Facade) Serialize() string { return format.Serialize(f.root) }

// SaveToTmp writes a best-effort snapshot to an autosave path derived from
// the process id, resolving conflicts with a bounded numeric suffix. On
// success *outPath holds the path written. The directory is the configured
// autosaveDir (see WithAutosaveDir) if one was set, falling back to the open
// document's own directory, or "." for an untitled one.
func (f *Facade) SaveToTmp(outPath *string) Status {
	dir := f.autosaveDir
	if dir == "" {
		dir = "."
		if f.path != "" {
			dir = filepath.Dir(f.path)
		}
	}

	path, err := autosave.Save(dir, format.Serialize(f.root))
	if err != nil {
		return StatusUnknownError
	}
	*outPath = path
	return StatusNone
}

func (f *Facade) rebuildCache() {
	f.cache = cache.Build(f.root)
	f.cur.Clamp(f.root, f.cache)
}

// releaseToken drops the active-node compaction token, called on every
// navigation, undo, redo, or structural change.
func (f *Facade) releaseToken() {
	f.activeValid = false
}

func (f *Facade) tokenHeld(idx tree.Index) bool {
	return f.activeValid && f.activeNode.Equal(idx)
}

func (f *Facade) setToken(idx tree.Index) {
	f.activeNode = idx.Clone()
	f.activeValid = true
}

// currentNode resolves the node and cache entry at the cursor's row.
func (f *Facade) currentNode() (*tree.Node, cache.Entry, bool) {
	if f.cache.Len() == 0 {
		return nil, cache.Entry{}, false
	}
	e := f.cache.At(f.cur.Y)
	n, ok := f.root.At(e.Index)
	return n, e, ok
}

func (f *Facade) cursorSnapshot() history.CursorSnapshot {
	return history.CursorSnapshot{
		Y:             f.cur.Y,
		X:             f.cur.X,
		DepthIntended: f.cur.DepthIntended,
		IndexIntended: f.cur.IndexIntended.Clone(),
		MoveNodeDepth: f.cur.MoveNodeDepth,
	}
}

func (f *Facade) restoreCursorSnapshot(s history.CursorSnapshot) {
	f.cur.Y, f.cur.X = s.Y, s.X
	f.cur.DepthIntended = s.DepthIntended
	f.cur.IndexIntended = s.IndexIntended.Clone()
	f.cur.MoveNodeDepth = s.MoveNodeDepth
	f.cur.Clamp(f.root, f.cache)
}
