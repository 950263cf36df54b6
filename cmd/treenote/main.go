// Package main is the entry point for the TreeNote editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/encoding"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/wildp/treenote/internal/config"
	"github.com/wildp/treenote/internal/engine"
	"github.com/wildp/treenote/internal/tui"
)

func init() {
	// Registers legacy (non-UTF-8) terminal encodings with tcell, for
	// hosts whose locale isn't already a UTF-8 one.
	encoding.Register()
}

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("treenote %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = config.Default()
	}

	doc := engine.New(
		engine.WithTabWidth(cfg.TabWidth),
		engine.WithAutosaveDir(cfg.AutosaveDir),
	)
	if opts.path != "" {
		if status, _ := doc.LoadFile(opts.path); status != engine.StatusNone && status != engine.StatusDoesNotExist {
			fmt.Fprintf(os.Stderr, "treenote: cannot open %s: %s\n", opts.path, status)
			return 1
		}
	}

	if opts.scriptPath != "" {
		if err := runMacroScript(doc, opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "treenote: macro script: %v\n", err)
			return 1
		}
	}

	// A non-interactive stdout (piped or redirected) gets the rendered
	// text instead of the tcell screen.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(doc.Serialize())
		return 0
	}

	scr, err := tui.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "treenote: %v\n", err)
		return 1
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "treenote: %v\n", err)
		return 1
	}
	defer scr.Shutdown()

	loop := newEditLoop(doc, scr, opts.path)
	return loop.run()
}

type cliOptions struct {
	configPath  string
	scriptPath  string
	path        string
	showVersion bool
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the document at startup")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "TreeNote - hierarchical plain-text note editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: treenote [options] [file]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		opts.path = flag.Arg(0)
	}
	return opts
}

// editLoop is the single mutator/single reader driving one Facade, per
// the core's concurrency contract.
type editLoop struct {
	doc    *engine.Facade
	term   *tui.Terminal
	path   string
	topRow int
	status string
	quit   bool
}

func newEditLoop(doc *engine.Facade, term *tui.Terminal, path string) *editLoop {
	return &editLoop{doc: doc, term: term, path: path, status: "ready"}
}

func (l *editLoop) run() int {
	l.term.Render(l.doc, l.topRow, l.status)
	for !l.quit {
		ev := l.term.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
		case *tcell.EventKey:
			l.handleKey(ev)
		}
		l.scrollToCursor()
		l.term.Render(l.doc, l.topRow, l.status)
	}
	return 0
}

func (l *editLoop) scrollToCursor() {
	row, _ := l.doc.CursorPos()
	_, height := l.term.Size()
	bodyHeight := height - 1
	if bodyHeight <= 0 {
		return
	}
	if row < l.topRow {
		l.topRow = row
	}
	if row >= l.topRow+bodyHeight {
		l.topRow = row - bodyHeight + 1
	}
}

func (l *editLoop) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		l.quit = true
	case tcell.KeyCtrlS:
		l.save()
	case tcell.KeyRune:
		l.doc.LineInsertText(string(ev.Rune()))
	case tcell.KeyEnter:
		l.doc.LineNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		l.doc.LineBackspace()
	case tcell.KeyDelete:
		l.doc.LineDeleteChar()
	case tcell.KeyLeft:
		l.doc.CursorMvLeft(1)
	case tcell.KeyRight:
		l.doc.CursorMvRight(1)
	case tcell.KeyUp:
		l.doc.CursorMvUp(1)
	case tcell.KeyDown:
		l.doc.CursorMvDown(1)
	case tcell.KeyHome:
		l.doc.CursorToSOL()
	case tcell.KeyEnd:
		l.doc.CursorToEOL()
	case tcell.KeyCtrlA:
		l.doc.CursorToSOF()
	case tcell.KeyCtrlE:
		l.doc.CursorToEOF()
	case tcell.KeyTab:
		l.doc.NodeMoveLowerIndent()
	case tcell.KeyBacktab:
		l.doc.NodeMoveHigherRec()
	case tcell.KeyCtrlU:
		l.status = "undo: " + l.doc.Undo()
	case tcell.KeyCtrlR:
		l.status = "redo: " + l.doc.Redo()
	case tcell.KeyCtrlX:
		l.doc.NodeCut()
	case tcell.KeyCtrlC:
		l.doc.NodeCopy()
	case tcell.KeyCtrlV:
		l.doc.NodePasteDefault()
	}
}

func (l *editLoop) save() {
	status, stats := l.doc.SaveFile(l.path)
	if status != engine.StatusNone {
		l.status = fmt.Sprintf("save failed: %s", status)
		return
	}
	l.status = fmt.Sprintf("saved (%d nodes, %d lines)", stats.Nodes, stats.Lines)
}
