// Package tui renders a Facade's flattened document into a tcell screen
// and translates key events into facade calls.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wildp/treenote/internal/engine"
	"github.com/wildp/treenote/internal/engine/cache"
)

// Terminal wraps a tcell.Screen, following the teacher's thin-wrapper
// backend shape (Init/Shutdown/Size) rather than exposing tcell directly
// to the render loop.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a terminal backend over a new tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Terminal) Shutdown() { t.screen.Fini() }

func (t *Terminal) Size() (int, int) { return t.screen.Size() }

func (t *Terminal) PollEvent() tcell.Event { return t.screen.PollEvent() }

var (
	styleText   = tcell.StyleDefault
	stylePrefix = tcell.StyleDefault.Foreground(colorFrom("#6c7086"))
	styleStatus = tcell.StyleDefault.Reverse(true)
)

func colorFrom(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorGray
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Render draws doc's visible rows, starting at topRow, into the screen,
// then positions the hardware cursor, then flushes.
func (t *Terminal) Render(doc *engine.Facade, topRow int, status string) {
	t.screen.Clear()
	width, height := t.screen.Size()
	if height < 2 {
		return
	}

	bodyHeight := height - 1
	entries := doc.GetLCRange(topRow, bodyHeight)
	for row, e := range entries {
		prefix := doc.GetEntryPrefix(e)
		col := drawString(t.screen, 0, row, prefix, stylePrefix)
		content := doc.GetEntryContent(e, 0, doc.GetEntryLineLength(e))
		drawString(t.screen, col, row, content, styleText)
	}

	drawString(t.screen, 0, height-1, padTo(status, width), styleStatus)

	curRow, curCol := doc.CursorPos()
	screenRow := curRow - topRow
	if screenRow >= 0 && screenRow < bodyHeight {
		prefixLen := 0
		if e, ok := entryAt(doc, curRow); ok {
			prefixLen = doc.GetEntryPrefixLength(e)
		}
		t.screen.ShowCursor(prefixLen+curCol, screenRow)
	} else {
		t.screen.HideCursor()
	}

	t.screen.Show()
}

func entryAt(doc *engine.Facade, row int) (cache.Entry, bool) {
	es := doc.GetLCRange(row, 1)
	if len(es) == 0 {
		return cache.Entry{}, false
	}
	return es[0], true
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	return col
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + fmt.Sprintf("%*s", width-len(s), "")
}
