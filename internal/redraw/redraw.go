// Package redraw lays out the selector line: the typed text followed by a strip
// of matching candidates, redrawn from scratch on every editor change.
package redraw

import "tmenu/internal/selection"

// Snapshot is the line editor state handed to a redraw
type Snapshot struct {
	Text   string
	Cursor int // byte offset into Text
	Mark   int // reserved
	// Prompt is set while the editor asks a sub-question; the candidate strip
	// is not drawn then.
	Prompt string
}

// Len returns the byte length of the text
func (s Snapshot) Len() int {
	return len(s.Text)
}

// Redrawable is the display hook a line editor calls after every change
type Redrawable interface {
	Redraw(s Snapshot)
}

// Surface is the set of terminal operations the engine draws with
type Surface interface {
	WriteString(s string)
	StartOfLine()
	ClearToLineEnd(fallbackWidth int)
	MoveCursorRight()
	EnterHighlight()
	ExitHighlight()
	Dimensions() (cols, rows int)
	Flush()
}

const (
	ellipsis       = "..."
	overflowMarker = " >"
)

// Engine redraws the selector line onto a Surface
type Engine struct {
	surface    Surface
	candidates []string
	sel        *selection.State

	lastText string
	drawn    bool

	// text whose matches are on screen, valid while stripShown
	stripText  string
	stripShown bool
}

// NewEngine creates an engine drawing candidates with sel as the highlight
func NewEngine(surface Surface, candidates []string, sel *selection.State) *Engine {
	return &Engine{
		surface:    surface,
		candidates: candidates,
		sel:        sel,
	}
}

// LastText returns the text of the most recent redraw
func (e *Engine) LastText() string {
	return e.lastText
}

// StripText returns the text the visible candidate strip was filtered with.
// It reports false when no strip is on screen for the current text.
func (e *Engine) StripText() (string, bool) {
	if !e.stripShown || e.stripText != e.lastText {
		return "", false
	}
	return e.stripText, true
}

// Redraw draws s. A change of text since the previous call resets the selection.
func (e *Engine) Redraw(s Snapshot) {
	if !e.drawn || s.Text != e.lastText {
		e.sel.Reset()
		e.lastText = s.Text
		e.drawn = true
	}

	width, _ := e.surface.Dimensions()

	e.surface.StartOfLine()
	e.surface.ClearToLineEnd(width)

	if s.Prompt != "" {
		e.surface.WriteString(s.Prompt)
		e.surface.WriteString(" ")
		width -= len(s.Prompt) + 1
	}

	if s.Len() > width {
		n := width - len(ellipsis)
		if n < 0 {
			n = 0
		}
		e.surface.WriteString(s.Text[:n])
		e.surface.WriteString(ellipsis)
		e.stripShown = false
		e.surface.Flush()
		return
	}

	e.surface.WriteString(s.Text)

	if s.Prompt == "" {
		e.sel.SetMatchCount(e.drawStrip(width, s.Text))
		e.stripText = s.Text
		e.stripShown = true
	}

	e.surface.StartOfLine()
	for i := 0; i < s.Cursor; i++ {
		e.surface.MoveCursorRight()
	}
	e.surface.Flush()
}

// drawStrip writes the candidate strip after text and returns the number of
// matches drawn. A candidate cut off by the width is not counted.
func (e *Engine) drawStrip(width int, text string) int {
	n := len(text)
	offset := width / 5
	if offset < 1 {
		offset = 1
	}
	if n > offset {
		offset = n + 2
	}
	// padding never reaches the last column
	col := n
	for ; col < offset && col < width-1; col++ {
		e.surface.WriteString(" ")
	}

	total := offset + n
	selected := e.sel.Selected()
	matched := 0
	for _, c := range e.candidates {
		if total >= width {
			break
		}
		if !Matches(c, text) {
			continue
		}

		if matched == selected {
			e.surface.EnterHighlight()
		}

		total += len(c) + 2
		if total > width-2 {
			if col+len(overflowMarker) <= width {
				e.surface.WriteString(overflowMarker)
			}
			e.surface.ExitHighlight()
			break
		}

		e.surface.WriteString(" " + c + " ")
		col += len(c) + 2
		e.surface.ExitHighlight()
		matched++
	}
	return matched
}

// Clear blanks the selector line, leaving the cursor at its start
func (e *Engine) Clear() {
	width, _ := e.surface.Dimensions()
	e.surface.StartOfLine()
	e.surface.ClearToLineEnd(width)
	e.surface.StartOfLine()
	e.surface.Flush()
}
