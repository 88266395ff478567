// Package menu ties the candidate list, the selection and the redraw engine
// into the object a line editor drives.
package menu

import (
	"tmenu/internal/redraw"
	"tmenu/internal/selection"
)

// Menu owns the selection state shared by the redraw hook and the
// navigation commands
type Menu struct {
	candidates []string
	sel        *selection.State
	engine     *redraw.Engine
}

// New creates a menu over candidates drawing onto surface
func New(surface redraw.Surface, candidates []string) *Menu {
	sel := selection.New()
	return &Menu{
		candidates: candidates,
		sel:        sel,
		engine:     redraw.NewEngine(surface, candidates, sel),
	}
}

// Redraw is the editor's display hook
func (m *Menu) Redraw(s redraw.Snapshot) {
	m.engine.Redraw(s)
}

// Advance highlights the count-th next match
func (m *Menu) Advance(count int) {
	m.sel.Advance(count)
}

// Retreat highlights the count-th previous match
func (m *Menu) Retreat(count int) {
	m.sel.Retreat(count)
}

// Selected returns the highlighted candidate, if any match is on screen
func (m *Menu) Selected() (string, bool) {
	text, shown := m.engine.StripText()
	if !shown || m.sel.MatchCount() == 0 {
		return "", false
	}
	matches := redraw.Filter(m.candidates, text)
	i := m.sel.Selected()
	if i >= len(matches) {
		return "", false
	}
	return matches[i], true
}

// Selection exposes the selection state
func (m *Menu) Selection() *selection.State {
	return m.sel
}

// Clear blanks the selector line before the process prints its result
func (m *Menu) Clear() {
	m.engine.Clear()
}
