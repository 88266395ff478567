// Package editor is the line editor driving the selector: a bubbletea model
// wrapped around a text input, with the renderer replaced by the redraw hook.
package editor

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tmenu/internal/redraw"
)

// maxArg caps the numeric argument
const maxArg = 1000000

// Commands is what the editor needs from the selector
type Commands interface {
	redraw.Redrawable
	Advance(count int)
	Retreat(count int)
	Selected() (string, bool)
}

// Outcome says how editing ended
type Outcome int

const (
	Editing     Outcome = iota // still running
	Accepted                   // a line was accepted
	EndOfInput                 // eof on an empty line
	Aborted                    // abort key
	Interrupted                // interrupt key
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case EndOfInput:
		return "end of input"
	case Aborted:
		return "aborted"
	case Interrupted:
		return "interrupted"
	default:
		return "editing"
	}
}

type redrawMsg struct{}

// Model is the bubbletea model of the line editor
type Model struct {
	input textinput.Model
	keys  KeyMap
	cmds  Commands

	// numeric argument being typed, shown as a prompt
	arg    int
	argSet bool

	outcome Outcome
	result  string
}

// New creates an editor calling cmds for display and navigation
func New(cmds Commands, keys KeyMap) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return Model{
		input: ti,
		keys:  keys,
		cmds:  cmds,
	}
}

// Init schedules the first draw
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return redrawMsg{} }
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg, redrawMsg:
		m.redraw()
		return m, nil
	}

	// paste results and other text input messages
	before := m.Snapshot()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.Snapshot() != before {
		m.redraw()
	}
	return m, cmd
}

// View is unused; drawing happens in the redraw hook
func (m Model) View() string {
	return ""
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d, ok := m.argDigit(msg); ok {
		if m.argSet && m.arg*10+d <= maxArg {
			m.arg = m.arg*10 + d
		} else if !m.argSet {
			m.arg, m.argSet = d, true
		}
		m.redraw()
		return m, nil
	}

	count := m.takeArg()
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Advance):
		m.cmds.Advance(count)
	case key.Matches(msg, m.keys.Retreat):
		m.cmds.Retreat(count)
	case key.Matches(msg, m.keys.Accept):
		return m.finish(Accepted, m.input.Value())
	case key.Matches(msg, m.keys.AcceptSelected):
		c, ok := m.cmds.Selected()
		if !ok {
			break
		}
		m.input.SetValue(c)
		m.input.CursorEnd()
		return m.finish(Accepted, c)
	case key.Matches(msg, m.keys.Abort):
		return m.finish(Aborted, "")
	case key.Matches(msg, m.keys.Interrupt):
		return m.finish(Interrupted, "")
	case key.Matches(msg, m.keys.EOF) && m.input.Value() == "":
		return m.finish(EndOfInput, "")
	default:
		for i := 0; i < count; i++ {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.redraw()
	return m, tea.Batch(cmds...)
}

// argDigit reports whether msg extends the numeric argument: alt+digit starts
// one, plain digits continue it.
func (m Model) argDigit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' || !(msg.Alt || m.argSet) {
		return 0, false
	}
	return int(r - '0'), true
}

// takeArg consumes the numeric argument, returning at least one
func (m *Model) takeArg() int {
	count := 1
	if m.argSet && m.arg > 0 {
		count = m.arg
	}
	m.arg, m.argSet = 0, false
	return count
}

func (m Model) finish(o Outcome, result string) (tea.Model, tea.Cmd) {
	m.outcome = o
	m.result = result
	log.Printf("editor finished: %s", o)
	return m, tea.Quit
}

func (m Model) redraw() {
	m.cmds.Redraw(m.Snapshot())
}

// Snapshot returns the current editor state for the redraw hook
func (m Model) Snapshot() redraw.Snapshot {
	value := m.input.Value()
	runes := []rune(value)
	pos := m.input.Position()
	if pos > len(runes) {
		pos = len(runes)
	}

	s := redraw.Snapshot{
		Text:   value,
		Cursor: len(string(runes[:pos])),
	}
	if m.argSet {
		s.Prompt = fmt.Sprintf("(arg: %d)", m.arg)
	}
	return s
}

// Result returns the accepted line and how editing ended
func (m Model) Result() (string, Outcome) {
	return m.result, m.outcome
}
