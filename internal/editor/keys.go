package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Bindings lists the key strings bound to each command. An empty list keeps
// the default.
type Bindings struct {
	Advance        []string
	Retreat        []string
	Accept         []string
	AcceptSelected []string
	Abort          []string
	Interrupt      []string
	EOF            []string
}

// DefaultBindings returns the stock emacs-style bindings.
// ctrl+j sits next to enter for terminals that send NL for the return key.
func DefaultBindings() Bindings {
	return Bindings{
		Advance:        []string{"alt+ctrl+f", "tab", "ctrl+n", "down"},
		Retreat:        []string{"alt+ctrl+b", "shift+tab", "ctrl+p", "up"},
		Accept:         []string{"enter", "ctrl+j"},
		AcceptSelected: []string{"alt+enter", "alt+ctrl+j"},
		Abort:          []string{"esc"},
		Interrupt:      []string{"ctrl+c"},
		EOF:            []string{"ctrl+d"},
	}
}

// KeyMap holds the selector commands. Everything else goes to the text input.
type KeyMap struct {
	Advance        key.Binding
	Retreat        key.Binding
	Accept         key.Binding
	AcceptSelected key.Binding
	Abort          key.Binding
	Interrupt      key.Binding
	EOF            key.Binding
}

// NewKeyMap builds a key map from b, filling empty entries from DefaultBindings
func NewKeyMap(b Bindings) KeyMap {
	d := DefaultBindings()
	return KeyMap{
		Advance:        binding(b.Advance, d.Advance, "next candidate"),
		Retreat:        binding(b.Retreat, d.Retreat, "previous candidate"),
		Accept:         binding(b.Accept, d.Accept, "accept typed text"),
		AcceptSelected: binding(b.AcceptSelected, d.AcceptSelected, "accept highlighted candidate"),
		Abort:          binding(b.Abort, d.Abort, "abort"),
		Interrupt:      binding(b.Interrupt, d.Interrupt, "interrupt"),
		EOF:            binding(b.EOF, d.EOF, "end input (empty line)"),
	}
}

// DefaultKeyMap returns NewKeyMap(DefaultBindings())
func DefaultKeyMap() KeyMap {
	return NewKeyMap(DefaultBindings())
}

func binding(keys, fallback []string, desc string) key.Binding {
	if len(keys) == 0 {
		keys = fallback
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Retreat, k.AcceptSelected, k.Accept}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Retreat},
		{k.Accept, k.AcceptSelected},
		{k.Abort, k.Interrupt, k.EOF},
	}
}
