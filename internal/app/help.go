package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"tmenu/internal/editor"
)

// usage renders the flag summary and the key bindings
func usage(fs *pflag.FlagSet, keys editor.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = descStyle

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("usage: %s [-tbT] [-c path] < candidates", progName)))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Options"))
	b.WriteString("\n")
	b.WriteString(fs.FlagUsages())
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(h.View(keys))
	b.WriteString("\n")
	return b.String()
}
