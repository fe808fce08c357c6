package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (m Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{title: "Browse", bindings: []key.Binding{k.Prev, k.Next, k.Close}},
		{title: "Transform", bindings: []key.Binding{k.ZoomIn, k.ZoomOut, k.RotateLeft, k.RotateRight, k.FlipX, k.FlipY, k.Reset}},
		{title: "Move", bindings: []key.Binding{k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.PageUp, k.PageDown}},
		{title: "Output", bindings: []key.Binding{k.Download, k.Print, k.Export}},
		{title: "General", bindings: []key.Binding{k.Logs, k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	sections := m.helpSections()
	for i, section := range sections {
		var rows []string
		for _, binding := range section.bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			rows = append(rows, keyStyle.Render(h.Key)+styles.Text.Render(h.Desc))
		}
		if len(rows) == 0 {
			continue
		}
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		b.WriteString(strings.Join(rows, "\n"))
		b.WriteString("\n")
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	if m.viewer.Options().DisableKeyboardSupport {
		b.WriteString(styles.MutedText.Render("Viewer keys are disabled; use the mouse."))
		b.WriteString("\n")
	}

	modal := styles.Overlay.Width(min(40, max(m.layout.width-4, 10)))
	return lipgloss.Place(
		m.layout.width,
		m.layout.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(strings.TrimRight(b.String(), "\n")),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
