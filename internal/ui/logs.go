package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lightbox/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// readLogsCmd reads the log tail off the event loop.
func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogOverlayLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) initLogViewport() {
	m.logView = viewport.New(m.overlayWidth()-6, max(m.layout.height-6, 3))
}

func (m *Model) resizeLogViewport() {
	m.logView.Width = m.overlayWidth() - 6
	m.logView.Height = max(m.layout.height-6, 3)
}

func (m Model) overlayWidth() int {
	return max(min(m.layout.width-2, OverlayMaxWidth), 12)
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	styles := m.theme.Styles()
	if msg.err != nil {
		m.logView.SetContent(styles.DangerText.Render(msg.err.Error()))
		return
	}
	if len(msg.lines) == 0 {
		m.logView.SetContent(styles.MutedText.Render("No log entries in " + truncateMiddle(m.logPath, m.logView.Width-16)))
		return
	}
	width := m.logView.Width
	out := make([]string, 0, len(msg.lines))
	for _, line := range logtail.ParseAll(msg.lines) {
		out = append(out, renderLogLine(line, styles, width))
	}
	m.logView.SetContent(strings.Join(out, "\n"))
	m.logView.GotoBottom()
}

// renderLogLine styles a parsed line: faint stamp, accent component.
func renderLogLine(line logtail.Line, styles Styles, width int) string {
	var parts []string
	used := 0
	if line.Stamp != "" {
		parts = append(parts, styles.FaintText.Render(line.Stamp))
		used += len(line.Stamp) + 1
	}
	if line.Component != "" {
		comp := truncate(line.Component, max(width/3, 8))
		parts = append(parts, styles.AccentText.Render(comp+":"))
		used += lipgloss.Width(comp) + 2
	}
	parts = append(parts, styles.Text.Render(truncate(line.Message, max(width-used, 1))))
	return strings.Join(parts, " ")
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Diagnostics") + "  " +
		styles.MutedText.Render(truncateMiddle(m.logPath, m.overlayWidth()-20))
	body := title + "\n" + styles.FaintText.Render(strings.Repeat("─", max(m.logView.Width, 1))) + "\n" + m.logView.View()
	modal := styles.Overlay.Padding(0, 1).Width(m.overlayWidth() - 2)
	return lipgloss.Place(
		m.layout.width,
		m.layout.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
