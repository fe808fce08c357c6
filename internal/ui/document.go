package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lightbox/internal/viewer"
)

const (
	docPageMaxCells = 72
	docPageMinRows  = 3
	docPageMaxRows  = 48
)

// docState tracks what the document viewport currently shows so content is
// rebuilt only when pages arrive or the layout changes.
type docState struct {
	source   string
	rendered int
	width    int
	err      bool
}

func (m *Model) initDocViewport() {
	m.docView = viewport.New(m.layout.width, m.layout.canvasRows)
	m.docView.MouseWheelEnabled = false
}

func (m *Model) resizeDocViewport() {
	m.docView.Width = m.layout.width
	m.docView.Height = m.layout.canvasRows
	m.docState = docState{}
}

// refreshDocument rebuilds the page list when it changed and reports the
// scroll position so the next batch loads when the view nears the end.
func (m *Model) refreshDocument() tea.Cmd {
	doc := m.viewer.Document()
	if m.viewer.Display() != viewer.DisplayDocument {
		if m.docState.source != "" {
			m.docState = docState{}
			m.docView.SetContent("")
			m.docView.GotoTop()
		}
		return nil
	}
	next := docState{source: doc.Source(), rendered: doc.Rendered(), width: m.docView.Width, err: doc.Err() != nil}
	if next != m.docState {
		if next.source != m.docState.source {
			m.docView.GotoTop()
		}
		m.docState = next
		m.docView.SetContent(m.renderPages())
	}
	return m.reportScroll()
}

func (m *Model) reportScroll() tea.Cmd {
	l := m.layout
	return m.viewer.DocumentScroll(
		float64(m.docView.YOffset)*l.cellH,
		float64(m.docView.Height)*l.cellH,
		float64(m.docView.TotalLineCount())*l.cellH,
	)
}

// scrollDocument moves the viewport by delta lines (pages when page is set).
func (m *Model) scrollDocument(delta int, page bool) tea.Cmd {
	switch {
	case page && delta > 0:
		m.docView.PageDown()
	case page && delta < 0:
		m.docView.PageUp()
	case delta > 0:
		m.docView.ScrollDown(delta)
	case delta < 0:
		m.docView.ScrollUp(-delta)
	}
	return m.reportScroll()
}

// pageRows is the height of a page block in rows for a page of w x h
// points drawn cols cells wide. Cells are taller than wide, so rows are
// scaled by the cell aspect.
func pageRows(w, h float64, cols int, l layout) int {
	if w <= 0 || h <= 0 {
		return docPageMinRows
	}
	rows := int(math.Round(float64(cols) * (h / w) * (l.cellW / l.cellH)))
	return min(max(rows, docPageMinRows), docPageMaxRows)
}

func (m Model) renderPages() string {
	doc := m.viewer.Document()
	styles := m.theme.Styles()
	l := m.layout
	cols := min(l.width-4, docPageMaxCells)
	if cols < 4 {
		cols = max(l.width, 1)
	}
	page := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Foreground(lipgloss.Color(m.theme.Faint)).
		Width(max(cols-2, 1))

	var blocks []string
	if err := doc.Err(); err != nil {
		blocks = append(blocks, styles.DangerText.Render("✕ "+truncate(err.Error(), l.width-4)))
	}
	for _, p := range doc.Pages() {
		title := fmt.Sprintf("Page %d of %d", p.Number, doc.TotalPages())
		detail := dimensions(p.Width, p.Height) + " pt"
		titleStyle := styles.MutedText
		if p.Failed {
			detail = "failed to render"
			titleStyle = styles.DangerText
		}
		rows := pageRows(p.Width, p.Height, cols, l)
		body := strings.Repeat(strings.Repeat("·", max(cols-2, 1))+"\n", max(rows-3, 0))
		blocks = append(blocks,
			titleStyle.Render(truncate(title+" · "+detail, cols)),
			page.Render(strings.TrimSuffix(center(doc.Title(), max(cols-2, 1))+"\n"+body, "\n")),
		)
	}
	if doc.Rendered() < doc.TotalPages() || doc.State() != viewer.DocIdle {
		blocks = append(blocks, styles.MutedText.Render(m.spinner.View()+" loading pages"))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	return lipgloss.PlaceHorizontal(l.width, lipgloss.Center, content)
}
