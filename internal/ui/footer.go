package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/lightbox/internal/viewer"
)

var toolbarGlyphs = map[viewer.ActionKey]string{
	viewer.ActionZoomIn:      "+",
	viewer.ActionZoomOut:     "−",
	viewer.ActionPrev:        "‹",
	viewer.ActionReset:       "⟳",
	viewer.ActionNext:        "›",
	viewer.ActionRotateLeft:  "↺",
	viewer.ActionRotateRight: "↻",
	viewer.ActionScaleX:      "⇆",
	viewer.ActionScaleY:      "⇅",
	viewer.ActionDownload:    "⤓",
	viewer.ActionPrint:       "⎙",
}

func toolbarLabel(t viewer.ToolbarItem) string {
	if t.Label != "" {
		return t.Label
	}
	if glyph, ok := toolbarGlyphs[t.Key]; ok {
		return glyph
	}
	return string(t.Key)
}

// zone is a clickable span on one footer row, in cells, x1 exclusive.
type zone struct {
	x0, x1 int
	index  int // toolbar entry or item index
	kind   zoneKind
}

type zoneKind uint8

const (
	zoneToolbar zoneKind = iota
	zoneNavItem
	zoneNavBack
	zoneNavForward
)

func (z zone) contains(x int) bool {
	return x >= z.x0 && x < z.x1
}

// buttonWidth is the rendered width of a toolbar button: the label plus
// one cell of padding on each side.
func buttonWidth(t viewer.ToolbarItem) int {
	return runewidth.StringWidth(toolbarLabel(t)) + 2
}

// toolbarZones lays the toolbar out centred on the row.
func toolbarZones(items []viewer.ToolbarItem, width int) []zone {
	total := 0
	for _, t := range items {
		total += buttonWidth(t)
	}
	total += max(len(items)-1, 0)
	x := max((width-total)/2, 0)
	zones := make([]zone, 0, len(items))
	for i, t := range items {
		w := buttonWidth(t)
		zones = append(zones, zone{x0: x, x1: x + w, index: i, kind: zoneToolbar})
		x += w + 1
	}
	return zones
}

// navZones lays out the visible strip items and the arrows.
func navZones(nav *viewer.NavViewport, count int, l layout) []zone {
	zones := []zone{}
	if nav.ShowBack() {
		zones = append(zones, zone{x0: 0, x1: navArrowCells, kind: zoneNavBack, index: -1})
	}
	if nav.ShowForward(count) {
		zones = append(zones, zone{x0: l.width - navArrowCells, x1: l.width, kind: zoneNavForward, index: -1})
	}
	pitch := nav.Pitch()
	itemCells := max(int((pitch-10)/l.cellW), 1)
	first := nav.FirstVisible()
	for i := first; i < min(count, first+nav.VisibleSlots()); i++ {
		x := navArrowCells + roundInt((float64(i)*pitch+nav.Offset())/l.cellW)
		if x >= l.width-navArrowCells {
			break
		}
		zones = append(zones, zone{x0: x, x1: min(x+itemCells, l.width-navArrowCells), index: i, kind: zoneNavItem})
	}
	return zones
}

func (m Model) renderAttributes(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	s := styles.WithBackground(m.theme.Surface)
	attrs := m.viewer.Attributes()

	var parts []string
	if attrs.ShowTotal && attrs.Total > 0 && attrs.Position > 0 {
		parts = append(parts, bg.Render(counter(attrs.Position, attrs.Total), s.AccentText))
	}
	if attrs.ShowDetails && !attrs.Natural.Empty() {
		parts = append(parts, bg.Render("("+dimensions(attrs.Natural.Width, attrs.Natural.Height)+")", s.MutedText))
	}
	used := 0
	for _, p := range parts {
		used += lipgloss.Width(p) + 2
	}
	status := m.viewer.Status()
	statusStyle := s.MutedText
	switch {
	case m.viewer.Document().Printing():
		status = "preparing print"
	case m.viewer.Stale():
		status = "offline: list not refreshing"
		statusStyle = s.WarningText
	}
	room := m.layout.width - used - runewidth.StringWidth(status) - 4
	if alt := truncate(attrs.Alt, room); alt != "" {
		parts = append([]string{bg.Render(alt, s.Text)}, parts...)
	}
	left := bg.Join(parts, "  ")
	right := bg.Render(truncate(status, max(m.layout.width/2, 0)), statusStyle)
	return bg.Spread(left, right, m.layout.width)
}

func (m Model) renderToolbar(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	items := m.viewer.Toolbar()
	zones := toolbarZones(items, m.layout.width)
	busy := m.viewer.State().DocumentBusy

	var b strings.Builder
	x := 0
	for i, z := range zones {
		b.WriteString(bg.Spaces(z.x0 - x))
		style := styles.Button
		if items[i].Disabled(busy) {
			style = styles.ButtonDisabled
		}
		b.WriteString(style.Render(toolbarLabel(items[i])))
		x = z.x1
	}
	return bg.FillLine(b.String(), m.layout.width)
}

func (m Model) renderNav(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	s := styles.WithBackground(m.theme.Surface)
	items := m.viewer.Items()
	nav := m.viewer.Nav()
	state := m.viewer.State()
	arrow := s.AccentText
	if state.DocumentBusy {
		arrow = s.FaintText
	}

	var b strings.Builder
	x := 0
	for _, z := range navZones(nav, len(items), m.layout) {
		if z.x0 < x {
			continue
		}
		b.WriteString(bg.Spaces(z.x0 - x))
		width := z.x1 - z.x0
		switch z.kind {
		case zoneNavBack:
			b.WriteString(bg.Render(padRight("◀", width), arrow))
		case zoneNavForward:
			b.WriteString(bg.Render(padRight("▶", width), arrow))
		case zoneNavItem:
			label := padRight(truncate(items[z.index].Label(), width), width)
			if z.index == state.ActiveIndex {
				b.WriteString(styles.Selected.Render(label))
			} else {
				b.WriteString(bg.Render(label, s.MutedText))
			}
		}
		x = z.x1
	}
	return bg.FillLine(b.String(), m.layout.width)
}

func (m Model) renderHints() string {
	bg := NewBgStyle(m.theme.Surface)
	return bg.FillLine(bg.Space()+m.help.ShortHelpView(m.keys.ShortHelp()), m.layout.width)
}
