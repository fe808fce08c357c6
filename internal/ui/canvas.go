package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

type cellClass uint8

const (
	classMask cellClass = iota
	classFrame
	classFill
	classLabel
	classMuted
	classDanger
	classAccent
)

// grid is a plain cell buffer; styles are applied per run when rendered,
// so clipping never cuts through escape sequences.
type grid struct {
	w, h  int
	runes [][]rune
	class [][]cellClass
}

// wideTail marks the second cell of a double-width rune.
const wideTail = rune(-1)

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, runes: make([][]rune, h), class: make([][]cellClass, h)}
	for y := range g.runes {
		g.runes[y] = []rune(strings.Repeat(" ", w))
		g.class[y] = make([]cellClass, w)
	}
	return g
}

func (g *grid) set(x, y int, r rune, c cellClass) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.runes[y][x] = r
	g.class[y][x] = c
}

// text writes s starting at (x, y), clipped to the grid.
func (g *grid) text(x, y int, s string, c cellClass) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if rw == 2 && x+1 >= g.w {
			return
		}
		g.set(x, y, r, c)
		if rw == 2 {
			g.set(x+1, y, wideTail, c)
		}
		x += rw
	}
}

// centerText writes s centred between x0 and x1 (inclusive) on row y.
func (g *grid) centerText(x0, x1, y int, s string, c cellClass) {
	width := x1 - x0 + 1
	if width <= 0 {
		return
	}
	s = truncate(s, width)
	g.text(x0+(width-runewidth.StringWidth(s))/2, y, s, c)
}

func (g *grid) render(styles Styles) []string {
	classStyle := map[cellClass]lipgloss.Style{
		classMask:   styles.Background,
		classFrame:  styles.Frame,
		classFill:   styles.Fill,
		classLabel:  styles.Label,
		classMuted:  styles.MutedText.Inherit(styles.Background),
		classDanger: styles.DangerText.Inherit(styles.Fill),
		classAccent: styles.AccentText.Inherit(styles.Background),
	}
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b strings.Builder
		start := 0
		for x := 1; x <= g.w; x++ {
			if x < g.w && g.class[y][x] == g.class[y][start] {
				continue
			}
			b.WriteString(classStyle[g.class[y][start]].Render(runsToString(g.runes[y][start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func runsToString(rs []rune) string {
	var b strings.Builder
	for _, r := range rs {
		if r != wideTail {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// box is an item rectangle in canvas cells, inclusive.
type box struct {
	x0, y0, x1, y1 int
}

// itemBox projects the geometry to cells: the unscaled box scaled about
// its centre by |scale|, with width and height swapped on odd quarter
// turns.
func itemBox(g viewer.Geometry, l layout) box {
	cx, cy := g.Center()
	w := g.Width * math.Abs(g.ScaleX)
	h := g.Height * math.Abs(g.ScaleY)
	if quarterTurns(g.Rotate)%2 == 1 {
		w, h = h, w
	}
	x0, y0 := l.toCell(cx-w/2, cy-h/2)
	x1, y1 := l.toCell(cx+w/2, cy+h/2)
	return box{x0: x0, y0: y0, x1: max(x1-1, x0), y1: max(y1-1, y0)}
}

func quarterTurns(deg float64) int {
	turns := int(math.Round(deg/90)) % 4
	if turns < 0 {
		turns += 4
	}
	return turns
}

// drawFrame draws a rounded frame filled with a dot pattern.
func (g *grid) drawFrame(b box) {
	for y := b.y0; y <= b.y1; y++ {
		for x := b.x0; x <= b.x1; x++ {
			switch {
			case y == b.y0 && x == b.x0:
				g.set(x, y, '╭', classFrame)
			case y == b.y0 && x == b.x1:
				g.set(x, y, '╮', classFrame)
			case y == b.y1 && x == b.x0:
				g.set(x, y, '╰', classFrame)
			case y == b.y1 && x == b.x1:
				g.set(x, y, '╯', classFrame)
			case y == b.y0 || y == b.y1:
				g.set(x, y, '─', classFrame)
			case x == b.x0 || x == b.x1:
				g.set(x, y, '│', classFrame)
			default:
				g.set(x, y, '·', classFill)
			}
		}
	}
}

// markTop puts a marker on the frame edge the item's top now faces.
func (g *grid) markTop(b box, geo viewer.Geometry) {
	turns := quarterTurns(geo.Rotate)
	if geo.ScaleY < 0 {
		turns = (turns + 2) % 4
	}
	midX, midY := (b.x0+b.x1)/2, (b.y0+b.y1)/2
	switch turns {
	case 0:
		g.set(midX, b.y0, '▲', classFrame)
	case 1:
		g.set(b.x1, midY, '▶', classFrame)
	case 2:
		g.set(midX, b.y1, '▼', classFrame)
	case 3:
		g.set(b.x0, midY, '◀', classFrame)
	}
}

// renderCanvas draws the canvas for displays other than documents.
func (m Model) renderCanvas(styles Styles) string {
	l := m.layout
	g := newGrid(l.width, l.canvasRows)
	state := m.viewer.State()
	item, _ := m.viewer.ActiveItem()
	midY := l.canvasRows / 2

	switch m.viewer.Display() {
	case viewer.DisplayLoading:
		g.centerText(0, l.width-1, midY, m.spinner.View()+" Loading "+item.Label(), classMuted)

	case viewer.DisplayImage, viewer.DisplayFailed:
		geo := state.Geometry
		b := itemBox(geo, l)
		g.drawFrame(b)
		g.markTop(b, geo)
		lines := imageLabels(item, state)
		classes := make([]cellClass, len(lines))
		for i := range classes {
			classes[i] = classLabel
		}
		if m.viewer.Display() == viewer.DisplayFailed {
			lines = append([]string{"✕ failed to load"}, lines...)
			classes = append([]cellClass{classDanger}, classes...)
		}
		top := (b.y0+b.y1)/2 - len(lines)/2
		for i, line := range lines {
			y := top + i
			if y <= b.y0 || y >= b.y1 {
				continue
			}
			g.centerText(b.x0+1, b.x1-1, y, line, classes[i])
		}

	case viewer.DisplayDocument:
		// Paged documents render in the document viewport.
		g.centerText(0, l.width-1, midY-1, item.Label(), classAccent)
		g.centerText(0, l.width-1, midY+1, "No preview for "+strings.ToLower(media.KindLabel(item.EffectiveKind())), classMuted)

	case viewer.DisplayEmpty:
		g.centerText(0, l.width-1, midY, "Nothing to show", classMuted)
	}

	if state.TransitionStarted {
		g.centerText(0, l.width-1, l.canvasRows-1, "closing", classMuted)
	}
	return strings.Join(g.render(styles), "\n")
}

// imageLabels are the lines written inside the item box.
func imageLabels(item media.Item, s viewer.State) []string {
	lines := []string{item.Label()}
	if !s.Natural.Empty() {
		lines = append(lines, dimensions(s.Natural.Width, s.Natural.Height))
	}
	var marks []string
	if scale := math.Abs(s.Geometry.ScaleX); scale != 1 {
		marks = append(marks, fmt.Sprintf("%.0f%%", scale*100))
	}
	if turns := quarterTurns(s.Geometry.Rotate); turns != 0 {
		marks = append(marks, fmt.Sprintf("↻%d°", turns*90))
	}
	if s.Geometry.ScaleX < 0 {
		marks = append(marks, "⇆")
	}
	if s.Geometry.ScaleY < 0 {
		marks = append(marks, "⇅")
	}
	if len(marks) > 0 {
		lines = append(lines, strings.Join(marks, " "))
	}
	return lines
}
