package ui

import (
	"time"

	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

// Row and cell budgets of the screen regions.
const (
	headerRows    = 1
	navArrowCells = 2
	panStepCells  = 2
	minCanvasRows = 3
)

// Overlay limits.
const (
	// LogOverlayLines is how many log lines the diagnostics overlay reads.
	LogOverlayLines = 400

	// OverlayMaxWidth caps the help and log overlays.
	OverlayMaxWidth = 100
)

// Timing constants.
const (
	// DefaultSyncInterval is how often the item list is checked for changes.
	DefaultSyncInterval = time.Second
)

// footerRows counts the footer rows the options leave on screen: the
// attribute line, the toolbar, the nav strip and the key hints.
func footerRows(opts viewer.Options) int {
	if opts.NoFooter {
		return 0
	}
	rows := 2 // attributes and key hints
	if !opts.NoToolbar {
		rows++
	}
	if !opts.NoNavbar {
		rows++
	}
	return rows
}

// layout maps the terminal grid onto viewer pixels. Rows from the top: the
// title bar, the canvas, then the footer.
type layout struct {
	width, height int
	canvasRows    int
	footer        int
	cellW, cellH  float64

	attrRow, toolbarRow, navRow, helpRow int // -1 when hidden
}

func computeLayout(width, height int, opts viewer.Options, cellW, cellH float64) layout {
	l := layout{
		width:  max(width, 1),
		height: max(height, 1),
		footer: footerRows(opts),
		cellW:  cellW,
		cellH:  cellH,
	}
	l.canvasRows = max(l.height-headerRows-l.footer, minCanvasRows)
	l.attrRow, l.toolbarRow, l.navRow, l.helpRow = -1, -1, -1, -1
	if l.footer == 0 {
		return l
	}
	row := headerRows + l.canvasRows
	l.attrRow = row
	row++
	if !opts.NoToolbar {
		l.toolbarRow = row
		row++
	}
	if !opts.NoNavbar {
		l.navRow = row
		row++
	}
	l.helpRow = row
	return l
}

// canvasPixels is the viewer canvas. It spans the footer too; the viewer
// keeps items clear of it through its footer height.
func (l layout) canvasPixels() media.Size {
	return media.Size{
		Width:  float64(l.width) * l.cellW,
		Height: float64(l.canvasRows+l.footer) * l.cellH,
	}
}

// navPixels is the width of the thumbnail strip between its arrows.
func (l layout) navPixels() float64 {
	return float64(max(l.width-2*navArrowCells, 1)) * l.cellW
}

// inCanvas reports whether the cell at (x, y) is inside the canvas.
func (l layout) inCanvas(x, y int) bool {
	return x >= 0 && x < l.width && y >= headerRows && y < headerRows+l.canvasRows
}

// toPixel returns the canvas point at the middle of the cell (x, y).
func (l layout) toPixel(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * l.cellW, (float64(y-headerRows) + 0.5) * l.cellH
}

// toCell converts a canvas pixel coordinate to a canvas cell column and row.
func (l layout) toCell(px, py float64) (int, int) {
	return roundInt(px / l.cellW), roundInt(py / l.cellH)
}

func roundInt(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}
