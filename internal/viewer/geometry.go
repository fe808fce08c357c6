package viewer

import (
	"math"

	"github.com/five82/lightbox/internal/media"
)

// fitRatio is the share of the canvas an item may fill on first display.
const fitRatio = 0.8

// ZoomRequest describes one zoom step anchored at canvas point (X, Y).
type ZoomRequest struct {
	X, Y      float64
	Direction int // +1 in, -1 out
	Step      float64
	Min       float64
	Max       float64 // zero means unbounded
}

// Zoom scales g by one step while keeping the anchor point fixed on screen.
// The magnitude of each scale moves away from or towards zero and the sign
// (the flip) is preserved.
func Zoom(g Geometry, req ZoomRequest) Geometry {
	cx, cy := g.Center()
	dir := float64(sign(req.Direction))

	oldX, oldY := g.ScaleX, g.ScaleY
	g.ScaleX = ClampScale(oldX+req.Step*dir*signf(oldX), req.Min, req.Max)
	g.ScaleY = ClampScale(oldY+req.Step*dir*signf(oldY), req.Min, req.Max)

	// Content under the anchor sits at (anchor - centre)/scale in item
	// space; move the box so it lands on the anchor again.
	if oldX != 0 {
		g.Left -= (req.X - cx) * (g.ScaleX - oldX) / oldX
	}
	if oldY != 0 {
		g.Top -= (req.Y - cy) * (g.ScaleY - oldY) / oldY
	}
	return g
}

// ClampScale keeps |s| within [lo, hi] without changing its sign.
// A hi of zero leaves the upper end open.
func ClampScale(s, lo, hi float64) float64 {
	d := signf(s)
	abs := math.Abs(s)
	if hi > 0 && abs > hi {
		abs = hi
	}
	if abs < lo {
		abs = lo
	}
	return abs * d
}

// Rotate turns the item a quarter turn. The angle is never wrapped.
func Rotate(g Geometry, right bool) Geometry {
	if right {
		g.Rotate += 90
	} else {
		g.Rotate -= 90
	}
	return g
}

// FlipX mirrors the item horizontally.
func FlipX(g Geometry) Geometry {
	g.ScaleX *= -1
	return g
}

// FlipY mirrors the item vertically.
func FlipY(g Geometry) Geometry {
	g.ScaleY *= -1
	return g
}

// Pan moves the item box by a pointer delta.
func Pan(g Geometry, dx, dy float64) Geometry {
	g.Left += dx
	g.Top += dy
	return g
}

// FitSize returns the display size of an item with the given natural size.
// It fits into 80% of the canvas (minus the footer) keeping the aspect
// ratio and never upscales. With noLimit the natural size is used as is.
// A canvas that has not been measured yet leaves the size untouched.
func FitSize(natural, canvas media.Size, footer float64, noLimit bool) media.Size {
	if noLimit || natural.Empty() || canvas.Empty() {
		return natural
	}
	maxW := canvas.Width * fitRatio
	maxH := (canvas.Height - footer) * fitRatio
	if maxH <= 0 {
		return natural
	}

	w := math.Min(maxW, natural.Width)
	h := w / natural.Width * natural.Height
	if h > maxH {
		h = maxH
		w = h / natural.Height * natural.Width
	}
	return media.Size{Width: w, Height: h}
}

// Center returns the left and top offsets that centre a box of the given
// size above the footer.
func Center(size, canvas media.Size, footer float64) (left, top float64) {
	return (canvas.Width - size.Width) / 2, (canvas.Height - size.Height - footer) / 2
}

// DisplaySize applies size overrides: per-item fixed size first, then the
// global default size, then the natural size.
func DisplaySize(natural media.Size, item media.Item, global *media.Size) media.Size {
	if item.FixedSize != nil && !item.FixedSize.Empty() {
		return *item.FixedSize
	}
	if global != nil && !global.Empty() {
		return *global
	}
	return natural
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

func signf(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
