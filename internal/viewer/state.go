package viewer

import "github.com/five82/lightbox/internal/media"

// NoActive is the active index of an empty item list.
const NoActive = -1

// Geometry is how the active item is placed on the canvas. Offsets and
// sizes are in canvas pixels; Rotate is in degrees and never normalised.
type Geometry struct {
	Width  float64
	Height float64
	Top    float64
	Left   float64
	Rotate float64
	ScaleX float64
	ScaleY float64
}

// Center returns the canvas point at the middle of the item box.
func (g Geometry) Center() (x, y float64) {
	return g.Left + g.Width/2, g.Top + g.Height/2
}

// Empty reports whether no size has been computed yet.
func (g Geometry) Empty() bool {
	return g.Width == 0
}

// State is the single source of truth of a viewer. It is only changed
// through Reduce.
type State struct {
	Visible           bool
	TransitionStarted bool
	ActiveIndex       int

	Geometry Geometry
	Natural  media.Size

	// Loading means a geometry recompute is in flight; Geometry is not final.
	Loading          bool
	LoadFailed       bool
	PendingIndexLoad bool
	DocumentBusy     bool
}

// NewState returns the state of a freshly mounted, hidden viewer.
func NewState(defaultScale float64) State {
	if defaultScale == 0 {
		defaultScale = 1
	}
	return State{
		ActiveIndex: NoActive,
		Geometry:    Geometry{ScaleX: defaultScale, ScaleY: defaultScale},
	}
}
