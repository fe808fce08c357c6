package viewer

import (
	"fmt"

	"github.com/five82/lightbox/internal/media"
)

// Reduce applies one action and returns the next state. It never performs
// I/O. An action type it does not know is a programming error and panics.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetVisible:
		s.Visible = act.Visible
		s.TransitionStarted = false
	case SetActiveIndex:
		s.ActiveIndex = act.Index
		s.PendingIndexLoad = true
	case Update:
		s = applyUpdate(s, act)
	case Clear:
		scale := act.Scale
		if scale == 0 {
			scale = 1
		}
		s.Geometry = Geometry{ScaleX: scale, ScaleY: scale}
		s.Natural = media.Size{}
		s.Loading = false
		s.LoadFailed = false
	case SetDocumentBusy:
		s.DocumentBusy = act.Busy
	default:
		panic(fmt.Sprintf("viewer: unknown action %T", a))
	}
	return s
}

func applyUpdate(s State, u Update) State {
	v := u.Values
	if u.Fields&FieldGeometry != 0 {
		s.Geometry = v.Geometry
	}
	if u.Fields&FieldNatural != 0 {
		s.Natural = v.Natural
	}
	if u.Fields&FieldLoading != 0 {
		s.Loading = v.Loading
	}
	if u.Fields&FieldLoadFailed != 0 {
		s.LoadFailed = v.LoadFailed
	}
	if u.Fields&FieldPendingIndexLoad != 0 {
		s.PendingIndexLoad = v.PendingIndexLoad
	}
	if u.Fields&FieldTransition != 0 {
		s.TransitionStarted = v.TransitionStarted
	}
	return s
}
