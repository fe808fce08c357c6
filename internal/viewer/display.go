package viewer

import "github.com/five82/lightbox/internal/media"

// Display is what the canvas shows for a state.
type Display int

const (
	DisplayHidden Display = iota
	DisplayLoading
	DisplayImage
	DisplayFailed
	DisplayDocument
	DisplayEmpty
)

func (d Display) String() string {
	switch d {
	case DisplayHidden:
		return "hidden"
	case DisplayLoading:
		return "loading"
	case DisplayImage:
		return "image"
	case DisplayFailed:
		return "failed"
	case DisplayDocument:
		return "document"
	default:
		return "empty"
	}
}

// DisplayFor picks the canvas variant. ok is false when there is no active
// item.
func DisplayFor(s State, item media.Item, ok bool) Display {
	switch {
	case !s.Visible:
		return DisplayHidden
	case s.Loading || s.PendingIndexLoad:
		return DisplayLoading
	case !ok:
		return DisplayEmpty
	case item.Source == media.FailedSource || s.LoadFailed:
		return DisplayFailed
	case !item.Rasterizable() && item.Source != "":
		return DisplayDocument
	case !s.Geometry.Empty():
		return DisplayImage
	default:
		return DisplayEmpty
	}
}
