package viewer

import "github.com/five82/lightbox/internal/media"

// ActionKey identifies a toolbar action. Keys are stable; custom toolbars
// match on them.
type ActionKey string

const (
	ActionZoomIn      ActionKey = "zoomIn"
	ActionZoomOut     ActionKey = "zoomOut"
	ActionPrev        ActionKey = "prev"
	ActionReset       ActionKey = "reset"
	ActionNext        ActionKey = "next"
	ActionRotateLeft  ActionKey = "rotateLeft"
	ActionRotateRight ActionKey = "rotateRight"
	ActionScaleX      ActionKey = "scaleX"
	ActionScaleY      ActionKey = "scaleY"
	ActionDownload    ActionKey = "download"
	ActionPrint       ActionKey = "print"
)

// ToolbarItem is one toolbar entry. Built-in entries carry only a Key;
// caller-injected entries bring their own Label and OnClick.
type ToolbarItem struct {
	Key     ActionKey
	Label   string
	OnClick func(item media.Item)
}

// Builtin reports whether the key names a default action.
func (k ActionKey) Builtin() bool {
	switch k {
	case ActionZoomIn, ActionZoomOut, ActionPrev, ActionReset, ActionNext,
		ActionRotateLeft, ActionRotateRight, ActionScaleX, ActionScaleY,
		ActionDownload, ActionPrint:
		return true
	}
	return false
}

// DefaultToolbar returns the built-in entries in display order.
func DefaultToolbar() []ToolbarItem {
	keys := []ActionKey{
		ActionZoomIn, ActionZoomOut, ActionPrev, ActionReset, ActionNext,
		ActionRotateLeft, ActionRotateRight, ActionScaleX, ActionScaleY,
		ActionDownload, ActionPrint,
	}
	items := make([]ToolbarItem, len(keys))
	for i, k := range keys {
		items[i] = ToolbarItem{Key: k}
	}
	return items
}

// Toolbar applies the custom toolbar hook and then removes the groups the
// options disable.
func Toolbar(opts Options) []ToolbarItem {
	items := DefaultToolbar()
	if opts.CustomToolbar != nil {
		items = opts.CustomToolbar(items)
	}

	var drop []ActionKey
	if !opts.Zoomable {
		drop = append(drop, ActionZoomIn, ActionZoomOut)
	}
	if !opts.Changeable {
		drop = append(drop, ActionPrev, ActionNext)
	}
	if !opts.Rotatable {
		drop = append(drop, ActionRotateLeft, ActionRotateRight)
	}
	if !opts.Scalable {
		drop = append(drop, ActionScaleX, ActionScaleY)
	}
	if !opts.Downloadable {
		drop = append(drop, ActionDownload)
	}
	if !opts.Printable {
		drop = append(drop, ActionPrint)
	}
	return withoutKeys(items, drop)
}

func withoutKeys(items []ToolbarItem, keys []ActionKey) []ToolbarItem {
	if len(keys) == 0 {
		return items
	}
	out := make([]ToolbarItem, 0, len(items))
	for _, it := range items {
		keep := true
		for _, k := range keys {
			if it.Key == k {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

// Disabled reports whether the entry must render disabled. Navigation and
// printing wait while a document is busy.
func (t ToolbarItem) Disabled(documentBusy bool) bool {
	if !documentBusy {
		return false
	}
	switch t.Key {
	case ActionPrev, ActionNext, ActionPrint:
		return true
	}
	return false
}
