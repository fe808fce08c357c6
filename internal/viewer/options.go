package viewer

import (
	"time"

	"github.com/five82/lightbox/internal/media"
)

// Defaults shared with the config layer.
const (
	DefaultZoomSpeed      = 0.05
	DefaultMinScale       = 0.1
	DefaultNavItemWidth   = 100
	DefaultFooterHeight   = 84
	DefaultDocBatchSize   = 5
	DefaultHideTransition = 300 * time.Millisecond
)

// Options configures a Viewer. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Drag         bool
	Zoomable     bool
	Rotatable    bool
	Scalable     bool
	Changeable   bool
	Downloadable bool
	Printable    bool
	Loop         bool

	NoClose      bool
	NoImgDetails bool
	NoNavbar     bool
	NoToolbar    bool
	NoFooter     bool

	ZoomSpeed    float64
	DefaultScale float64
	MinScale     float64
	MaxScale     float64 // zero: unbounded

	NoResetZoomAfterChange    bool
	NoLimitInitializationSize bool
	DefaultSize               *media.Size
	DefaultImg                string
	FailedSize                media.Size

	DisableKeyboardSupport bool
	DownloadInNewWindow    bool
	ShowTotal              bool
	DownloadDir            string

	NavItemWidth      float64
	FooterHeight      float64
	DocBatchSize      int
	DocPrintBatchSize int
	HideTransition    time.Duration

	CustomToolbar func([]ToolbarItem) []ToolbarItem
	OnChange      func(item media.Item, index int)
	OnClose       func()
	OnMaskClick   func()
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Drag:              true,
		Zoomable:          true,
		Rotatable:         true,
		Scalable:          true,
		Changeable:        true,
		Loop:              true,
		ShowTotal:         true,
		ZoomSpeed:         DefaultZoomSpeed,
		DefaultScale:      1,
		MinScale:          DefaultMinScale,
		FailedSize:        media.Size{Width: 200, Height: 200},
		NavItemWidth:      DefaultNavItemWidth,
		FooterHeight:      DefaultFooterHeight,
		DocBatchSize:      DefaultDocBatchSize,
		DocPrintBatchSize: DefaultDocBatchSize,
		HideTransition:    DefaultHideTransition,
	}
}

// normalized fills unset numeric fields with their defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.ZoomSpeed <= 0 {
		o.ZoomSpeed = def.ZoomSpeed
	}
	if o.DefaultScale == 0 {
		o.DefaultScale = def.DefaultScale
	}
	if o.MinScale <= 0 {
		o.MinScale = def.MinScale
	}
	if o.MaxScale < 0 {
		o.MaxScale = 0
	}
	if o.FailedSize.Empty() {
		o.FailedSize = def.FailedSize
	}
	if o.NavItemWidth <= 0 {
		o.NavItemWidth = def.NavItemWidth
	}
	if o.FooterHeight < 0 {
		o.FooterHeight = 0
	}
	if o.DocBatchSize <= 0 {
		o.DocBatchSize = def.DocBatchSize
	}
	if o.DocPrintBatchSize <= 0 {
		o.DocPrintBatchSize = o.DocBatchSize
	}
	if o.HideTransition < 0 {
		o.HideTransition = 0
	}
	return o
}
