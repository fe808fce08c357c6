package viewer

import (
	"context"
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/media"
)

// Prober resolves the natural size of an image source.
type Prober interface {
	Dimensions(ctx context.Context, src string) (media.Size, error)
}

// ImageLoadedMsg reports the outcome of one load. Exactly one of the
// outcome flags is set, or none for a plain success.
type ImageLoadedMsg struct {
	Seq   uint64
	Index int
	Reset bool

	Natural media.Size

	// Fallback: the primary source failed and the fallback image loaded.
	Fallback bool
	// Placeholder: the item is the failed sentinel.
	Placeholder bool
	// Failed: neither the source nor the fallback could be read.
	Failed bool
	// Empty: the source failed and no fallback is configured.
	Empty bool
	// Document: the item is not probed; pages or a file card are shown.
	Document bool
}

// ImageLoader resolves natural dimensions off the event loop. Only the most
// recent load is current; older results are discarded by the caller and
// their context is cancelled.
type ImageLoader struct {
	prober   Prober
	fallback string

	seq    uint64
	index  int
	cancel context.CancelFunc
}

// NewImageLoader builds a loader that retries failed sources with fallback
// when it is non-empty.
func NewImageLoader(prober Prober, fallback string) *ImageLoader {
	return &ImageLoader{prober: prober, fallback: strings.TrimSpace(fallback), index: NoActive}
}

// Load makes index the current load and returns the command that resolves it.
func (l *ImageLoader) Load(index int, item media.Item, reset bool) tea.Cmd {
	l.Cancel()
	l.seq++
	l.index = index
	seq := l.seq

	base := ImageLoadedMsg{Seq: seq, Index: index, Reset: reset}
	switch {
	case item.Source == media.FailedSource:
		msg := base
		msg.Placeholder = true
		return func() tea.Msg { return msg }
	case strings.TrimSpace(item.Source) == "":
		msg := base
		msg.Empty = true
		return func() tea.Msg { return msg }
	case !item.Rasterizable():
		msg := base
		msg.Document = true
		return func() tea.Msg { return msg }
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	prober := l.prober
	fallback := l.fallback
	src := item.Source

	return func() tea.Msg {
		msg := base
		if prober == nil {
			msg.Empty = true
			return msg
		}
		size, err := prober.Dimensions(ctx, src)
		if err == nil {
			msg.Natural = size
			return msg
		}
		if errors.Is(err, context.Canceled) {
			// Superseded; the result is stale either way.
			msg.Empty = true
			return msg
		}
		log.Printf("load %s: %v", src, err)
		if fallback == "" {
			msg.Empty = true
			return msg
		}
		size, err = prober.Dimensions(ctx, fallback)
		if err != nil {
			log.Printf("load fallback %s: %v", fallback, err)
			msg.Failed = true
			return msg
		}
		msg.Natural = size
		msg.Fallback = true
		return msg
	}
}

// Current reports whether msg belongs to the latest load.
func (l *ImageLoader) Current(msg ImageLoadedMsg) bool {
	return msg.Seq == l.seq && msg.Index == l.index
}

// Index returns the index of the current load, or NoActive.
func (l *ImageLoader) Index() int {
	return l.index
}

// Cancel aborts the in-flight probe, if any.
func (l *ImageLoader) Cancel() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
