package viewer

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/media"
)

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

var errDecode = errors.New("decode failed")

type fakeProber struct {
	mu    sync.Mutex
	sizes map[string]media.Size
	calls []string
}

func (f *fakeProber) Dimensions(_ context.Context, src string) (media.Size, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, src)
	if s, ok := f.sizes[src]; ok {
		return s, nil
	}
	return media.Size{}, errDecode
}

func images(srcs ...string) []media.Item {
	items := make([]media.Item, len(srcs))
	for i, src := range srcs {
		items[i] = media.Item{ID: src, Source: src, Kind: media.KindFromPath(src)}
	}
	return items
}
