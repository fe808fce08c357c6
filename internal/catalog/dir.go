package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/five82/lightbox/internal/media"
)

const defaultDirPageSize = 20

// DirPager exposes a large directory as a window of items that grows on demand
// in either direction.
type DirPager struct {
	dir      string
	pageSize int
	store    *Store

	mu     sync.Mutex
	names  []string
	stamps map[string]time.Time // modification time per name
	lo    int // first listed name inside the window
	hi    int // one past the last listed name inside the window
	start int // position of the requested start file inside the window
}

// NewDirPager lists dir and publishes a window of items centred on start
// (a file name inside dir, or empty for the first file).
func NewDirPager(dir, start string, pageSize int, store *Store) (*DirPager, error) {
	if store == nil {
		return nil, fmt.Errorf("dir pager requires a store")
	}
	if pageSize <= 0 {
		pageSize = defaultDirPageSize
	}
	names, stamps, err := listMedia(dir)
	if err != nil {
		return nil, err
	}
	p := &DirPager{dir: dir, pageSize: pageSize, store: store, names: names, stamps: stamps}

	pos := 0
	if start != "" {
		if i := sort.SearchStrings(names, start); i < len(names) && names[i] == start {
			pos = i
		}
	}
	p.lo = max(0, pos-pageSize/2)
	p.hi = min(len(names), p.lo+pageSize)
	p.start = pos - p.lo
	store.Replace(p.items(p.lo, p.hi), nil)
	return p, nil
}

// StartIndex is the index of the start file in the first published window.
func (p *DirPager) StartIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.start
}

// Previous prepends up to one page of earlier files and returns the new count.
func (p *DirPager) Previous(ctx context.Context, _ int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lo == 0 {
		return 0, ErrNoMore
	}
	from := max(0, p.lo-p.pageSize)
	n := p.store.Prepend(p.items(from, p.lo))
	p.lo = from
	return n, nil
}

// Next appends up to one page of later files and returns the new count.
func (p *DirPager) Next(ctx context.Context, _ int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hi >= len(p.names) {
		return 0, ErrNoMore
	}
	to := min(len(p.names), p.hi+p.pageSize)
	n := p.store.Append(p.items(p.hi, to))
	p.hi = to
	return n, nil
}

// Refresh re-lists the directory and republishes the current window, keeping
// its first entry anchored when it still exists. A file rewritten in place
// republishes too.
func (p *DirPager) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	names, stamps, err := listMedia(p.dir)
	if err != nil {
		p.store.Replace(nil, err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if equalNames(names, p.names) && equalStamps(stamps, p.stamps) {
		return nil
	}
	p.stamps = stamps
	width := p.hi - p.lo
	lo := 0
	if p.lo < len(p.names) {
		first := p.names[p.lo]
		lo = sort.SearchStrings(names, first)
	}
	p.names = names
	p.lo = min(lo, len(names))
	p.hi = min(len(names), p.lo+max(width, p.pageSize))
	p.store.Replace(p.items(p.lo, p.hi), nil)
	return nil
}

func (p *DirPager) items(from, to int) []media.Item {
	out := make([]media.Item, 0, to-from)
	for _, name := range p.names[from:to] {
		out = append(out, media.FromPath(filepath.Join(p.dir, name)))
	}
	return out
}

func listMedia(dir string) ([]string, map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	stamps := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !media.KnownExtension(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
		if info, err := entry.Info(); err == nil {
			stamps[entry.Name()] = info.ModTime()
		}
	}
	sort.Strings(names)
	return names, stamps, nil
}

func equalStamps(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for name, t := range a {
		if other, ok := b[name]; !ok || !other.Equal(t) {
			return false
		}
	}
	return true
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
