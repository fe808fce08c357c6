package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/five82/lightbox/internal/catalog"
)

const defaultPageLimit = 20

// ErrNoMore is returned when the gallery has no items past the requested end.
var ErrNoMore = catalog.ErrNoMore

// Pager grows a catalog store from a remote gallery in either direction.
type Pager struct {
	fetcher Fetcher
	store   *catalog.Store
	limit   int

	// One request per direction at a time; a second navigation that lands in
	// the threshold while a fetch is in flight waits for it.
	prevMu sync.Mutex
	nextMu sync.Mutex
}

// NewPager builds a pager writing into store.
func NewPager(fetcher Fetcher, store *catalog.Store, limit int) (*Pager, error) {
	if fetcher == nil || store == nil {
		return nil, fmt.Errorf("gallery pager requires a fetcher and a store")
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return &Pager{fetcher: fetcher, store: store, limit: limit}, nil
}

// Load replaces the store with the page around the given item ID (or the
// first page when around is empty).
func (p *Pager) Load(ctx context.Context, around string) error {
	page, err := p.fetcher.FetchItems(ctx, ItemQuery{Around: around, Limit: p.limit})
	if err != nil {
		err = fmt.Errorf("load gallery: %w", err)
		p.store.Replace(nil, err)
		return err
	}
	p.store.Replace(page.Items, nil)
	return nil
}

// Refresh reloads the page around the current first item.
func (p *Pager) Refresh(ctx context.Context) error {
	snap := p.store.Snapshot()
	around := ""
	if len(snap.Items) > 0 {
		around = snap.Items[0].ID
	}
	return p.Load(ctx, around)
}

// Previous prepends the page before the first known item and returns the new
// item count.
func (p *Pager) Previous(ctx context.Context, _ int) (int, error) {
	p.prevMu.Lock()
	defer p.prevMu.Unlock()

	snap := p.store.Snapshot()
	if len(snap.Items) == 0 {
		return 0, ErrNoMore
	}
	page, err := p.fetcher.FetchItems(ctx, ItemQuery{Before: snap.Items[0].ID, Limit: p.limit})
	if err != nil {
		return 0, fmt.Errorf("fetch previous: %w", err)
	}
	if len(page.Items) == 0 {
		return 0, ErrNoMore
	}
	return p.store.Prepend(page.Items), nil
}

// Next appends the page after the last known item and returns the new count.
func (p *Pager) Next(ctx context.Context, _ int) (int, error) {
	p.nextMu.Lock()
	defer p.nextMu.Unlock()

	snap := p.store.Snapshot()
	if len(snap.Items) == 0 {
		return 0, ErrNoMore
	}
	page, err := p.fetcher.FetchItems(ctx, ItemQuery{After: snap.Items[len(snap.Items)-1].ID, Limit: p.limit})
	if err != nil {
		return 0, fmt.Errorf("fetch next: %w", err)
	}
	if len(page.Items) == 0 {
		return 0, ErrNoMore
	}
	return p.store.Append(page.Items), nil
}

