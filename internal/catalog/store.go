package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/lightbox/internal/media"
)

// ErrNoMore reports that a paging collaborator has nothing left in the
// requested direction.
var ErrNoMore = errors.New("no more items")

// IsNoMore reports whether err means a pager simply ran out of items.
func IsNoMore(err error) bool {
	return errors.Is(err, ErrNoMore)
}

// Snapshot is the item list as seen by one render cycle.
type Snapshot struct {
	Items               []media.Item
	Version             uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsStale returns true when refreshes have failed repeatedly.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Len returns the number of items in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Items)
}

// Store coordinates concurrent updates to the item list. Paging
// collaborators and the refresh watcher write; the UI reads snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace swaps the item list. When err is non-nil the previous items are
// kept but the error is recorded for visibility.
func (s *Store) Replace(items []media.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Items = cloneItems(items)
	s.touch()
}

// Prepend inserts items before the current list and returns the new length.
func (s *Store) Prepend(items []media.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		return len(s.snapshot.Items)
	}
	merged := make([]media.Item, 0, len(items)+len(s.snapshot.Items))
	merged = append(merged, items...)
	merged = append(merged, s.snapshot.Items...)
	s.snapshot.Items = merged
	s.touch()
	return len(merged)
}

// Append adds items after the current list and returns the new length.
func (s *Store) Append(items []media.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		return len(s.snapshot.Items)
	}
	s.snapshot.Items = append(cloneItems(s.snapshot.Items), items...)
	s.touch()
	return len(s.snapshot.Items)
}

// Len returns the current item count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Len()
}

// Version returns the change counter. It increases on every successful write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version
}

// Stale reports whether refreshes have failed repeatedly.
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.IsStale()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// touch must be called with the write lock held.
func (s *Store) touch() {
	s.snapshot.Version++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func cloneItems(items []media.Item) []media.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]media.Item, len(items))
	copy(dup, items)
	return dup
}
