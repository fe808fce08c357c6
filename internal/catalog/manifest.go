package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/five82/lightbox/internal/media"
)

// ManifestSource republishes a TOML manifest whenever the file changes.
type ManifestSource struct {
	path  string
	store *Store

	mu      sync.Mutex
	modTime time.Time
}

// NewManifestSource loads path into store.
func NewManifestSource(path string, store *Store) (*ManifestSource, media.Manifest, error) {
	if store == nil {
		return nil, media.Manifest{}, fmt.Errorf("manifest source requires a store")
	}
	m, err := media.LoadManifest(path)
	if err != nil {
		return nil, media.Manifest{}, err
	}
	src := &ManifestSource{path: path, store: store}
	if info, err := os.Stat(path); err == nil {
		src.modTime = info.ModTime()
	}
	store.Replace(m.Items, nil)
	return src, m, nil
}

// Refresh reloads the manifest when its modification time moved.
func (s *ManifestSource) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		err = fmt.Errorf("stat manifest: %w", err)
		s.store.Replace(nil, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if info.ModTime().Equal(s.modTime) {
		return nil
	}
	m, err := media.LoadManifest(s.path)
	if err != nil {
		s.store.Replace(nil, err)
		return err
	}
	s.modTime = info.ModTime()
	s.store.Replace(m.Items, nil)
	return nil
}
