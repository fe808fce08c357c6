package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/lightbox/internal/catalog"
	"github.com/five82/lightbox/internal/gallery"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

// Refresher re-reads a source into the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// source is an opened item source.
type source struct {
	// Key identifies the source in the remembered positions.
	Key       string
	Pager     viewer.Pager
	Refresher Refresher
	Start     int
}

// openSource fills store from arg: a gallery URL, a TOML manifest, a
// directory or a single file. An empty arg falls back to remote.
func openSource(ctx context.Context, arg, remote string, store *catalog.Store) (source, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		arg = strings.TrimSpace(remote)
	}
	if arg == "" {
		return source{}, errors.New("no source given and no remote configured")
	}
	if isURL(arg) {
		return openGallery(ctx, arg, store)
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return source{}, fmt.Errorf("resolve source: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return source{}, fmt.Errorf("stat source: %w", err)
	}

	switch {
	case info.IsDir():
		pager, err := catalog.NewDirPager(abs, "", 0, store)
		if err != nil {
			return source{}, fmt.Errorf("list directory: %w", err)
		}
		return source{Key: abs, Pager: pager, Refresher: pager}, nil

	case strings.EqualFold(filepath.Ext(abs), ".toml"):
		manifest, m, err := catalog.NewManifestSource(abs, store)
		if err != nil {
			return source{}, err
		}
		src := source{Key: abs, Refresher: manifest}
		if m.Remote != "" {
			client, err := gallery.NewClient(m.Remote)
			if err != nil {
				return source{}, fmt.Errorf("init gallery client: %w", err)
			}
			pager, err := gallery.NewPager(client, store, 0)
			if err != nil {
				return source{}, err
			}
			src.Pager = pager
		}
		return src, nil

	case media.KnownExtension(abs):
		// A single file opens its directory so the neighbours are reachable.
		dir, name := filepath.Split(abs)
		pager, err := catalog.NewDirPager(filepath.Clean(dir), name, 0, store)
		if err != nil {
			return source{}, fmt.Errorf("list directory: %w", err)
		}
		return source{Key: abs, Pager: pager, Refresher: pager, Start: pager.StartIndex()}, nil

	default:
		store.Replace([]media.Item{media.FromPath(abs)}, nil)
		return source{Key: abs}, nil
	}
}

func openGallery(ctx context.Context, base string, store *catalog.Store) (source, error) {
	client, err := gallery.NewClient(base)
	if err != nil {
		return source{}, fmt.Errorf("init gallery client: %w", err)
	}
	pager, err := gallery.NewPager(client, store, 0)
	if err != nil {
		return source{}, err
	}
	if err := pager.Load(ctx, ""); err != nil {
		return source{}, err
	}
	return source{Key: client.BaseURL(), Pager: pager, Refresher: pager}, nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
