package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/lightbox/internal/catalog"
	"github.com/five82/lightbox/internal/config"
	"github.com/five82/lightbox/internal/document"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/prefs"
	"github.com/five82/lightbox/internal/probe"
	"github.com/five82/lightbox/internal/ui"
	"github.com/five82/lightbox/internal/viewer"
)

// Options configure the lightbox application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lightbox/prefs.toml
	Source     string // manifest, directory, file or gallery URL
	Index      int    // negative uses the remembered position
	Refresh    int    // seconds; negative uses the config value
	Inline     media.Size
}

// Run boots the lightbox TUI until the context is cancelled or the user
// closes the viewer.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logFile, err := redirectLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := &catalog.Store{}
	src, err := openSource(ctx, opts.Source, cfg.Remote, store)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	log.Printf("opened %s: %d items", src.Key, store.Len())

	interval := time.Duration(cfg.RefreshSeconds) * time.Second
	if opts.Refresh >= 0 {
		interval = time.Duration(opts.Refresh) * time.Second
	}
	if src.Refresher != nil && interval > 0 {
		StartPoller(ctx, src.Refresher, interval)
	}

	prober := probe.New()
	deps := viewer.Deps{
		Items:   store,
		Prober:  prober,
		Pages:   document.NewLibrary(prober),
		Printer: &document.CommandPrinter{Command: cfg.PrintCommand, Opener: prober},
		Files:   prober,
		Browse:  browse,
	}
	if src.Pager != nil {
		deps.Pager = src.Pager
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Config:    cfg,
		Deps:      deps,
		Title:     src.Key,
		Start:     startIndex(opts.Index, userPrefs, src),
		ThemeName: userPrefs.Theme,
		LogPath:   cfg.LogPath(),
		Inline:    opts.Inline,
	}
	result, err := ui.Run(uiOpts)
	if err != nil {
		return err
	}

	userPrefs.Theme = result.Theme
	userPrefs.Remember(src.Key, result.Index)
	if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
	return nil
}

// startIndex prefers the explicit index, then the remembered position,
// then the source's own start.
func startIndex(explicit int, p prefs.Prefs, src source) int {
	if explicit >= 0 {
		return explicit
	}
	if idx, ok := p.Position(src.Key); ok {
		return idx
	}
	return src.Start
}

// redirectLog sends the standard logger to path; the terminal belongs to
// the UI.
func redirectLog(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags)
	return f, nil
}
