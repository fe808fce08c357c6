package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/five82/lightbox/internal/app"
	"github.com/five82/lightbox/internal/media"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	index := flag.Int("index", -1, "item to open (optional, defaults to the remembered position)")
	refresh := flag.Int("refresh", -1, "source refresh interval in seconds, 0 disables (optional)")
	inline := flag.String("inline", "", "render inline in a WxH cell box instead of the full screen (optional)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: lightbox [flags] [manifest.toml | dir | file | url]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	box, err := parseBox(*inline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lightbox: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Source:     flag.Arg(0),
		Index:      *index,
		Refresh:    *refresh,
		Inline:     box,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lightbox: %v\n", err)
		return 1
	}
	return 0
}

// parseBox parses "WxH" in terminal cells.
func parseBox(value string) (media.Size, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return media.Size{}, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return media.Size{}, fmt.Errorf("inline size %q: want WxH", value)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return media.Size{}, fmt.Errorf("inline width %q: want a positive number", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return media.Size{}, fmt.Errorf("inline height %q: want a positive number", h)
	}
	return media.Size{Width: float64(width), Height: float64(height)}, nil
}
