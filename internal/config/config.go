package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

// Config is the lightbox configuration: viewer behaviour plus the paths and
// collaborators the application wires around it.
type Config struct {
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
	MaxScale     float64

	NoResetZoomAfterChange    bool
	NoLimitInitializationSize bool
	DefaultSize               *media.Size
	DefaultImg                string

	DisableKeyboardSupport bool
	DownloadInNewWindow    bool
	ShowTotal              bool

	DownloadDir       string
	PrintCommand      string
	NavItemWidth      float64
	DocBatchSize      int
	DocPrintBatchSize int

	// Pixel size of one terminal cell; geometry is computed in pixels.
	CellWidth  float64
	CellHeight float64

	LogFile        string
	Remote         string
	RefreshSeconds int
}

const (
	defaultConfigPath     = "~/.config/lightbox/config.toml"
	defaultLogFile        = "~/.local/state/lightbox/lightbox.log"
	defaultDownloadDir    = "~/Downloads"
	defaultPrintCommand   = "lp"
	defaultCellWidth      = 8
	defaultCellHeight     = 16
	defaultRefreshSeconds = 5
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Drag:              true,
		Zoomable:          true,
		Rotatable:         true,
		Scalable:          true,
		Changeable:        true,
		Loop:              true,
		ShowTotal:         true,
		ZoomSpeed:         viewer.DefaultZoomSpeed,
		DefaultScale:      1,
		MinScale:          viewer.DefaultMinScale,
		DownloadDir:       mustExpand(defaultDownloadDir),
		PrintCommand:      defaultPrintCommand,
		NavItemWidth:      viewer.DefaultNavItemWidth,
		DocBatchSize:      viewer.DefaultDocBatchSize,
		DocPrintBatchSize: viewer.DefaultDocBatchSize,
		CellWidth:         defaultCellWidth,
		CellHeight:        defaultCellHeight,
		LogFile:           mustExpand(defaultLogFile),
		RefreshSeconds:    defaultRefreshSeconds,
	}
}

type rawConfig struct {
	Drag         *bool `toml:"drag"`
	Zoomable     *bool `toml:"zoomable"`
	Rotatable    *bool `toml:"rotatable"`
	Scalable     *bool `toml:"scalable"`
	Changeable   *bool `toml:"changeable"`
	Downloadable *bool `toml:"downloadable"`
	Printable    *bool `toml:"printable"`
	Loop         *bool `toml:"loop"`

	NoClose      bool `toml:"no_close"`
	NoImgDetails bool `toml:"no_img_details"`
	NoNavbar     bool `toml:"no_navbar"`
	NoToolbar    bool `toml:"no_toolbar"`
	NoFooter     bool `toml:"no_footer"`

	ZoomSpeed    float64 `toml:"zoom_speed"`
	DefaultScale float64 `toml:"default_scale"`
	MinScale     float64 `toml:"min_scale"`
	MaxScale     float64 `toml:"max_scale"`

	NoResetZoomAfterChange    bool        `toml:"no_reset_zoom_after_change"`
	NoLimitInitializationSize bool        `toml:"no_limit_initialization_size"`
	DefaultSize               *media.Size `toml:"default_size"`
	DefaultImg                string      `toml:"default_img"`

	DisableKeyboardSupport bool  `toml:"disable_keyboard_support"`
	DownloadInNewWindow    bool  `toml:"download_in_new_window"`
	ShowTotal              *bool `toml:"show_total"`

	DownloadDir       string  `toml:"download_dir"`
	PrintCommand      string  `toml:"print_command"`
	NavItemWidth      float64 `toml:"nav_item_width"`
	DocBatchSize      int     `toml:"doc_batch_size"`
	DocPrintBatchSize int     `toml:"doc_print_batch_size"`
	CellWidth         float64 `toml:"cell_width"`
	CellHeight        float64 `toml:"cell_height"`

	LogFile        string `toml:"log_file"`
	Remote         string `toml:"remote"`
	RefreshSeconds *int   `toml:"refresh_seconds"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	raw.apply(&cfg)
	return cfg, nil
}

func (raw rawConfig) apply(cfg *Config) {
	setBool(&cfg.Drag, raw.Drag)
	setBool(&cfg.Zoomable, raw.Zoomable)
	setBool(&cfg.Rotatable, raw.Rotatable)
	setBool(&cfg.Scalable, raw.Scalable)
	setBool(&cfg.Changeable, raw.Changeable)
	setBool(&cfg.Downloadable, raw.Downloadable)
	setBool(&cfg.Printable, raw.Printable)
	setBool(&cfg.Loop, raw.Loop)
	setBool(&cfg.ShowTotal, raw.ShowTotal)

	cfg.NoClose = raw.NoClose
	cfg.NoImgDetails = raw.NoImgDetails
	cfg.NoNavbar = raw.NoNavbar
	cfg.NoToolbar = raw.NoToolbar
	cfg.NoFooter = raw.NoFooter
	cfg.NoResetZoomAfterChange = raw.NoResetZoomAfterChange
	cfg.NoLimitInitializationSize = raw.NoLimitInitializationSize
	cfg.DisableKeyboardSupport = raw.DisableKeyboardSupport
	cfg.DownloadInNewWindow = raw.DownloadInNewWindow

	setPositive(&cfg.ZoomSpeed, raw.ZoomSpeed)
	setPositive(&cfg.DefaultScale, raw.DefaultScale)
	setPositive(&cfg.MinScale, raw.MinScale)
	setPositive(&cfg.MaxScale, raw.MaxScale)
	setPositive(&cfg.NavItemWidth, raw.NavItemWidth)
	setPositive(&cfg.CellWidth, raw.CellWidth)
	setPositive(&cfg.CellHeight, raw.CellHeight)
	if raw.DocBatchSize > 0 {
		cfg.DocBatchSize = raw.DocBatchSize
		cfg.DocPrintBatchSize = raw.DocBatchSize
	}
	if raw.DocPrintBatchSize > 0 {
		cfg.DocPrintBatchSize = raw.DocPrintBatchSize
	}
	if raw.RefreshSeconds != nil && *raw.RefreshSeconds >= 0 {
		cfg.RefreshSeconds = *raw.RefreshSeconds
	}

	if raw.DefaultSize != nil && !raw.DefaultSize.Empty() {
		size := *raw.DefaultSize
		cfg.DefaultSize = &size
	}
	if img := strings.TrimSpace(raw.DefaultImg); img != "" {
		cfg.DefaultImg = expandSource(img)
	}
	if dir := strings.TrimSpace(raw.DownloadDir); dir != "" {
		cfg.DownloadDir = mustExpand(dir)
	}
	if cmd := strings.TrimSpace(raw.PrintCommand); cmd != "" {
		cfg.PrintCommand = cmd
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.Remote = strings.TrimSpace(raw.Remote)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// ViewerOptions maps the config onto viewer options. Hooks and the footer
// height are left for the UI to fill in.
func (c Config) ViewerOptions() viewer.Options {
	opts := viewer.DefaultOptions()
	opts.Drag = c.Drag
	opts.Zoomable = c.Zoomable
	opts.Rotatable = c.Rotatable
	opts.Scalable = c.Scalable
	opts.Changeable = c.Changeable
	opts.Downloadable = c.Downloadable
	opts.Printable = c.Printable
	opts.Loop = c.Loop
	opts.NoClose = c.NoClose
	opts.NoImgDetails = c.NoImgDetails
	opts.NoNavbar = c.NoNavbar
	opts.NoToolbar = c.NoToolbar
	opts.NoFooter = c.NoFooter
	opts.ZoomSpeed = c.ZoomSpeed
	opts.DefaultScale = c.DefaultScale
	opts.MinScale = c.MinScale
	opts.MaxScale = c.MaxScale
	opts.NoResetZoomAfterChange = c.NoResetZoomAfterChange
	opts.NoLimitInitializationSize = c.NoLimitInitializationSize
	opts.DefaultSize = c.DefaultSize
	opts.DefaultImg = c.DefaultImg
	opts.DisableKeyboardSupport = c.DisableKeyboardSupport
	opts.DownloadInNewWindow = c.DownloadInNewWindow
	opts.ShowTotal = c.ShowTotal
	opts.DownloadDir = c.DownloadDir
	opts.NavItemWidth = c.NavItemWidth
	opts.DocBatchSize = c.DocBatchSize
	opts.DocPrintBatchSize = c.DocPrintBatchSize
	return opts
}

// LogPath returns the log file, defaulting when unset.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// expandSource expands local paths and leaves URLs and sentinels alone.
func expandSource(src string) string {
	if strings.Contains(src, "://") || src == media.FailedSource {
		return src
	}
	return mustExpand(src)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
