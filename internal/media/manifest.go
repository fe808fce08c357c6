package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Manifest is a parsed item list.
type Manifest struct {
	Remote string `toml:"remote"`
	Items  []Item `toml:"items"`
}

// LoadManifest reads a TOML manifest and resolves relative sources against
// the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	base := filepath.Dir(path)
	items := m.Items[:0]
	for _, item := range m.Items {
		item.Source = resolveSource(base, item.Source)
		item.Thumbnail = resolveSource(base, item.Thumbnail)
		if strings.TrimSpace(item.Source) == "" {
			continue
		}
		if item.Kind == "" {
			item.Kind = KindFromPath(item.Source)
		}
		if item.ID == "" {
			item.ID = item.Source
		}
		items = append(items, item)
	}
	m.Items = items
	m.Remote = strings.TrimSpace(m.Remote)
	return m, nil
}

func resolveSource(base, src string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || trimmed == FailedSource || strings.Contains(trimmed, "://") || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(base, trimmed)
}
