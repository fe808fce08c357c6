package media

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind classifies a media item.
type Kind string

const (
	KindImage       Kind = "image"
	KindPDF         Kind = "pdf"
	KindSpreadsheet Kind = "spreadsheet"
	KindDocument    Kind = "document"
)

// FailedSource is the primary source of an item that is known to be
// unrenderable. Loading it never touches the filesystem or network.
const FailedSource = "failed:"

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Empty reports whether either dimension is unset.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Item describes one viewable entry. Items are owned by the caller and never
// mutated by the viewer.
type Item struct {
	ID          string `toml:"id" json:"id"`
	Thumbnail   string `toml:"thumbnail" json:"thumbnail"`
	Source      string `toml:"src" json:"src"`
	Kind        Kind   `toml:"kind" json:"kind"`
	Alt         string `toml:"alt" json:"alt"`
	DownloadURL string `toml:"download_url" json:"downloadUrl"`
	FixedSize   *Size  `toml:"fixed_size" json:"fixedSize,omitempty"`
}

// Paged reports whether the item is a multi-page document rendered page by page.
func (i Item) Paged() bool {
	return i.kind() == KindPDF
}

// Rasterizable reports whether the primary source can be probed as an image.
func (i Item) Rasterizable() bool {
	if strings.TrimSpace(i.Source) == "" || i.Source == FailedSource {
		return false
	}
	switch i.kind() {
	case KindPDF, KindSpreadsheet, KindDocument:
		return false
	}
	return true
}

// EffectiveKind returns the declared kind, or one derived from the source extension.
func (i Item) EffectiveKind() Kind {
	return i.kind()
}

func (i Item) kind() Kind {
	if i.Kind != "" {
		return i.Kind
	}
	return KindFromPath(i.Source)
}

// Label is a short human readable name for the item.
func (i Item) Label() string {
	if alt := strings.TrimSpace(i.Alt); alt != "" {
		return alt
	}
	src := strings.TrimSpace(i.Source)
	if src == "" || src == FailedSource {
		return KindLabel(i.kind())
	}
	if strings.Contains(src, "://") {
		return path.Base(src)
	}
	return filepath.Base(src)
}

// KindFromPath guesses the kind from a file name or URL.
func KindFromPath(p string) Kind {
	clean := p
	if idx := strings.IndexAny(clean, "?#"); idx >= 0 {
		clean = clean[:idx]
	}
	switch strings.ToLower(path.Ext(clean)) {
	case ".pdf":
		return KindPDF
	case ".xls", ".xlsx", ".csv", ".ods":
		return KindSpreadsheet
	case ".doc", ".docx", ".odt", ".rtf":
		return KindDocument
	default:
		return KindImage
	}
}

// KnownExtension reports whether the file name has an extension the viewer lists.
func KnownExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp",
		".pdf", ".xls", ".xlsx", ".csv", ".ods", ".doc", ".docx", ".odt", ".rtf":
		return true
	}
	return false
}

var titleCaser = cases.Title(language.English)

// KindLabel returns the display label for a kind ("Pdf", "Spreadsheet").
func KindLabel(k Kind) string {
	if k == "" {
		k = KindImage
	}
	return titleCaser.String(string(k))
}

// FromPath builds an item for a local file.
func FromPath(p string) Item {
	return Item{
		ID:     filepath.Base(p),
		Source: p,
		Kind:   KindFromPath(p),
	}
}
