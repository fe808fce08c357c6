package probe

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Transform is the orientation applied when exporting an image.
type Transform struct {
	RotateDegrees float64
	FlipX         bool
	FlipY         bool
}

// Apply returns img with the rotation (snapped to quarter turns) and flips
// applied.
func (t Transform) Apply(img image.Image) image.Image {
	out := img
	if t.FlipX {
		out = imaging.FlipH(out)
	}
	if t.FlipY {
		out = imaging.FlipV(out)
	}
	// Screen rotation is clockwise; imaging rotates counter-clockwise.
	switch quarterTurns(t.RotateDegrees) {
	case 1:
		out = imaging.Rotate270(out)
	case 2:
		out = imaging.Rotate180(out)
	case 3:
		out = imaging.Rotate90(out)
	}
	return out
}

func quarterTurns(deg float64) int {
	turns := int(deg/90) % 4
	if turns < 0 {
		turns += 4
	}
	return turns
}

// Export decodes src, applies t and writes the result to dst. The output
// format follows dst's extension.
func (p *Prober) Export(ctx context.Context, src, dst string, t Transform) error {
	rc, err := p.Open(ctx, src)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := imaging.Save(t.Apply(img), dst); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// Download copies src into dir and returns the written path.
func (p *Prober) Download(ctx context.Context, src, dir string) (string, error) {
	rc, err := p.Open(ctx, src)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	dst := filepath.Join(dir, baseName(src))
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create download: %w", err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write download: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close download: %w", err)
	}
	return dst, nil
}

// ExportPath names the file Export writes for src inside dir. Formats
// imaging cannot encode are exported as PNG.
func ExportPath(src, dir string) string {
	name := baseName(src)
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if _, err := imaging.FormatFromExtension(ext); err != nil || ext == "" {
		ext = ".png"
	}
	return filepath.Join(dir, stem+"-export"+ext)
}

func baseName(src string) string {
	if isRemote(src) {
		if u, err := url.Parse(src); err == nil {
			if name := path.Base(u.Path); name != "" && name != "/" && name != "." {
				return name
			}
		}
		return "download"
	}
	name := filepath.Base(strings.TrimSpace(src))
	if name == "" || name == "." {
		return "download"
	}
	return name
}
