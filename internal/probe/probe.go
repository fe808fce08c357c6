package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/five82/lightbox/internal/media"
)

// ErrUnsupported is returned for sources that are not rasterizable images.
var ErrUnsupported = errors.New("source is not a rasterizable image")

const fetchTimeout = 15 * time.Second

// Prober resolves natural image dimensions and caches them by source.
//
// Prober is safe for concurrent use; probe commands run on bubbletea's
// command goroutines while the UI reads the cache.
type Prober struct {
	mu   sync.RWMutex
	dims map[string]media.Size

	http *http.Client
}

// New creates a Prober with an empty cache.
func New() *Prober {
	return &Prober{
		dims: make(map[string]media.Size),
		http: &http.Client{Timeout: fetchTimeout},
	}
}

// Dimensions returns the natural width and height of src, honouring EXIF
// orientation. Results are cached using the exact source string.
func (p *Prober) Dimensions(ctx context.Context, src string) (media.Size, error) {
	if strings.TrimSpace(src) == "" || src == media.FailedSource {
		return media.Size{}, ErrUnsupported
	}
	p.mu.RLock()
	if size, ok := p.dims[src]; ok {
		p.mu.RUnlock()
		return size, nil
	}
	p.mu.RUnlock()

	rc, err := p.Open(ctx, src)
	if err != nil {
		return media.Size{}, err
	}
	defer func() { _ = rc.Close() }()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return media.Size{}, fmt.Errorf("decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return media.Size{}, err
	}
	bounds := img.Bounds()
	size := media.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}

	p.mu.Lock()
	p.dims[src] = size
	p.mu.Unlock()
	return size, nil
}

// Evict removes a cached entry so the next probe reads the source again.
func (p *Prober) Evict(src string) {
	p.mu.Lock()
	delete(p.dims, src)
	p.mu.Unlock()
}

// Open returns a reader for a local path or an http(s) URL.
func (p *Prober) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if isRemote(src) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := p.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch source: %w", err)
		}
		if resp.StatusCode >= 400 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("fetch source: status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
