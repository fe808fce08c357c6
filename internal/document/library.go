package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ledongthuc/pdf"
)

// Letter size in points, used when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Opener returns a reader for a document source (local path or URL).
type Opener interface {
	Open(ctx context.Context, src string) (io.ReadCloser, error)
}

// PageInfo describes one materialised page.
type PageInfo struct {
	Number int
	Width  float64
	Height float64
}

// Library opens PDF documents once and answers page questions about them.
type Library struct {
	opener Opener

	mu   sync.Mutex
	docs map[string]*pdf.Reader
}

// NewLibrary builds a Library reading sources through opener.
func NewLibrary(opener Opener) *Library {
	return &Library{opener: opener, docs: make(map[string]*pdf.Reader)}
}

// PageCount returns the number of pages in src.
func (l *Library) PageCount(ctx context.Context, src string) (int, error) {
	r, err := l.reader(ctx, src)
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// RenderPage materialises page number (1-based) of src. Pixel rasterisation
// is left to the terminal front end; the library resolves the page box.
func (l *Library) RenderPage(ctx context.Context, src string, number int) (PageInfo, error) {
	r, err := l.reader(ctx, src)
	if err != nil {
		return PageInfo{}, err
	}
	if number < 1 || number > r.NumPage() {
		return PageInfo{}, fmt.Errorf("page %d out of range 1-%d", number, r.NumPage())
	}
	if err := ctx.Err(); err != nil {
		return PageInfo{}, err
	}
	page := r.Page(number)
	if page.V.IsNull() {
		return PageInfo{}, fmt.Errorf("page %d not found", number)
	}
	w, h := mediaBox(page.V)
	return PageInfo{Number: number, Width: w, Height: h}, nil
}

// Evict drops the cached reader for src so a rewritten file is read again.
func (l *Library) Evict(src string) {
	l.mu.Lock()
	delete(l.docs, src)
	l.mu.Unlock()
}

func (l *Library) reader(ctx context.Context, src string) (*pdf.Reader, error) {
	l.mu.Lock()
	if r, ok := l.docs[src]; ok {
		l.mu.Unlock()
		return r, nil
	}
	l.mu.Unlock()

	if l.opener == nil {
		return nil, fmt.Errorf("document library has no opener")
	}
	rc, err := l.opener.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	l.mu.Lock()
	l.docs[src] = r
	l.mu.Unlock()
	return r, nil
}

// mediaBox walks up the page tree because MediaBox is inheritable.
func mediaBox(v pdf.Value) (float64, float64) {
	for node, depth := v, 0; !node.IsNull() && depth < 32; node, depth = node.Key("Parent"), depth+1 {
		box := node.Key("MediaBox")
		if box.Len() != 4 {
			continue
		}
		w := box.Index(2).Float64() - box.Index(0).Float64()
		h := box.Index(3).Float64() - box.Index(1).Float64()
		if w > 0 && h > 0 {
			return w, h
		}
	}
	return defaultPageWidth, defaultPageHeight
}
