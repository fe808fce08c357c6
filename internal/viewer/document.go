package viewer

import (
	"context"
	"errors"
	"log"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/document"
)

// PageRenderer is the document-rendering collaborator.
type PageRenderer interface {
	PageCount(ctx context.Context, src string) (int, error)
	RenderPage(ctx context.Context, src string, number int) (document.PageInfo, error)
}

var errNoRenderer = errors.New("no page renderer configured")

// DocState is the phase of the page controller.
type DocState int

const (
	DocIdle DocState = iota
	DocLoading
	DocPrintLoading
)

func (s DocState) String() string {
	switch s {
	case DocLoading:
		return "loading"
	case DocPrintLoading:
		return "print-loading"
	default:
		return "idle"
	}
}

// DocumentOpenedMsg carries the page count of a newly opened document.
type DocumentOpenedMsg struct {
	Gen   uint64
	Pages int
	Err   error
}

// PageRenderedMsg reports one page render completion, successful or not.
type PageRenderedMsg struct {
	Gen  uint64
	Page document.PageInfo
	Err  error
}

// PrintedMsg reports the end of a print job.
type PrintedMsg struct {
	Source string
	Err    error
}

// RenderedPage is one materialised page of the open document.
type RenderedPage struct {
	document.PageInfo
	Failed bool
}

// DocumentPages renders a paged document progressively and assembles it
// completely before printing. All methods run on the event loop; page
// renders run as commands and report back through messages tagged with the
// document generation so results for a closed document are dropped.
type DocumentPages struct {
	renderer       PageRenderer
	printer        document.Printer
	batchSize      int
	printBatchSize int

	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc

	source    string
	title     string
	state     DocState
	total     int
	requested int
	rendered  int
	watermark int
	printing  bool
	pages     []RenderedPage
	err       error

	// batches records the size of every page request burst.
	batches []int
}

// NewDocumentPages builds a controller. Batch sizes below one fall back to
// DefaultDocBatchSize.
func NewDocumentPages(renderer PageRenderer, printer document.Printer, batchSize, printBatchSize int) *DocumentPages {
	if batchSize <= 0 {
		batchSize = DefaultDocBatchSize
	}
	if printBatchSize <= 0 {
		printBatchSize = batchSize
	}
	return &DocumentPages{
		renderer:       renderer,
		printer:        printer,
		batchSize:      batchSize,
		printBatchSize: printBatchSize,
		ctx:            context.Background(),
	}
}

// Open discards the current document and starts loading src. The document
// is busy until its probe page has rendered.
func (d *DocumentPages) Open(src, title string) tea.Cmd {
	d.Close()
	d.gen++
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.source = src
	d.title = title
	d.state = DocLoading

	gen, ctx, renderer := d.gen, d.ctx, d.renderer
	return func() tea.Msg {
		if renderer == nil {
			return DocumentOpenedMsg{Gen: gen}
		}
		n, err := renderer.PageCount(ctx, src)
		return DocumentOpenedMsg{Gen: gen, Pages: n, Err: err}
	}
}

// Close drops the document and cancels its outstanding renders.
func (d *DocumentPages) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	d.source = ""
	d.title = ""
	d.state = DocIdle
	d.total = 0
	d.requested = 0
	d.rendered = 0
	d.watermark = 0
	d.printing = false
	d.pages = nil
	d.err = nil
	d.batches = nil
}

// OnOpened handles DocumentOpenedMsg. The render counter restarts here.
func (d *DocumentPages) OnOpened(msg DocumentOpenedMsg) tea.Cmd {
	if msg.Gen != d.gen {
		return nil
	}
	if msg.Err != nil {
		log.Printf("open document %s: %v", d.source, msg.Err)
		d.err = msg.Err
		d.state = DocIdle
		d.printing = false
		return nil
	}
	d.total = msg.Pages
	d.rendered = 0
	d.requested = 0
	d.watermark = 0
	if d.total <= 0 {
		d.state = DocIdle
		d.printing = false
		return nil
	}
	if d.printing {
		return d.request(d.printBatchSize)
	}
	return d.request(1)
}

// OnPageRendered handles one completion. When the batch watermark is
// reached the burst ends; while printing the next burst starts, or the
// print job is issued once every page is in.
func (d *DocumentPages) OnPageRendered(msg PageRenderedMsg) tea.Cmd {
	if msg.Gen != d.gen {
		return nil
	}
	if msg.Err != nil {
		log.Printf("render page %d of %s: %v", msg.Page.Number, d.source, msg.Err)
	}
	d.rendered++
	d.insert(RenderedPage{PageInfo: msg.Page, Failed: msg.Err != nil})

	if d.rendered < d.watermark {
		return nil
	}
	if !d.printing {
		d.state = DocIdle
		return nil
	}
	if d.rendered < d.total {
		return d.request(d.printBatchSize)
	}
	d.printing = false
	d.state = DocIdle
	return d.printCmd()
}

// OnScroll loads the next batch when the view is within one viewport height
// of the bottom of the rendered content and nothing is in flight.
func (d *DocumentPages) OnScroll(top, viewport, content float64) tea.Cmd {
	if d.state != DocIdle || d.printing || d.total == 0 {
		return nil
	}
	if top+2*viewport < content {
		return nil
	}
	return d.request(d.batchSize)
}

// Print renders every remaining page with the print batch size, then
// prints. Scroll loading is suspended until the job is issued.
func (d *DocumentPages) Print() tea.Cmd {
	if d.source == "" || d.printing {
		return nil
	}
	d.printing = true
	switch {
	case d.state != DocIdle:
		// The running burst continues into print batches when it completes,
		// or OnOpened starts them.
		d.state = DocPrintLoading
		return nil
	case d.rendered >= d.total:
		d.printing = false
		return d.printCmd()
	default:
		return d.request(d.printBatchSize)
	}
}

func (d *DocumentPages) request(n int) tea.Cmd {
	from := d.requested + 1
	to := min(d.requested+n, d.total)
	if from > to {
		return nil
	}
	d.requested = to
	d.watermark = to
	d.batches = append(d.batches, to-from+1)
	if d.printing {
		d.state = DocPrintLoading
	} else {
		d.state = DocLoading
	}

	gen, ctx, renderer, src := d.gen, d.ctx, d.renderer, d.source
	cmds := make([]tea.Cmd, 0, to-from+1)
	for page := from; page <= to; page++ {
		cmds = append(cmds, func() tea.Msg {
			if renderer == nil {
				return PageRenderedMsg{Gen: gen, Page: document.PageInfo{Number: page}, Err: errNoRenderer}
			}
			info, err := renderer.RenderPage(ctx, src, page)
			if info.Number == 0 {
				info.Number = page
			}
			return PageRenderedMsg{Gen: gen, Page: info, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (d *DocumentPages) printCmd() tea.Cmd {
	if d.printer == nil {
		return nil
	}
	job := document.PrintJob{Source: d.source, Title: d.title, Pages: d.total}
	printer := d.printer
	return func() tea.Msg {
		return PrintedMsg{Source: job.Source, Err: printer.Print(context.Background(), job)}
	}
}

func (d *DocumentPages) insert(p RenderedPage) {
	i := sort.Search(len(d.pages), func(i int) bool { return d.pages[i].Number >= p.Number })
	d.pages = append(d.pages, RenderedPage{})
	copy(d.pages[i+1:], d.pages[i:])
	d.pages[i] = p
}

// Busy reports whether a page burst is in flight or a print is pending.
func (d *DocumentPages) Busy() bool {
	return d.state != DocIdle || d.printing
}

// State returns the controller phase.
func (d *DocumentPages) State() DocState { return d.state }

// Source returns the open document, or "".
func (d *DocumentPages) Source() string { return d.source }

// Title returns the document title used for print jobs.
func (d *DocumentPages) Title() string { return d.title }

// TotalPages is zero until the page count is known.
func (d *DocumentPages) TotalPages() int { return d.total }

// Rendered is the number of page completions since the document opened.
func (d *DocumentPages) Rendered() int { return d.rendered }

// Printing reports whether a print is waiting for pages.
func (d *DocumentPages) Printing() bool { return d.printing }

// Pages returns the rendered pages in page order.
func (d *DocumentPages) Pages() []RenderedPage { return d.pages }

// Err returns the error that prevented the document from opening.
func (d *DocumentPages) Err() error { return d.err }

// Batches returns the size of every page request burst so far.
func (d *DocumentPages) Batches() []int { return d.batches }
