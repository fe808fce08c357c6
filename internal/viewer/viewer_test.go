package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/lightbox/internal/catalog"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/probe"
)

var testCanvas = media.Size{Width: 1000, Height: 884}

type fakeFiles struct {
	downloads []string
	exports   []probe.Transform
}

func (f *fakeFiles) Download(_ context.Context, src, dir string) (string, error) {
	f.downloads = append(f.downloads, src)
	return dir + "/copy", nil
}

func (f *fakeFiles) Export(_ context.Context, _, _ string, t probe.Transform) error {
	f.exports = append(f.exports, t)
	return nil
}

type harness struct {
	v       *Viewer
	store   *catalog.Store
	prober  *fakeProber
	printer *fakePrinter
	files   *fakeFiles
}

func newHarness(t *testing.T, opts Options, items []media.Item, pager Pager) *harness {
	t.Helper()
	store := &catalog.Store{}
	store.Replace(items, nil)
	h := &harness{
		store: store,
		prober: &fakeProber{sizes: map[string]media.Size{
			"a.png":        {Width: 640, Height: 480},
			"b.png":        {Width: 2000, Height: 500},
			"c.png":        {Width: 300, Height: 300},
			"fallback.png": {Width: 50, Height: 50},
		}},
		printer: &fakePrinter{},
		files:   &fakeFiles{},
	}
	for i := range items {
		if _, ok := h.prober.sizes[items[i].Source]; !ok {
			h.prober.sizes[items[i].Source] = media.Size{Width: 100, Height: 100}
		}
	}
	h.v = New(opts, Deps{
		Items:   store,
		Prober:  h.prober,
		Pager:   pager,
		Pages:   &fakeRenderer{pages: 12},
		Printer: h.printer,
		Files:   h.files,
	})
	h.v.Resize(testCanvas, 660)
	return h
}

// drive feeds every message back into the viewer until no work is left and
// returns the messages that are meant for the host.
func drive(v *Viewer, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case PrintedMsg, DownloadedMsg, ExportedMsg, HiddenMsg:
			out = append(out, msg)
		}
		queue = append(queue, collect(v.Update(msg))...)
	}
	return out
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.HideTransition = 0
	return opts
}

func TestViewer_ShowLoadsFitsAndCentres(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png", "b.png"), nil)
	cmd := h.v.Show(0)
	if d := h.v.Display(); d != DisplayLoading {
		t.Fatalf("display before load = %v, want loading", d)
	}
	drive(h.v, cmd)

	s := h.v.State()
	want := Geometry{Width: 640, Height: 480, Left: 180, Top: 160, ScaleX: 1, ScaleY: 1}
	if diff := cmp.Diff(want, s.Geometry); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if s.Natural != (media.Size{Width: 640, Height: 480}) || s.Loading || s.LoadFailed {
		t.Fatalf("state = %+v", s)
	}
	if d := h.v.Display(); d != DisplayImage {
		t.Fatalf("display = %v, want image", d)
	}
}

func TestViewer_SupersededLoadNeverCommits(t *testing.T) {
	for _, order := range []string{"AB", "BA"} {
		h := newHarness(t, testOptions(), images("a.png", "c.png"), nil)
		cmdA := h.v.Show(0)
		cmdB := h.v.SetActiveIndex(1)

		msgs := map[byte]tea.Msg{'A': cmdA(), 'B': cmdB()}
		for i := range order {
			h.v.Update(msgs[order[i]])
		}
		s := h.v.State()
		if s.ActiveIndex != 1 || s.Natural != (media.Size{Width: 300, Height: 300}) {
			t.Fatalf("order %s: state = %+v, want only B committed", order, s)
		}
		if s.Loading {
			t.Fatalf("order %s: still loading", order)
		}
	}
}

func TestViewer_LoopWrapsAndClamps(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png", "b.png", "c.png"), nil)
	drive(h.v, h.v.Show(2))
	drive(h.v, h.v.Do(ActionNext))
	if got := h.v.State().ActiveIndex; got != 0 {
		t.Fatalf("loop next from 2 = %d, want 0", got)
	}
	drive(h.v, h.v.Do(ActionPrev))
	if got := h.v.State().ActiveIndex; got != 2 {
		t.Fatalf("loop prev from 0 = %d, want 2", got)
	}

	opts := testOptions()
	opts.Loop = false
	h = newHarness(t, opts, images("a.png", "b.png", "c.png"), nil)
	drive(h.v, h.v.Show(2))
	if cmd := h.v.Do(ActionNext); cmd != nil {
		t.Fatal("next past the end without loop issued work")
	}
	if got := h.v.State().ActiveIndex; got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
}

func TestViewer_OnChangeRunsBeforeCommit(t *testing.T) {
	opts := testOptions()
	var seen []int
	var h *harness
	opts.OnChange = func(item media.Item, index int) {
		if h.v.State().ActiveIndex != 0 {
			t.Fatalf("OnChange saw committed index %d", h.v.State().ActiveIndex)
		}
		if item.Source != "b.png" {
			t.Fatalf("OnChange item = %q, want b.png", item.Source)
		}
		seen = append(seen, index)
	}
	h = newHarness(t, opts, images("a.png", "b.png"), nil)
	drive(h.v, h.v.Show(0))
	drive(h.v, h.v.Do(ActionNext))
	if diff := cmp.Diff([]int{1}, seen); diff != "" {
		t.Fatalf("OnChange calls mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_FallbackAndSilentEmpty(t *testing.T) {
	opts := testOptions()
	opts.DefaultImg = "fallback.png"
	items := []media.Item{{Source: "broken.png"}}

	h := newHarness(t, opts, items, nil)
	delete(h.prober.sizes, "broken.png")
	drive(h.v, h.v.Show(0))
	s := h.v.State()
	if !s.LoadFailed || s.Natural != (media.Size{Width: 50, Height: 50}) {
		t.Fatalf("fallback state = %+v", s)
	}
	if d := h.v.Display(); d != DisplayFailed {
		t.Fatalf("display = %v, want failed", d)
	}

	h = newHarness(t, testOptions(), items, nil)
	delete(h.prober.sizes, "broken.png")
	drive(h.v, h.v.Show(0))
	s = h.v.State()
	if s.LoadFailed || s.Loading {
		t.Fatalf("no-fallback state = %+v, want silent empty", s)
	}
	if d := h.v.Display(); d != DisplayEmpty {
		t.Fatalf("display = %v, want empty", d)
	}
}

func TestViewer_FailedSentinelUsesPlaceholder(t *testing.T) {
	h := newHarness(t, testOptions(), []media.Item{{Source: media.FailedSource}}, nil)
	drive(h.v, h.v.Show(0))
	s := h.v.State()
	if s.Natural != h.v.Options().FailedSize || !s.LoadFailed {
		t.Fatalf("state = %+v, want placeholder size", s)
	}
	if len(h.prober.calls) != 0 {
		t.Fatalf("prober called for sentinel: %v", h.prober.calls)
	}
}

func TestViewer_FixedSizeOverridesFit(t *testing.T) {
	opts := testOptions()
	opts.DefaultSize = &media.Size{Width: 400, Height: 400}
	items := images("a.png", "b.png")
	items[1].FixedSize = &media.Size{Width: 120, Height: 90}

	h := newHarness(t, opts, items, nil)
	drive(h.v, h.v.Show(0))
	if g := h.v.State().Geometry; g.Width != 400 || g.Height != 400 {
		t.Fatalf("global size = %vx%v, want 400x400", g.Width, g.Height)
	}
	drive(h.v, h.v.Do(ActionNext))
	if g := h.v.State().Geometry; g.Width != 120 || g.Height != 90 {
		t.Fatalf("item size = %vx%v, want 120x90", g.Width, g.Height)
	}
}

func TestViewer_ZoomResetAfterChange(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png", "c.png"), nil)
	drive(h.v, h.v.Show(0))
	h.v.Do(ActionZoomIn)
	if s := h.v.State().Geometry.ScaleX; !near(s, 1.05) {
		t.Fatalf("scale after zoom in = %v", s)
	}
	drive(h.v, h.v.Do(ActionNext))
	if s := h.v.State().Geometry.ScaleX; s != 1 {
		t.Fatalf("scale after change = %v, want reset to 1", s)
	}

	opts := testOptions()
	opts.NoResetZoomAfterChange = true
	h = newHarness(t, opts, images("a.png", "c.png"), nil)
	drive(h.v, h.v.Show(0))
	h.v.Do(ActionZoomIn)
	drive(h.v, h.v.Do(ActionNext))
	if s := h.v.State().Geometry.ScaleX; !near(s, 1.05) {
		t.Fatalf("scale after change = %v, want kept 1.05", s)
	}
	drive(h.v, h.v.Do(ActionReset))
	if s := h.v.State().Geometry.ScaleX; s != 1 {
		t.Fatalf("scale after reset = %v, want 1", s)
	}
}

func TestViewer_RotateAndFlip(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	h.v.Do(ActionRotateRight)
	h.v.Do(ActionRotateRight)
	h.v.Do(ActionRotateLeft)
	h.v.Do(ActionScaleX)
	g := h.v.State().Geometry
	if g.Rotate != 90 || g.ScaleX != -1 || g.ScaleY != 1 {
		t.Fatalf("geometry = %+v", g)
	}

	drive(h.v, h.v.Export())
	want := []probe.Transform{{RotateDegrees: 90, FlipX: true}}
	if diff := cmp.Diff(want, h.files.exports); diff != "" {
		t.Fatalf("export transform mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_DocumentBusyGatesNavigation(t *testing.T) {
	h := newHarness(t, testOptions(), images("doc.pdf", "a.png", "b.png"), nil)
	loaded := collect(h.v.Show(0))
	if len(loaded) != 1 {
		t.Fatalf("show produced %d messages", len(loaded))
	}
	open := h.v.Update(loaded[0])
	if !h.v.State().DocumentBusy {
		t.Fatal("document open did not raise busy flag")
	}
	if d := h.v.Display(); d != DisplayDocument {
		t.Fatalf("display = %v, want document", d)
	}
	if cmd := h.v.Do(ActionNext); cmd != nil {
		t.Fatal("navigation allowed while busy")
	}
	if cmd := h.v.Select(2); cmd != nil {
		t.Fatal("thumbnail selection allowed while busy")
	}
	for _, item := range h.v.Toolbar() {
		switch item.Key {
		case ActionPrev, ActionNext, ActionPrint:
			if !item.Disabled(true) {
				t.Fatalf("%s not disabled while busy", item.Key)
			}
		}
	}

	drive(h.v, open)
	if h.v.State().DocumentBusy {
		t.Fatal("busy flag not cleared after probe batch")
	}
	if h.v.Document().Rendered() != 1 {
		t.Fatalf("rendered = %d, want probe page", h.v.Document().Rendered())
	}

	drive(h.v, h.v.DocumentScroll(900, 500, 1000))
	if h.v.Document().Rendered() != 6 || h.v.State().DocumentBusy {
		t.Fatalf("after scroll rendered=%d busy=%v", h.v.Document().Rendered(), h.v.State().DocumentBusy)
	}

	drive(h.v, h.v.Do(ActionNext))
	if h.v.State().ActiveIndex != 1 {
		t.Fatalf("index = %d, want 1 after busy cleared", h.v.State().ActiveIndex)
	}
	if h.v.Document().Source() != "" {
		t.Fatal("document not closed after leaving it")
	}
}

func TestViewer_PrintPagedDocument(t *testing.T) {
	opts := testOptions()
	opts.Printable = true
	h := newHarness(t, opts, images("doc.pdf"), nil)
	drive(h.v, h.v.Show(0))

	out := drive(h.v, h.v.Do(ActionPrint))
	if len(h.printer.jobs) != 1 || h.printer.jobs[0].Pages != 12 {
		t.Fatalf("print jobs = %+v, want one 12 page job", h.printer.jobs)
	}
	if h.v.Document().Rendered() != 12 {
		t.Fatalf("rendered = %d, want 12", h.v.Document().Rendered())
	}
	if len(out) != 1 {
		t.Fatalf("host messages = %v, want one PrintedMsg", out)
	}
	if h.v.State().DocumentBusy {
		t.Fatal("still busy after printing")
	}
}

func TestViewer_PrintAndDownloadImage(t *testing.T) {
	opts := testOptions()
	opts.DownloadDir = "/tmp/out"
	items := images("a.png", "c.png")
	items[1].DownloadURL = "https://example.test/c-full.png"
	h := newHarness(t, opts, items, nil)
	drive(h.v, h.v.Show(0))

	drive(h.v, h.v.Do(ActionPrint))
	if len(h.printer.jobs) != 1 || h.printer.jobs[0].Source != "a.png" {
		t.Fatalf("print jobs = %+v", h.printer.jobs)
	}
	drive(h.v, h.v.Do(ActionDownload))
	drive(h.v, h.v.Do(ActionNext))
	drive(h.v, h.v.Do(ActionDownload))
	if diff := cmp.Diff([]string{"a.png", "https://example.test/c-full.png"}, h.files.downloads); diff != "" {
		t.Fatalf("downloads mismatch (-want +got):\n%s", diff)
	}
	if h.v.Status() != "saved /tmp/out/copy" {
		t.Fatalf("status = %q", h.v.Status())
	}
}

func TestViewer_PagingRebasesActiveItem(t *testing.T) {
	items := make([]media.Item, 10)
	for i := range items {
		items[i] = media.Item{ID: string(rune('k' + i)), Source: "a.png"}
	}
	store := &catalog.Store{}
	pager := &prependPager{store: store, items: images("p1.png", "p2.png", "p3.png")}
	h := newHarness(t, testOptions(), items, pager)
	pager.store = h.store

	// Opening near the start pages in the previous items straight away.
	drive(h.v, h.v.Show(2))
	got, _ := h.v.ActiveItem()
	if got.ID != "m" || h.v.State().ActiveIndex != 5 || len(h.v.Items()) != 13 {
		t.Fatalf("active = %q at %d of %d, want m at 5 of 13", got.ID, h.v.State().ActiveIndex, len(h.v.Items()))
	}

	drive(h.v, h.v.Do(ActionPrev))
	got, _ = h.v.ActiveItem()
	if got.ID != "l" || h.v.State().ActiveIndex != 4 {
		t.Fatalf("active = %q at %d, want l at 4", got.ID, h.v.State().ActiveIndex)
	}
}

func TestViewer_SupersededPagingKeepsNewerTarget(t *testing.T) {
	items := make([]media.Item, 30)
	for i := range items {
		items[i] = media.Item{ID: fmt.Sprintf("item%02d", i), Source: "a.png"}
	}
	pager := &pagedPager{pages: [][]media.Item{
		{{ID: "first1", Source: "a.png"}, {ID: "first2", Source: "a.png"}, {ID: "first3", Source: "a.png"}},
		{{ID: "second1", Source: "a.png"}, {ID: "second2", Source: "a.png"}, {ID: "second3", Source: "a.png"}},
	}}
	h := newHarness(t, testOptions(), items, pager)
	pager.store = h.store

	drive(h.v, h.v.Show(3))
	if got := h.v.State().ActiveIndex; got != 6 {
		t.Fatalf("index after show = %d, want 6", got)
	}

	// The previous page lands in the store, but its answer arrives late.
	held := collect(h.v.Do(ActionPrev))
	if h.store.Len() != 36 {
		t.Fatalf("store len = %d, want 36", h.store.Len())
	}

	want := h.v.Items()[10]
	drive(h.v, h.v.Select(10))
	got, _ := h.v.ActiveItem()
	if got.ID != want.ID {
		t.Fatalf("active = %q, want clicked %q", got.ID, want.ID)
	}
	if h.v.State().ActiveIndex != 13 {
		t.Fatalf("index = %d, want 13", h.v.State().ActiveIndex)
	}

	for _, msg := range held {
		drive(h.v, func() tea.Msg { return msg })
	}
	if got, _ := h.v.ActiveItem(); got.ID != want.ID {
		t.Fatalf("late paging answer moved active to %q", got.ID)
	}
}

// pagedPager prepends one page per Previous call.
type pagedPager struct {
	store *catalog.Store
	pages [][]media.Item
}

func (p *pagedPager) Previous(context.Context, int) (int, error) {
	if len(p.pages) == 0 {
		return 0, catalog.ErrNoMore
	}
	n := p.store.Prepend(p.pages[0])
	p.pages = p.pages[1:]
	return n, nil
}

func (p *pagedPager) Next(context.Context, int) (int, error) {
	return 0, catalog.ErrNoMore
}

type prependPager struct {
	store *catalog.Store
	items []media.Item
}

func (p *prependPager) Previous(context.Context, int) (int, error) {
	if len(p.items) == 0 {
		return 0, catalog.ErrNoMore
	}
	n := p.store.Prepend(p.items)
	p.items = nil
	return n, nil
}

func (p *prependPager) Next(context.Context, int) (int, error) {
	return 0, catalog.ErrNoMore
}

func TestViewer_SyncReloadsAndClamps(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png", "b.png", "c.png"), nil)
	drive(h.v, h.v.Show(2))

	h.store.Replace(images("a.png", "c.png"), nil)
	drive(h.v, h.v.Sync())
	s := h.v.State()
	if s.ActiveIndex != 1 || s.Natural != (media.Size{Width: 300, Height: 300}) {
		t.Fatalf("state after shrink = %+v", s)
	}

	if cmd := h.v.Sync(); cmd != nil {
		t.Fatal("sync without a version change issued work")
	}

	h.store.Replace(nil, nil)
	drive(h.v, h.v.Sync())
	if h.v.State().ActiveIndex != NoActive || h.v.Display() != DisplayEmpty {
		t.Fatalf("empty list state = %+v", h.v.State())
	}
}

func TestViewer_SyncRereadsRewrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	writePNG(t, path, 40, 30)

	store := &catalog.Store{}
	store.Replace([]media.Item{media.FromPath(path)}, nil)
	v := New(testOptions(), Deps{Items: store, Prober: probe.New()})
	v.Resize(testCanvas, 660)
	drive(v, v.Show(0))
	if got := v.State().Natural; got != (media.Size{Width: 40, Height: 30}) {
		t.Fatalf("natural = %+v, want 40x30", got)
	}

	writePNG(t, path, 80, 20)
	store.Replace([]media.Item{media.FromPath(path)}, nil)
	drive(v, v.Sync())
	if got := v.State().Natural; got != (media.Size{Width: 80, Height: 20}) {
		t.Fatalf("natural after rewrite = %+v, want 80x20", got)
	}
}

func TestViewer_SyncReportsStaleList(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png"), nil)
	drive(h.v, h.v.Show(0))

	h.store.Replace(nil, errors.New("refresh failed"))
	h.v.Sync()
	if h.v.Stale() {
		t.Fatal("stale after a single failure")
	}
	h.store.Replace(nil, errors.New("refresh failed"))
	h.v.Sync()
	if !h.v.Stale() {
		t.Fatal("not stale after repeated failures")
	}
	if len(h.v.Items()) != 1 {
		t.Fatalf("items = %d, want the last good list", len(h.v.Items()))
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestViewer_HideClearsAndReleasesBindings(t *testing.T) {
	opts := testOptions()
	opts.DisableKeyboardSupport = true
	h := newHarness(t, opts, images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	if h.v.Bound(BindKeyboard) || !h.v.Bound(BindPointer) || !h.v.Bound(BindResize) {
		t.Fatal("unexpected bindings while shown")
	}

	h.v.Do(ActionRotateRight)
	out := drive(h.v, h.v.Close())
	if len(out) != 1 {
		t.Fatalf("host messages = %v, want HiddenMsg", out)
	}
	s := h.v.State()
	if s.Visible || s.Geometry.Rotate != 0 || s.Geometry.Width != 0 {
		t.Fatalf("state after hide = %+v", s)
	}
	if s.ActiveIndex != 0 {
		t.Fatalf("active index = %d, want kept", s.ActiveIndex)
	}
	if h.v.Bound(BindPointer) || h.v.Bound(BindResize) {
		t.Fatal("bindings held after hide")
	}
}

func TestViewer_HideTransitionCanBeInterrupted(t *testing.T) {
	opts := testOptions()
	opts.HideTransition = time.Millisecond
	h := newHarness(t, opts, images("a.png"), nil)
	drive(h.v, h.v.Show(0))

	hide := h.v.Hide()
	if s := h.v.State(); !s.Visible || !s.TransitionStarted {
		t.Fatalf("state during transition = %+v", s)
	}
	if h.v.Do(ActionZoomIn) != nil || h.v.State().Geometry.ScaleX != 1 {
		t.Fatal("toolbar acted during hide transition")
	}
	drive(h.v, h.v.Show(0))
	drive(h.v, hide)
	if !h.v.State().Visible {
		t.Fatal("stale hide transition hid a reshown viewer")
	}

	drive(h.v, h.v.Hide())
	if h.v.State().Visible {
		t.Fatal("hide transition did not finish")
	}
}

func TestViewer_DragAndMaskClick(t *testing.T) {
	opts := testOptions()
	clicks := 0
	opts.OnMaskClick = func() { clicks++ }
	h := newHarness(t, opts, images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	start := h.v.State().Geometry

	h.v.Press(10, 10)
	h.v.Drag(15, 20)
	h.v.Drag(16, 20)
	h.v.Release()
	h.v.Drag(100, 100)

	g := h.v.State().Geometry
	if g.Left != start.Left+6 || g.Top != start.Top+10 {
		t.Fatalf("pan = (%v, %v), want (+6, +10)", g.Left-start.Left, g.Top-start.Top)
	}
	if clicks != 1 {
		t.Fatalf("mask clicks = %d, want 1", clicks)
	}

	opts.Drag = false
	h = newHarness(t, opts, images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	start = h.v.State().Geometry
	h.v.Press(10, 10)
	h.v.Drag(50, 50)
	if h.v.State().Geometry != start {
		t.Fatal("drag moved the image with drag disabled")
	}
}

func TestViewer_WheelZoomsAtPointer(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	before := h.v.State().Geometry
	cx, cy := before.Center()
	ux, uy := (300-cx)/before.ScaleX, (250-cy)/before.ScaleY

	h.v.Wheel(300, 250, 1)
	after := h.v.State().Geometry
	x, y := screenPoint(after, ux, uy)
	if !near(x, 300) || !near(y, 250) {
		t.Fatalf("pointer anchor moved to (%v, %v)", x, y)
	}

	opts := testOptions()
	opts.Zoomable = false
	h = newHarness(t, opts, images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	h.v.Wheel(300, 250, 1)
	if h.v.State().Geometry.ScaleX != 1 {
		t.Fatal("wheel zoomed with zoom disabled")
	}
}

func TestViewer_ResizeRecentres(t *testing.T) {
	h := newHarness(t, testOptions(), images("a.png"), nil)
	drive(h.v, h.v.Show(0))
	h.v.Resize(media.Size{Width: 1200, Height: 1084}, 800)
	g := h.v.State().Geometry
	if g.Left != 280 || g.Top != 260 {
		t.Fatalf("recentred at (%v, %v), want (280, 260)", g.Left, g.Top)
	}
	if h.v.Nav().VisibleSlots() != 7 {
		t.Fatalf("slots = %d, want 7", h.v.Nav().VisibleSlots())
	}
}

func TestViewer_ToolbarFilteringAndCustomEntries(t *testing.T) {
	opts := testOptions()
	opts.Zoomable = false
	opts.Printable = false
	var clicked []string
	opts.CustomToolbar = func(items []ToolbarItem) []ToolbarItem {
		return append(items, ToolbarItem{Key: "share", Label: "S", OnClick: func(it media.Item) {
			clicked = append(clicked, it.Source)
		}})
	}
	h := newHarness(t, opts, images("a.png"), nil)

	var keys []ActionKey
	for _, it := range h.v.Toolbar() {
		keys = append(keys, it.Key)
	}
	want := []ActionKey{ActionPrev, ActionReset, ActionNext, ActionRotateLeft, ActionRotateRight, ActionScaleX, ActionScaleY, "share"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("toolbar keys mismatch (-want +got):\n%s", diff)
	}

	drive(h.v, h.v.Show(0))
	toolbar := h.v.Toolbar()
	h.v.Activate(toolbar[len(toolbar)-1])
	if diff := cmp.Diff([]string{"a.png"}, clicked); diff != "" {
		t.Fatalf("custom click mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_AttributesAndEmptyList(t *testing.T) {
	opts := testOptions()
	opts.NoImgDetails = true
	items := images("a.png", "b.png")
	items[0].Alt = "A cat"
	h := newHarness(t, opts, items, nil)
	drive(h.v, h.v.Show(0))

	want := Attributes{Alt: "A cat", Natural: media.Size{Width: 640, Height: 480}, Position: 1, Total: 2, ShowTotal: true}
	if diff := cmp.Diff(want, h.v.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	h = newHarness(t, testOptions(), nil, nil)
	drive(h.v, h.v.Show(3))
	if h.v.State().ActiveIndex != NoActive || h.v.Display() != DisplayEmpty {
		t.Fatalf("empty list state = %+v display=%v", h.v.State(), h.v.Display())
	}
	if cmd := h.v.Do(ActionNext); cmd != nil {
		t.Fatal("navigation on empty list issued work")
	}
}
