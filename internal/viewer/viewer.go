package viewer

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/catalog"
	"github.com/five82/lightbox/internal/document"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/probe"
)

// ItemSource provides the item list. *catalog.Store implements it.
type ItemSource interface {
	Snapshot() catalog.Snapshot
	Version() uint64
	// Stale reports that refreshes of the list keep failing.
	Stale() bool
}

// evicter is implemented by collaborators that cache per source.
type evicter interface {
	Evict(src string)
}

// Files copies and exports sources.
type Files interface {
	Download(ctx context.Context, src, dir string) (string, error)
	Export(ctx context.Context, src, dst string, t probe.Transform) error
}

// Deps are the collaborators of a Viewer. Any of them may be nil; the
// features they back are then no-ops.
type Deps struct {
	Items   ItemSource
	Prober  Prober
	Pager   Pager
	Pages   PageRenderer
	Printer document.Printer
	Files   Files
	// Browse opens a URL outside the terminal.
	Browse func(url string) error
}

// Binding is an input subscription held while the viewer is shown.
type Binding uint8

const (
	BindKeyboard Binding = 1 << iota
	BindPointer
	BindResize
)

// DownloadedMsg reports a finished download.
type DownloadedMsg struct {
	Path string
	Err  error
}

// ExportedMsg reports a finished export.
type ExportedMsg struct {
	Path string
	Err  error
}

// HiddenMsg is emitted once the hide transition has finished.
type HiddenMsg struct{}

type hideDoneMsg struct {
	seq uint64
}

// Attributes is the text shown above the toolbar.
type Attributes struct {
	Alt         string
	Natural     media.Size
	Position    int // one-based
	Total       int
	ShowDetails bool
	ShowTotal   bool
}

// Viewer coordinates the reducer and the three controllers. It is driven
// from a single event loop: every method must be called from the bubbletea
// Update goroutine, and asynchronous work comes back through Update.
type Viewer struct {
	opts Options
	deps Deps

	state   State
	items   []media.Item
	version uint64

	loader *ImageLoader
	nav    *NavViewport
	doc    *DocumentPages

	canvas   media.Size
	bindings Binding

	dragging     bool
	dragX, dragY float64

	hideSeq uint64
	status  string
	stale   bool

	// navKey identifies the item the pending navigation aims at.
	navKey string
}

// New builds a hidden viewer.
func New(opts Options, deps Deps) *Viewer {
	opts = opts.normalized()
	return &Viewer{
		opts:   opts,
		deps:   deps,
		state:  NewState(opts.DefaultScale),
		loader: NewImageLoader(deps.Prober, opts.DefaultImg),
		nav:    NewNavViewport(opts.NavItemWidth, deps.Pager),
		doc:    NewDocumentPages(deps.Pages, deps.Printer, opts.DocBatchSize, opts.DocPrintBatchSize),
	}
}

func (v *Viewer) dispatch(a Action) {
	v.state = Reduce(v.state, a)
}

// Show makes the viewer visible at index and acquires its input bindings.
func (v *Viewer) Show(index int) tea.Cmd {
	v.hideSeq++
	v.sync()
	v.dispatch(SetVisible{Visible: true})
	v.acquire()

	idx := v.clampIndex(index)
	v.nav.Reset(max(idx, 0))
	v.dispatch(SetActiveIndex{Index: idx})
	load := v.flush()
	if idx == NoActive || v.deps.Pager == nil {
		return load
	}
	// Opening near either end pages in the neighbours right away.
	v.navKey = itemKey(v.items[idx])
	return tea.Batch(load, v.nav.Navigate(idx, len(v.items), false))
}

// Hide starts the hide transition and releases the input bindings. The
// state is cleared when the transition ends.
func (v *Viewer) Hide() tea.Cmd {
	if !v.state.Visible || v.state.TransitionStarted {
		return nil
	}
	v.release()
	v.loader.Cancel()
	v.nav.Cancel()
	v.dispatch(Update{Fields: FieldTransition, Values: State{TransitionStarted: true}})

	v.hideSeq++
	if v.opts.HideTransition <= 0 {
		return v.finishHide()
	}
	seq := v.hideSeq
	return tea.Tick(v.opts.HideTransition, func(time.Time) tea.Msg { return hideDoneMsg{seq: seq} })
}

// Close runs the close hook and hides the viewer.
func (v *Viewer) Close() tea.Cmd {
	if v.opts.OnClose != nil {
		v.opts.OnClose()
	}
	return v.Hide()
}

func (v *Viewer) finishHide() tea.Cmd {
	v.dispatch(SetVisible{Visible: false})
	v.dispatch(Clear{Scale: v.opts.DefaultScale})
	v.doc.Close()
	v.syncBusy()
	return func() tea.Msg { return HiddenMsg{} }
}

func (v *Viewer) acquire() {
	v.bindings = BindPointer | BindResize
	if !v.opts.DisableKeyboardSupport {
		v.bindings |= BindKeyboard
	}
}

func (v *Viewer) release() {
	v.bindings = 0
	v.dragging = false
}

// Bound reports whether the viewer currently listens to b.
func (v *Viewer) Bound(b Binding) bool {
	return v.bindings&b != 0
}

// SetActiveIndex selects index from outside, without the change hook.
func (v *Viewer) SetActiveIndex(index int) tea.Cmd {
	v.sync()
	idx := v.clampIndex(index)
	if idx == v.state.ActiveIndex && !v.state.PendingIndexLoad {
		return nil
	}
	v.nav.Move(idx, len(v.items))
	v.dispatch(SetActiveIndex{Index: idx})
	return v.flush()
}

// Sync picks up item list changes. While shown, the active item is
// reloaded so removed or replaced entries never linger on screen.
func (v *Viewer) Sync() tea.Cmd {
	if v.deps.Items == nil {
		return nil
	}
	v.stale = v.deps.Items.Stale()
	if v.nav.Pending() || v.deps.Items.Version() == v.version {
		return nil
	}
	before := len(v.items)
	v.sync()
	if !v.state.Visible || v.state.TransitionStarted {
		return nil
	}
	idx := v.clampIndex(v.state.ActiveIndex)
	if len(v.items) != before {
		v.nav.Reset(max(idx, 0))
	}
	if item, ok := v.item(idx); ok {
		v.evict(item.Source)
	}
	v.dispatch(SetActiveIndex{Index: idx})
	return v.flush()
}

// evict drops cached data for src so the reload reads the file again. An
// open document is reopened unless a render or print is in flight.
func (v *Viewer) evict(src string) {
	for _, c := range []any{v.deps.Prober, v.deps.Pages} {
		if e, ok := c.(evicter); ok {
			e.Evict(src)
		}
	}
	if v.doc.Source() == src && !v.doc.Busy() {
		v.closeDocument()
	}
}

func (v *Viewer) sync() {
	if v.deps.Items == nil {
		return
	}
	snap := v.deps.Items.Snapshot()
	v.items = snap.Items
	v.version = snap.Version
}

func (v *Viewer) clampIndex(index int) int {
	n := len(v.items)
	switch {
	case n == 0:
		return NoActive
	case index < 0:
		return 0
	case index >= n:
		return n - 1
	}
	return index
}

// flush starts the load owed after an index change.
func (v *Viewer) flush() tea.Cmd {
	if !v.state.Visible || !v.state.PendingIndexLoad {
		return nil
	}
	v.dispatch(Update{Fields: FieldPendingIndexLoad})
	return v.load(v.state.ActiveIndex, false)
}

func (v *Viewer) load(index int, reset bool) tea.Cmd {
	item, ok := v.item(index)
	if !ok {
		v.loader.Cancel()
		v.closeDocument()
		v.dispatch(Update{
			Fields: FieldGeometry | FieldNatural | FieldLoading | FieldLoadFailed,
			Values: State{Geometry: v.state.Geometry.withSize(0, 0)},
		})
		return nil
	}
	v.dispatch(loadingUpdate(true, false))
	return v.loader.Load(index, item, reset)
}

func (g Geometry) withSize(w, h float64) Geometry {
	g.Width, g.Height = w, h
	return g
}

// Update handles the viewer's own messages and returns follow-up work.
func (v *Viewer) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case ImageLoadedMsg:
		return v.applyLoad(m)
	case IndexResolvedMsg:
		return v.commitIndex(m)
	case DocumentOpenedMsg:
		cmd := v.doc.OnOpened(m)
		v.syncBusy()
		return cmd
	case PageRenderedMsg:
		cmd := v.doc.OnPageRendered(m)
		v.syncBusy()
		return cmd
	case PrintedMsg:
		if m.Err != nil {
			log.Printf("print %s: %v", m.Source, m.Err)
			v.status = "print failed"
		} else {
			v.status = "sent to printer"
		}
	case DownloadedMsg:
		if m.Err != nil {
			log.Printf("download: %v", m.Err)
			v.status = "download failed"
		} else {
			v.status = "saved " + m.Path
		}
	case ExportedMsg:
		if m.Err != nil {
			log.Printf("export: %v", m.Err)
			v.status = "export failed"
		} else {
			v.status = "exported " + m.Path
		}
	case hideDoneMsg:
		if m.seq == v.hideSeq && v.state.TransitionStarted {
			return v.finishHide()
		}
	}
	return nil
}

func (v *Viewer) applyLoad(msg ImageLoadedMsg) tea.Cmd {
	if !v.loader.Current(msg) || !v.state.Visible {
		return nil
	}
	item, ok := v.item(msg.Index)
	if !ok || msg.Index != v.state.ActiveIndex {
		v.dispatch(loadingUpdate(false, false))
		return nil
	}

	scaleX, scaleY := v.opts.DefaultScale, v.opts.DefaultScale
	if v.opts.NoResetZoomAfterChange && !msg.Reset {
		scaleX, scaleY = v.state.Geometry.ScaleX, v.state.Geometry.ScaleY
	}
	all := FieldGeometry | FieldNatural | FieldLoading | FieldLoadFailed

	switch {
	case msg.Document:
		page := v.pageArea()
		v.dispatch(Update{Fields: all, Values: State{Geometry: Geometry{
			Width: page.Width, Height: page.Height,
			ScaleX: scaleX, ScaleY: scaleY,
		}}})
		if item.Paged() {
			if v.doc.Source() == item.Source {
				return nil
			}
			cmd := v.doc.Open(item.Source, item.Label())
			v.syncBusy()
			return cmd
		}
		v.closeDocument()
		return nil
	case msg.Empty, msg.Failed:
		v.closeDocument()
		v.dispatch(Update{Fields: all, Values: State{
			Geometry:   Geometry{ScaleX: scaleX, ScaleY: scaleY},
			LoadFailed: msg.Failed,
		}})
		return nil
	}

	v.closeDocument()
	natural := msg.Natural
	if msg.Placeholder {
		natural = v.opts.FailedSize
	}
	size := FitSize(DisplaySize(natural, item, v.opts.DefaultSize), v.canvas, v.opts.FooterHeight, v.opts.NoLimitInitializationSize)
	left, top := Center(size, v.canvas, v.opts.FooterHeight)
	v.dispatch(Update{Fields: all, Values: State{
		Geometry: Geometry{
			Width: size.Width, Height: size.Height, Top: top, Left: left,
			ScaleX: scaleX, ScaleY: scaleY,
		},
		Natural:    natural,
		LoadFailed: msg.Fallback || msg.Placeholder,
	}})
	return nil
}

func (v *Viewer) commitIndex(msg IndexResolvedMsg) tea.Cmd {
	if !v.nav.Current(msg) {
		return nil
	}
	v.nav.Done()
	if !v.state.Visible || v.state.TransitionStarted {
		return nil
	}
	prev, hadPrev := v.ActiveItem()
	before := len(v.items)
	v.sync()
	idx := v.locate(msg.Index, v.navKey)
	if idx == NoActive || (idx == v.state.ActiveIndex && len(v.items) == before) {
		return nil
	}
	// A rebase that keeps the same item on screen is not a change.
	moved := !hadPrev || itemKey(prev) != itemKey(v.items[idx])
	if moved && v.opts.OnChange != nil {
		v.opts.OnChange(v.items[idx], idx)
	}
	if len(v.items) != before {
		v.nav.Reset(idx)
	} else {
		v.nav.Move(idx, len(v.items))
	}
	v.dispatch(SetActiveIndex{Index: idx})
	return v.flush()
}

// locate maps a resolved index onto the synced list. The list may have grown
// since the navigation started, also through paging of a navigation that was
// superseded, so the target is found again by key; the match nearest index
// wins when keys repeat.
func (v *Viewer) locate(index int, key string) int {
	idx := v.clampIndex(index)
	if key == "" || idx == NoActive || itemKey(v.items[idx]) == key {
		return idx
	}
	best := NoActive
	for i, it := range v.items {
		if itemKey(it) == key && (best == NoActive || abs(i-index) < abs(best-index)) {
			best = i
		}
	}
	if best == NoActive {
		return idx
	}
	return best
}

func itemKey(it media.Item) string {
	if it.ID != "" {
		return it.ID
	}
	return it.Source
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// goTo navigates to index honouring loop, the busy flag and paging.
func (v *Viewer) goTo(index int) tea.Cmd {
	n := len(v.items)
	if n == 0 || !v.state.Visible || v.state.DocumentBusy {
		return nil
	}
	if !v.opts.Loop && (index < 0 || index >= n) {
		return nil
	}
	if index >= n {
		index = 0
	}
	if index < 0 {
		index = n - 1
	}
	if index == v.state.ActiveIndex {
		return nil
	}
	v.navKey = itemKey(v.items[index])
	return v.nav.Navigate(index, n, v.state.DocumentBusy)
}

// Select navigates to a thumbnail.
func (v *Viewer) Select(index int) tea.Cmd {
	if !v.opts.Changeable {
		return nil
	}
	return v.goTo(index)
}

// NavBack and NavForward implement the strip's arrow controls.
func (v *Viewer) NavBack() tea.Cmd {
	if v.state.ActiveIndex < 1 {
		return nil
	}
	return v.goTo(v.state.ActiveIndex - 1)
}

func (v *Viewer) NavForward() tea.Cmd {
	if v.state.ActiveIndex+1 >= len(v.items) {
		return nil
	}
	return v.goTo(v.state.ActiveIndex + 1)
}

// Do runs a built-in toolbar action.
func (v *Viewer) Do(key ActionKey) tea.Cmd {
	if !v.state.Visible || v.state.TransitionStarted {
		return nil
	}
	g := v.state.Geometry
	switch key {
	case ActionZoomIn, ActionZoomOut:
		dir := 1
		if key == ActionZoomOut {
			dir = -1
		}
		x, y := g.Center()
		v.zoomAt(x, y, dir)
	case ActionPrev:
		return v.goTo(v.state.ActiveIndex - 1)
	case ActionNext:
		return v.goTo(v.state.ActiveIndex + 1)
	case ActionReset:
		if v.state.ActiveIndex == NoActive {
			return nil
		}
		return v.load(v.state.ActiveIndex, true)
	case ActionRotateLeft:
		v.dispatch(geometryUpdate(Rotate(g, false)))
	case ActionRotateRight:
		v.dispatch(geometryUpdate(Rotate(g, true)))
	case ActionScaleX:
		v.dispatch(geometryUpdate(FlipX(g)))
	case ActionScaleY:
		v.dispatch(geometryUpdate(FlipY(g)))
	case ActionDownload:
		return v.download()
	case ActionPrint:
		if v.state.DocumentBusy {
			return nil
		}
		return v.print()
	}
	return nil
}

// Activate runs a toolbar entry: the built-in action, if any, then the
// entry's own click handler with the active item.
func (v *Viewer) Activate(t ToolbarItem) tea.Cmd {
	if t.Disabled(v.state.DocumentBusy) {
		return nil
	}
	var cmd tea.Cmd
	if t.Key.Builtin() {
		cmd = v.Do(t.Key)
	}
	if t.OnClick != nil {
		item, _ := v.ActiveItem()
		t.OnClick(item)
	}
	return cmd
}

func (v *Viewer) zoomAt(x, y float64, dir int) {
	g := v.state.Geometry
	if g.Empty() {
		if v.state.Natural.Empty() {
			return
		}
		size := FitSize(v.state.Natural, v.canvas, v.opts.FooterHeight, v.opts.NoLimitInitializationSize)
		left, top := Center(size, v.canvas, v.opts.FooterHeight)
		g = Geometry{
			Width: size.Width, Height: size.Height, Top: top, Left: left,
			Rotate: g.Rotate, ScaleX: 1, ScaleY: 1,
		}
	} else {
		g = Zoom(g, ZoomRequest{
			X: x, Y: y, Direction: dir, Step: v.opts.ZoomSpeed,
			Min: v.opts.MinScale, Max: v.opts.MaxScale,
		})
	}
	v.dispatch(Update{Fields: FieldGeometry | FieldLoading, Values: State{Geometry: g}})
}

// Wheel zooms at the pointer.
func (v *Viewer) Wheel(x, y float64, dir int) {
	if !v.Bound(BindPointer) || !v.opts.Zoomable || !v.state.Visible {
		return
	}
	v.zoomAt(x, y, dir)
}

// Press handles a pointer press on the canvas: the mask click hook, then
// the start of a drag.
func (v *Viewer) Press(x, y float64) {
	if !v.Bound(BindPointer) {
		return
	}
	if v.opts.OnMaskClick != nil {
		v.opts.OnMaskClick()
	}
	if !v.opts.Drag {
		return
	}
	v.dragging = true
	v.dragX, v.dragY = x, y
}

// Drag pans by the pointer movement since the last event.
func (v *Viewer) Drag(x, y float64) {
	if !v.dragging || !v.Bound(BindPointer) {
		return
	}
	dx, dy := x-v.dragX, y-v.dragY
	v.dragX, v.dragY = x, y
	v.Pan(dx, dy)
}

// Release ends a drag.
func (v *Viewer) Release() {
	v.dragging = false
}

// Pan moves the item box.
func (v *Viewer) Pan(dx, dy float64) {
	if !v.state.Visible || (dx == 0 && dy == 0) {
		return
	}
	v.dispatch(geometryUpdate(Pan(v.state.Geometry, dx, dy)))
}

// Resize records the canvas and nav strip sizes. A shown item is centred
// again at its current size.
func (v *Viewer) Resize(canvas media.Size, navWidth float64) {
	v.canvas = canvas
	v.nav.Resize(navWidth)
	if !v.Bound(BindResize) || !v.state.Visible || v.state.Geometry.Empty() {
		return
	}
	g := v.state.Geometry
	if v.Display() == DisplayDocument {
		page := v.pageArea()
		g.Width, g.Height = page.Width, page.Height
	}
	g.Left, g.Top = Center(media.Size{Width: g.Width, Height: g.Height}, canvas, v.opts.FooterHeight)
	v.dispatch(geometryUpdate(g))
}

// pageArea is the canvas above the footer, where documents are laid out.
func (v *Viewer) pageArea() media.Size {
	return media.Size{Width: v.canvas.Width, Height: max(0, v.canvas.Height-v.opts.FooterHeight)}
}

// DocumentScroll forwards the document view position to the page
// controller.
func (v *Viewer) DocumentScroll(top, viewport, content float64) tea.Cmd {
	cmd := v.doc.OnScroll(top, viewport, content)
	v.syncBusy()
	return cmd
}

func (v *Viewer) closeDocument() {
	if v.doc.Source() == "" {
		return
	}
	v.doc.Close()
	v.syncBusy()
}

// syncBusy mirrors the page controller's busy state into the shared flag.
func (v *Viewer) syncBusy() {
	if busy := v.doc.Busy(); busy != v.state.DocumentBusy {
		v.dispatch(SetDocumentBusy{Busy: busy})
	}
}

func (v *Viewer) print() tea.Cmd {
	item, ok := v.ActiveItem()
	if !ok || item.Source == media.FailedSource {
		return nil
	}
	if item.Paged() && v.doc.Source() == item.Source {
		cmd := v.doc.Print()
		v.syncBusy()
		return cmd
	}
	printer := v.deps.Printer
	if printer == nil {
		return nil
	}
	job := document.PrintJob{Source: item.Source, Title: item.Label()}
	return func() tea.Msg {
		return PrintedMsg{Source: job.Source, Err: printer.Print(context.Background(), job)}
	}
}

func (v *Viewer) download() tea.Cmd {
	item, ok := v.ActiveItem()
	if !ok || item.Source == media.FailedSource {
		return nil
	}
	if item.DownloadURL != "" && v.opts.DownloadInNewWindow && v.deps.Browse != nil {
		browse, url := v.deps.Browse, item.DownloadURL
		return func() tea.Msg { return DownloadedMsg{Path: url, Err: browse(url)} }
	}
	files := v.deps.Files
	if files == nil {
		return nil
	}
	src := item.Source
	if item.DownloadURL != "" {
		src = item.DownloadURL
	}
	dir := v.downloadDir()
	return func() tea.Msg {
		path, err := files.Download(context.Background(), src, dir)
		return DownloadedMsg{Path: path, Err: err}
	}
}

// Export writes the active image with its rotation and flips applied.
func (v *Viewer) Export() tea.Cmd {
	item, ok := v.ActiveItem()
	if !ok || !item.Rasterizable() || v.deps.Files == nil || !v.state.Visible {
		return nil
	}
	g := v.state.Geometry
	t := probe.Transform{RotateDegrees: g.Rotate, FlipX: g.ScaleX < 0, FlipY: g.ScaleY < 0}
	files, src := v.deps.Files, item.Source
	dst := probe.ExportPath(src, v.downloadDir())
	return func() tea.Msg {
		return ExportedMsg{Path: dst, Err: files.Export(context.Background(), src, dst, t)}
	}
}

func (v *Viewer) downloadDir() string {
	if v.opts.DownloadDir != "" {
		return v.opts.DownloadDir
	}
	return "."
}

func (v *Viewer) item(index int) (media.Item, bool) {
	if index < 0 || index >= len(v.items) {
		return media.Item{}, false
	}
	return v.items[index], true
}

// ActiveItem returns the item on screen, if any.
func (v *Viewer) ActiveItem() (media.Item, bool) {
	return v.item(v.state.ActiveIndex)
}

// State returns a copy of the viewer state.
func (v *Viewer) State() State { return v.state }

// Items returns the item list as of the last sync.
func (v *Viewer) Items() []media.Item { return v.items }

// Options returns the normalised options.
func (v *Viewer) Options() Options { return v.opts }

// Nav exposes the thumbnail strip for rendering.
func (v *Viewer) Nav() *NavViewport { return v.nav }

// Document exposes the page controller for rendering.
func (v *Viewer) Document() *DocumentPages { return v.doc }

// Canvas returns the last measured canvas size.
func (v *Viewer) Canvas() media.Size { return v.canvas }

// Status returns the outcome of the last download, export or print.
func (v *Viewer) Status() string { return v.status }

// Stale reports that the item list has not refreshed for a while.
func (v *Viewer) Stale() bool { return v.stale }

// Display returns the canvas variant for the current state.
func (v *Viewer) Display() Display {
	item, ok := v.ActiveItem()
	return DisplayFor(v.state, item, ok)
}

// Toolbar returns the entries to render.
func (v *Viewer) Toolbar() []ToolbarItem {
	return Toolbar(v.opts)
}

// Attributes returns the attribute line for the active item.
func (v *Viewer) Attributes() Attributes {
	item, _ := v.ActiveItem()
	return Attributes{
		Alt:         item.Alt,
		Natural:     v.state.Natural,
		Position:    v.state.ActiveIndex + 1,
		Total:       len(v.items),
		ShowDetails: !v.opts.NoImgDetails,
		ShowTotal:   v.opts.ShowTotal,
	}
}
