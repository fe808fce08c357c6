package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lightbox/internal/config"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	Deps      viewer.Deps
	Title     string
	Start     int
	ThemeName string
	LogPath   string
	// Inline renders into a box of this many cells instead of the full
	// screen.
	Inline   media.Size
	SyncTick time.Duration
}

// Result is what the UI leaves behind for the preferences.
type Result struct {
	Index int
	Theme string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	title    string
	start    int
	logPath  string
	inline   media.Size
	syncTick time.Duration
	cellW    float64
	cellH    float64

	viewer *viewer.Viewer
	keys   keyMap

	// UI state
	theme  Theme
	layout layout
	ready  bool

	lastIndex int

	help    help.Model
	spinner spinner.Model

	docView  viewport.Model
	docState docState

	logView  viewport.Model
	showLogs bool
	showHelp bool
}

type syncTickMsg time.Time

func syncTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return syncTickMsg(t) })
}

// New creates a new Bubble Tea model around a hidden viewer.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	syncTick := opts.SyncTick
	if syncTick <= 0 {
		syncTick = DefaultSyncInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultTheme().Name
	}

	cellW, cellH := opts.Config.CellWidth, opts.Config.CellHeight
	if cellW <= 0 || cellH <= 0 {
		def := config.Default()
		cellW, cellH = def.CellWidth, def.CellHeight
	}

	vopts := opts.Config.ViewerOptions()
	vopts.FooterHeight = float64(footerRows(vopts)) * cellH

	keys := DefaultKeyMap()
	keys.setEnabled(vopts.Zoomable, vopts.Rotatable, vopts.Scalable, vopts.Changeable,
		vopts.Downloadable, vopts.Printable, !vopts.NoClose)

	return Model{
		ctx:       ctx,
		title:     opts.Title,
		start:     opts.Start,
		logPath:   opts.LogPath,
		inline:    opts.Inline,
		syncTick:  syncTick,
		cellW:     cellW,
		cellH:     cellH,
		viewer:    viewer.New(vopts, opts.Deps),
		keys:      keys,
		theme:     GetTheme(themeName),
		lastIndex: opts.Start,
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{syncTickCmd(m.syncTick), m.spinner.Tick}
	if m.inline.Empty() {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	mm := next.(Model)
	if !mm.ready {
		return mm, cmd
	}
	docCmd := mm.refreshDocument()
	if idx := mm.viewer.State().ActiveIndex; idx >= 0 {
		mm.lastIndex = idx
	}
	return mm, tea.Batch(cmd, docCmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case syncTickMsg:
		return m, tea.Batch(m.viewer.Sync(), syncTickCmd(m.syncTick))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case viewer.HiddenMsg:
		return m, tea.Quit
	}

	return m, m.viewer.Update(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	width, height := msg.Width, msg.Height
	if !m.inline.Empty() {
		width = min(width, int(m.inline.Width))
		height = min(height, int(m.inline.Height))
	}
	m.layout = computeLayout(width, height, m.viewer.Options(), m.cellW, m.cellH)
	m.help.Width = m.layout.width - 1
	m.viewer.Resize(m.layout.canvasPixels(), m.layout.navPixels())

	if !m.ready {
		m.ready = true
		m.initDocViewport()
		m.initLogViewport()
		// The first load needs a measured canvas to fit into.
		return m, m.viewer.Show(m.start)
	}
	m.resizeDocViewport()
	m.resizeLogViewport()
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}

	styles := m.theme.Styles()
	rows := []string{m.renderTitle(styles)}
	if m.showingPages() {
		rows = append(rows, lipgloss.NewStyle().
			Width(m.layout.width).
			Height(m.layout.canvasRows).
			MaxHeight(m.layout.canvasRows).
			Render(m.docView.View()))
	} else {
		rows = append(rows, m.renderCanvas(styles))
	}
	l := m.layout
	if l.attrRow >= 0 {
		rows = append(rows, m.renderAttributes(styles))
	}
	if l.toolbarRow >= 0 {
		rows = append(rows, m.renderToolbar(styles))
	}
	if l.navRow >= 0 {
		rows = append(rows, m.renderNav(styles))
	}
	if l.helpRow >= 0 {
		rows = append(rows, m.renderHints())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// showingPages reports whether the canvas shows the document viewport.
func (m Model) showingPages() bool {
	return m.viewer.Display() == viewer.DisplayDocument && m.viewer.Document().Source() != ""
}

func (m Model) renderTitle(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	s := styles.WithBackground(m.theme.Surface)
	left := bg.Render("lightbox", s.WarningText.Bold(true))
	closeMark := ""
	if !m.viewer.Options().NoClose {
		closeMark = bg.Render("✕", s.MutedText)
	}
	room := m.layout.width - lipgloss.Width(left) - lipgloss.Width(closeMark) - 4
	title := bg.Render(truncateMiddle(m.title, room), s.MutedText)
	return bg.Spread(left+bg.Space()+title, closeMark, m.layout.width)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		switch {
		case key.Matches(msg, m.keys.Logs), msg.String() == "esc":
			m.showLogs = false
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, readLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.docState = docState{}
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		if !m.viewer.State().Visible {
			return m, tea.Quit
		}
		return m, m.viewer.Close()
	}

	if !m.viewer.Bound(viewer.BindKeyboard) {
		return m, nil
	}
	return m.handleViewerKey(msg)
}

// handleViewerKey maps the viewer's keyboard surface.
func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.viewer
	pages := m.showingPages()

	switch {
	case key.Matches(msg, m.keys.Close):
		return m, v.Close()
	case key.Matches(msg, m.keys.Prev):
		return m, v.Do(viewer.ActionPrev)
	case key.Matches(msg, m.keys.Next):
		return m, v.Do(viewer.ActionNext)
	case key.Matches(msg, m.keys.RotateLeft):
		return m, v.Do(viewer.ActionRotateLeft)
	case key.Matches(msg, m.keys.RotateRight):
		return m, v.Do(viewer.ActionRotateRight)
	case key.Matches(msg, m.keys.Reset):
		return m, v.Do(viewer.ActionReset)
	case key.Matches(msg, m.keys.FlipX):
		return m, v.Do(viewer.ActionScaleX)
	case key.Matches(msg, m.keys.FlipY):
		return m, v.Do(viewer.ActionScaleY)
	case key.Matches(msg, m.keys.Download):
		return m, v.Do(viewer.ActionDownload)
	case key.Matches(msg, m.keys.Print):
		return m, v.Do(viewer.ActionPrint)
	case key.Matches(msg, m.keys.Export):
		return m, v.Export()
	case key.Matches(msg, m.keys.PageUp) && pages:
		return m, m.scrollDocument(-1, true)
	case key.Matches(msg, m.keys.PageDown) && pages:
		return m, m.scrollDocument(1, true)
	}

	// Up/down and the pan keys scroll pages; on images they zoom and pan.
	if pages {
		switch {
		case key.Matches(msg, m.keys.ZoomIn), key.Matches(msg, m.keys.PanUp):
			return m, m.scrollDocument(-1, false)
		case key.Matches(msg, m.keys.ZoomOut), key.Matches(msg, m.keys.PanDown):
			return m, m.scrollDocument(1, false)
		}
		return m, nil
	}

	step := panStepCells
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		return m, v.Do(viewer.ActionZoomIn)
	case key.Matches(msg, m.keys.ZoomOut):
		return m, v.Do(viewer.ActionZoomOut)
	case key.Matches(msg, m.keys.PanLeft):
		v.Pan(-float64(step)*m.cellW, 0)
	case key.Matches(msg, m.keys.PanRight):
		v.Pan(float64(step)*m.cellW, 0)
	case key.Matches(msg, m.keys.PanUp):
		v.Pan(0, -float64(step)*m.cellH)
	case key.Matches(msg, m.keys.PanDown):
		v.Pan(0, float64(step)*m.cellH)
	}
	return m, nil
}

// handleMouse routes clicks to the title bar, the toolbar and the nav
// strip, and presses, drags and wheel turns on the canvas to the viewer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	if m.showLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	v := m.viewer
	l := m.layout
	x, y := msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if !l.inCanvas(x, y) {
				return m, nil
			}
			dir := 1
			if msg.Button == tea.MouseButtonWheelDown {
				dir = -1
			}
			if m.showingPages() {
				return m, m.scrollDocument(-3*dir, false)
			}
			px, py := l.toPixel(x, y)
			v.Wheel(px, py, dir)
			return m, nil

		case tea.MouseButtonLeft:
			return m.handleClick(x, y)
		}

	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			px, py := l.toPixel(x, y)
			v.Drag(px, py)
		}

	case tea.MouseActionRelease:
		v.Release()
	}
	return m, nil
}

func (m Model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	v := m.viewer
	l := m.layout

	switch {
	case y == 0:
		if !v.Options().NoClose && x >= l.width-3 {
			return m, v.Close()
		}
	case y == l.toolbarRow:
		items := v.Toolbar()
		for _, z := range toolbarZones(items, l.width) {
			if z.contains(x) {
				return m, v.Activate(items[z.index])
			}
		}
	case y == l.navRow:
		for _, z := range navZones(v.Nav(), len(v.Items()), l) {
			if !z.contains(x) {
				continue
			}
			switch z.kind {
			case zoneNavBack:
				return m, v.NavBack()
			case zoneNavForward:
				return m, v.NavForward()
			default:
				return m, v.Select(z.index)
			}
		}
	case l.inCanvas(x, y):
		px, py := l.toPixel(x, y)
		v.Press(px, py)
	}
	return m, nil
}

func (m Model) result() Result {
	return Result{Index: m.lastIndex, Theme: m.theme.Name}
}

// Run starts the program and blocks until the viewer closes or ctx is
// cancelled.
func Run(opts Options) (Result, error) {
	if opts.Deps.Items == nil {
		return Result{}, fmt.Errorf("ui requires an item source")
	}
	m := New(opts)

	program := tea.NewProgram(m, tea.WithContext(m.ctx), tea.WithMouseCellMotion())
	final, err := program.Run()

	result := m.result()
	if fm, ok := final.(Model); ok {
		result = fm.result()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return result, nil
		}
		return result, fmt.Errorf("run ui: %w", err)
	}
	return result, nil
}
