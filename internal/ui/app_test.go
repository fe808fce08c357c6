package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/catalog"
	"github.com/five82/lightbox/internal/config"
	"github.com/five82/lightbox/internal/media"
	"github.com/five82/lightbox/internal/viewer"
)

type stubProber map[string]media.Size

func (p stubProber) Dimensions(_ context.Context, src string) (media.Size, error) {
	if s, ok := p[src]; ok {
		return s, nil
	}
	return media.Size{}, errors.New("not an image")
}

// drain runs cmd and feeds every message it yields back into the model,
// skipping timers and program control messages.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			continue
		}
		next, more := m.Update(msg)
		m = next.(Model)
		queue = append(queue, more)
	}
	return m
}

func newTestModel(t *testing.T, items ...string) Model {
	t.Helper()
	return newTestModelWith(t, config.Default(), items...)
}

func newTestModelWith(t *testing.T, cfg config.Config, items ...string) Model {
	t.Helper()
	store := &catalog.Store{}
	list := make([]media.Item, len(items))
	prober := stubProber{}
	for i, src := range items {
		list[i] = media.FromPath(src)
		prober[src] = media.Size{Width: 400, Height: 300}
	}
	store.Replace(list, nil)

	return New(Options{
		Config: cfg,
		Deps:   viewer.Deps{Items: store, Prober: prober},
		Title:  "holiday",
	})
}

func resize(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return drain(t, next.(Model), cmd)
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return drain(t, next.(Model), cmd)
}

func TestModel_ShowsAfterFirstResize(t *testing.T) {
	m := newTestModel(t, "a.jpg", "b.jpg")
	if m.viewer.State().Visible {
		t.Fatal("viewer visible before the terminal was measured")
	}
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before resize = %q", got)
	}

	m = resize(t, m)

	s := m.viewer.State()
	if !s.Visible || s.ActiveIndex != 0 {
		t.Fatalf("state = %+v, want visible at 0", s)
	}
	if s.Geometry.Empty() {
		t.Error("geometry not computed after load")
	}
	if m.viewer.Display() != viewer.DisplayImage {
		t.Errorf("display = %v, want image", m.viewer.Display())
	}
}

func TestModel_KeysDriveViewer(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg", "b.jpg", "c.jpg"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlRight})
	if got := m.viewer.State().Geometry.Rotate; got != 90 {
		t.Errorf("rotate = %v, want 90", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	if got := m.viewer.State().Geometry.ScaleX; got != -1 {
		t.Errorf("scaleX = %v, want -1", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.viewer.State().ActiveIndex; got != 1 {
		t.Errorf("active = %d, want 1", got)
	}
	if got := m.result().Index; got != 1 {
		t.Errorf("result index = %d, want 1", got)
	}
}

func TestModel_KeyboardIgnoredWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.DisableKeyboardSupport = true
	m := resize(t, newTestModelWith(t, cfg, "a.jpg", "b.jpg"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.viewer.State().ActiveIndex; got != 0 {
		t.Errorf("active = %d, want 0 with keyboard support disabled", got)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp {
		t.Fatal("help not shown")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.showHelp {
		t.Error("help still shown")
	}
}

func TestModel_CycleTheme(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg"))
	before := m.theme.Name

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'T'}})
	if m.theme.Name == before {
		t.Error("theme unchanged")
	}
	if got := m.result().Theme; got != m.theme.Name {
		t.Errorf("result theme = %q, want %q", got, m.theme.Name)
	}
}

func TestModel_ToolbarClick(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg", "b.jpg"))

	items := m.viewer.Toolbar()
	var target zone
	for _, z := range toolbarZones(items, m.layout.width) {
		if items[z.index].Key == viewer.ActionRotateLeft {
			target = z
		}
	}
	next, cmd := m.Update(tea.MouseMsg{X: target.x0, Y: m.layout.toolbarRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, next.(Model), cmd)

	if got := m.viewer.State().Geometry.Rotate; got != -90 {
		t.Errorf("rotate = %v, want -90", got)
	}
}

func TestModel_WheelZoomsCanvas(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg"))
	before := m.viewer.State().Geometry.ScaleX

	next, _ := m.Update(tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m = next.(Model)

	if got := m.viewer.State().Geometry.ScaleX; got <= before {
		t.Errorf("scaleX = %v, want above %v", got, before)
	}
}

func TestModel_QuitBeforeShow(t *testing.T) {
	m := newTestModel(t, "a.jpg")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q before show should quit")
	}
}

func TestModel_RendersFooter(t *testing.T) {
	m := resize(t, newTestModel(t, "a.jpg", "b.jpg"))
	view := m.View()
	for _, want := range []string{"lightbox", "holiday", "1 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_StaleListShowsOffline(t *testing.T) {
	store := &catalog.Store{}
	store.Replace([]media.Item{media.FromPath("a.jpg")}, nil)
	m := New(Options{
		Config: config.Default(),
		Deps:   viewer.Deps{Items: store, Prober: stubProber{"a.jpg": {Width: 400, Height: 300}}},
	})
	m = resize(t, m)

	store.Replace(nil, errors.New("refresh failed"))
	store.Replace(nil, errors.New("refresh failed"))
	next, _ := m.Update(syncTickMsg(time.Now()))
	m = next.(Model)

	if view := m.View(); !strings.Contains(view, "offline") {
		t.Error("view does not flag the stale list")
	}
}
