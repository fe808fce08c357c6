package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the lightbox.
type keyMap struct {
	// Viewer
	Close       key.Binding
	Prev        key.Binding
	Next        key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Reset       key.Binding
	FlipX       key.Binding
	FlipY       key.Binding

	// Output
	Download key.Binding
	Print    key.Binding
	Export   key.Binding

	// Panning
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding

	// Document scrolling
	PageUp   key.Binding
	PageDown key.Binding

	// Global
	Logs       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Zoom out"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "Rotate left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "Rotate right"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0", "ctrl+1"),
			key.WithHelp("0", "Reset"),
		),
		FlipX: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Flip horizontal"),
		),
		FlipY: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "Flip vertical"),
		),

		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Download"),
		),
		Print: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Print"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export transformed"),
		),

		PanLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Pan right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "Pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "Pan down"),
		),

		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdown", "Page down"),
		),

		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.ZoomIn, k.ZoomOut, k.Close, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Close},
		{k.ZoomIn, k.ZoomOut, k.RotateLeft, k.RotateRight, k.FlipX, k.FlipY, k.Reset},
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.PageUp, k.PageDown},
		{k.Download, k.Print, k.Export},
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}

// setEnabled mirrors the option toggles onto the bindings so disabled
// actions neither fire nor show up in help.
func (k *keyMap) setEnabled(zoom, rotate, scale, change, download, print, closable bool) {
	k.ZoomIn.SetEnabled(zoom)
	k.ZoomOut.SetEnabled(zoom)
	k.RotateLeft.SetEnabled(rotate)
	k.RotateRight.SetEnabled(rotate)
	k.FlipX.SetEnabled(scale)
	k.FlipY.SetEnabled(scale)
	k.Prev.SetEnabled(change)
	k.Next.SetEnabled(change)
	k.Download.SetEnabled(download)
	k.Print.SetEnabled(print)
	k.Close.SetEnabled(closable)
}
