// Package ui renders the lightbox as a Bubble Tea program.
//
// # Architecture Overview
//
// Model wraps a viewer.Viewer and owns everything that is about the
// terminal: the cell layout, themes, overlays and input routing. The
// viewer itself works in canvas pixels; layout converts between terminal
// cells and pixels using the configured cell size, so zooming, panning and
// fitting behave the same as they would on a real canvas.
//
// # Package Structure
//
//   - app.go: Model, input routing, Run
//   - layout.go: row budget and cell/pixel conversion
//   - canvas.go: draws the active item's frame, loading and failure states
//   - document.go: scrollable page list for paged documents
//   - footer.go: attribute line, toolbar, thumbnail strip and key hints
//   - help.go, logs.go: the help and diagnostics overlays
//   - keys.go, theme.go, strings.go, style_helpers.go: shared helpers
//
// # Event Flow
//
//  1. The first tea.WindowSizeMsg measures the screen and shows the viewer
//     at the start index. Earlier, there is no canvas to fit into.
//  2. Keys and mouse events are mapped to viewer calls. The viewer returns
//     commands for probes, page renders, paging and file operations.
//  3. Their results come back as messages and are handed to
//     viewer.Update.
//  4. A periodic tick calls viewer.Sync so items added by the refresh
//     poller show up.
//  5. viewer.HiddenMsg ends the program once the close transition is over.
//
// # Key Bindings
//
//   - ←/→: previous/next item
//   - ↑/↓: zoom (scroll on documents)
//   - ctrl+←/ctrl+→: rotate
//   - X/Y: flip
//   - 0 or ctrl+1: reset
//   - h/j/k/l: pan
//   - d, p, x: download, print, export the transformed image
//   - L: diagnostics log, ?: help, T: cycle theme
//   - esc: close, q or ctrl+c: quit
//
// Mouse: the wheel zooms at the pointer, dragging pans, and the toolbar,
// thumbnail strip and title bar close mark are clickable.
package ui
