// Package viewer is the lightbox core: a single owned State changed only by
// Reduce, and the controllers that feed it.
//
// ImageLoader resolves natural image sizes off the event loop and guards
// commits with a load sequence. NavViewport scrolls the thumbnail strip
// and asks a Pager for more items near either end of the list.
// DocumentPages renders paged documents in batches and assembles them
// before printing. Viewer wires toolbar actions, key and pointer input and
// index changes to all three.
//
// Everything here runs on the bubbletea event loop. Asynchronous work is
// returned as tea.Cmd values and comes back as messages to Viewer.Update,
// so state transitions never interleave.
package viewer
