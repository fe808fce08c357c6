package viewer

import (
	"context"
	"log"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lightbox/internal/catalog"
)

const (
	navGutter = 10
	// Navigating to within this many items of either end asks the pager
	// for more.
	navFetchThreshold = 6
	// Slots assumed until the strip has been measured.
	defaultVisibleSlots = 6
	// Slack when deciding whether the strip overflows on the right.
	navOverflowSlack = 5
)

// Pager grows the item list at either end and reports the new item count.
// Returning catalog.ErrNoMore (or any error) means nothing was added.
type Pager interface {
	Previous(ctx context.Context, target int) (int, error)
	Next(ctx context.Context, target int) (int, error)
}

// IndexResolvedMsg is emitted exactly once per navigation.
type IndexResolvedMsg struct {
	Seq   uint64
	Index int
	// Paged is set when the pager was consulted.
	Paged bool
	// Count is the item count the pager reported, or zero.
	Count int
	Err   error
}

// NavViewport scrolls the thumbnail strip and drives lazy paging.
type NavViewport struct {
	itemWidth  float64
	stripWidth float64
	slots      int
	offset     float64
	last       int

	pager  Pager
	seq    uint64
	cancel context.CancelFunc
}

// NewNavViewport builds a viewport for items of the given width.
func NewNavViewport(itemWidth float64, pager Pager) *NavViewport {
	if itemWidth <= 0 {
		itemWidth = DefaultNavItemWidth
	}
	return &NavViewport{itemWidth: itemWidth, slots: defaultVisibleSlots, pager: pager}
}

// Pitch is the distance between the left edges of two neighbouring items.
func (n *NavViewport) Pitch() float64 {
	return n.itemWidth + navGutter
}

// Resize recomputes the visible slot count from the strip width. A strip
// that has not been measured keeps the previous count.
func (n *NavViewport) Resize(width float64) {
	if width <= 0 {
		return
	}
	n.stripWidth = width
	n.slots = max(1, int(math.Floor(width/n.Pitch())))
}

// VisibleSlots returns how many items fit in the strip.
func (n *NavViewport) VisibleSlots() int {
	return n.slots
}

// Offset is the signed pixel offset of the strip; zero or negative.
func (n *NavViewport) Offset() float64 {
	return n.offset
}

// FirstVisible returns the index of the leftmost visible item.
func (n *NavViewport) FirstVisible() int {
	return int(math.Round(-n.offset / n.Pitch()))
}

// ShowBack reports whether the strip is scrolled away from the start.
func (n *NavViewport) ShowBack() bool {
	return n.offset != 0
}

// ShowForward reports whether items overflow the strip on the right.
func (n *NavViewport) ShowForward(count int) bool {
	return n.Pitch()*float64(count)+n.offset-navOverflowSlack > n.stripWidth
}

// Reset positions the strip for a freshly shown or rebased list so that the
// active item is the rightmost visible one when it would not otherwise fit.
func (n *NavViewport) Reset(active int) {
	n.last = active
	edge := n.slots - 1
	if active > edge {
		n.offset = -float64(active-edge) * n.Pitch()
	} else {
		n.offset = 0
	}
}

// Move scrolls the strip after the active index changed to index.
func (n *NavViewport) Move(index, count int) {
	prev := n.last
	n.last = index
	if count <= n.slots || index == prev {
		return
	}

	pitch := n.Pitch()
	left := n.FirstVisible()
	right := left + n.slots - 1
	delta := float64(index-prev) * pitch

	if index < prev {
		switch {
		case index == 0 && prev == count-1:
			n.offset = 0
		case index == left-1:
			n.offset += pitch
		case index < left-1:
			n.offset -= delta
		}
		return
	}
	switch {
	case index == count-1 && prev == 0:
		n.offset = -float64(count-n.slots) * pitch
	case index == right+1:
		n.offset -= pitch
	case index > right+1:
		n.offset -= delta
	}
}

// Navigate resolves a navigation towards target. Near either end of the
// list the pager is consulted first; a successful previous page shifts
// target by the number of prepended items. The returned command always
// yields exactly one IndexResolvedMsg. While busy it returns nil.
func (n *NavViewport) Navigate(target, count int, busy bool) tea.Cmd {
	if busy {
		return nil
	}
	n.cancelFetch()
	n.seq++
	seq := n.seq

	var fetch func(context.Context, int) (int, error)
	previous := false
	switch {
	case n.pager == nil:
	case target < navFetchThreshold:
		fetch = n.pager.Previous
		previous = true
	case target >= count-navFetchThreshold:
		fetch = n.pager.Next
	}
	if fetch == nil {
		return func() tea.Msg { return IndexResolvedMsg{Seq: seq, Index: target} }
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	return func() tea.Msg {
		msg := IndexResolvedMsg{Seq: seq, Index: target, Paged: true}
		newCount, err := fetch(ctx, target)
		switch {
		case err != nil:
			if !catalog.IsNoMore(err) {
				log.Printf("paging near %d: %v", target, err)
			}
			msg.Err = err
		case previous:
			// Assumes the new items were prepended contiguously.
			msg.Index = newCount - count + target
			msg.Count = newCount
		default:
			msg.Count = newCount
		}
		return msg
	}
}

// Current reports whether msg answers the latest navigation.
func (n *NavViewport) Current(msg IndexResolvedMsg) bool {
	return msg.Seq == n.seq
}

// Pending reports whether a paging request is in flight.
func (n *NavViewport) Pending() bool {
	return n.cancel != nil
}

// Done marks the current navigation as settled.
func (n *NavViewport) Done() {
	n.cancelFetch()
}

// Cancel abandons the in-flight paging request, if any.
func (n *NavViewport) Cancel() {
	n.cancelFetch()
}

func (n *NavViewport) cancelFetch() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
}
