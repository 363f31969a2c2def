package showcase

import (
	"time"

	"github.com/ryanm101/biblioteca/internal/catalog"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 6 * time.Second

// Carousel is the hero slide sequence. It owns a single logical timer: each
// start issues a new timer id and ticks carrying any other id are ignored,
// so at most one timer is ever live regardless of the order in which
// focus enter and leave arrive.
//
// The current index is the only position state; the visible slide and the
// indicator row are both derived from it.
type Carousel struct {
	Interval time.Duration

	items   []catalog.GameSummary
	index   int
	hovered bool
	running bool
	timerID uint64
}

// NewCarousel creates a stopped carousel over items.
func NewCarousel(items []catalog.GameSummary, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{Interval: interval, items: items}
}

// Len returns the number of slides.
func (c *Carousel) Len() int {
	return len(c.items)
}

// Index returns the current slide index.
func (c *Carousel) Index() int {
	return c.index
}

// Current returns the visible slide.
func (c *Carousel) Current() (catalog.GameSummary, bool) {
	if len(c.items) == 0 {
		return catalog.GameSummary{}, false
	}
	return c.items[c.index], true
}

// Indicators returns one flag per slide, true for the active one.
func (c *Carousel) Indicators() []bool {
	out := make([]bool, len(c.items))
	if len(out) > 0 {
		out[c.index] = true
	}
	return out
}

// Hovered reports whether the carousel has focus.
func (c *Carousel) Hovered() bool {
	return c.hovered
}

// Running reports whether auto-advance is active.
func (c *Carousel) Running() bool {
	return c.running
}

// TimerID returns the id of the live timer.
func (c *Carousel) TimerID() uint64 {
	return c.timerID
}

// Start arms auto-advance and returns the timer id ticks must carry.
func (c *Carousel) Start() uint64 {
	c.timerID++
	c.running = len(c.items) > 1
	return c.timerID
}

// Stop cancels auto-advance. Outstanding ticks become stale.
func (c *Carousel) Stop() {
	c.timerID++
	c.running = false
}

// Enter pauses auto-advance while the carousel has focus.
func (c *Carousel) Enter() {
	c.hovered = true
	c.Stop()
}

// Leave resumes auto-advance and returns the new timer id.
func (c *Carousel) Leave() uint64 {
	c.hovered = false
	return c.Start()
}

// Tick handles a timer expiry. It advances and returns true only for the
// live timer; the caller then re-arms a tick with the same id.
func (c *Carousel) Tick(id uint64) bool {
	if !c.running || id != c.timerID {
		return false
	}
	c.index = wrap(c.index+1, len(c.items))
	return true
}

// Next advances one slide manually.
func (c *Carousel) Next() (timerID uint64, restart bool) {
	return c.Goto(c.index + 1)
}

// Prev goes back one slide manually.
func (c *Carousel) Prev() (timerID uint64, restart bool) {
	return c.Goto(c.index - 1)
}

// Goto jumps to slide i, wrapping modulo the slide count. Manual navigation
// restarts the auto-advance period unless the carousel has focus; restart
// reports whether the caller must schedule a tick for timerID.
func (c *Carousel) Goto(i int) (timerID uint64, restart bool) {
	if len(c.items) == 0 {
		return c.timerID, false
	}
	c.index = wrap(i, len(c.items))
	if c.hovered {
		return c.timerID, false
	}
	id := c.Start()
	return id, c.running
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
