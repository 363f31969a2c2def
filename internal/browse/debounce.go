package browse

import "time"

// DefaultDebounce is the quiet period before search text is applied.
const DefaultDebounce = 350 * time.Millisecond

// Debouncer hands out tokens for pending timers; only the most recent token
// fires. The caller owns the actual timer.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{Delay: delay}
}

// Trigger records new input and returns the token its timer must carry.
func (d *Debouncer) Trigger() uint64 {
	d.seq++
	return d.seq
}

// Fire reports whether the timer carrying token is still the latest, i.e.
// no input arrived during its quiet period.
func (d *Debouncer) Fire(token uint64) bool {
	return token == d.seq
}
