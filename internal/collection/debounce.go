package collection

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of rapidly-changing values into one downstream
// call: the callback fires with the latest value once delay has elapsed with
// no further Set. Views use it to keep search keystrokes from refetching on
// every rune.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(value string)
	timer   *time.Timer
	gen     int
	stopped bool
}

// NewDebouncer creates a debouncer invoking fn after delay of quiet time.
// The callback runs on a timer goroutine.
func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Set records a new value and restarts the quiet-period timer, discarding any
// pending fire.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	// Stop returns false when the old callback has already fired and is
	// waiting on the lock; the generation check discards its stale value.
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		fn := d.fn
		d.mu.Unlock()

		fn(value)
	})
}

// Stop cancels any pending fire. After Stop the callback never runs again,
// even if a timer had already been scheduled.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
