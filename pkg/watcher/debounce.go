package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is how long rapid successive triggers are
// coalesced before the callback fires once.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single callback invocation.
// Editors and journal apps often write a file several times in quick
// succession; without debouncing each write would start (and immediately
// supersede) a processing run.
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive duration falls back to
// DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{duration: d}
}

// Duration returns the configured debounce duration.
func (d *Debouncer) Duration() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duration
}

// Trigger schedules fn to run after the debounce duration, resetting the
// countdown if a trigger is already pending. Only the most recent fn runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending trigger.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
