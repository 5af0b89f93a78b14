package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the debounce window applied when no explicit
// duration is configured. Editors that write in several bursts (vim swap
// rename, formatter rewrite) settle well inside half a second.
const DefaultDebounceDuration = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation
// fired after the configured quiet period.
type Debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
// A non-positive duration falls back to DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn to run after the quiet period. A trigger arriving
// before the period elapses replaces the pending callback and restarts the
// clock, so a burst of triggers produces exactly one invocation.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, fn)
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the configured quiet period.
func (d *Debouncer) Duration() time.Duration {
	return d.d
}
