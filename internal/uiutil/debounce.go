// Package uiutil holds small interactive helpers: debouncing, random
// identifiers and clipboard access.
package uiutil

import (
	"sync"
	"time"
)

// Debouncer runs a function once calls have stopped arriving for a wait
// period. Each call resets the timer; only the last call's function runs.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

// NewDebouncer creates a trailing-edge debouncer.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Call schedules fn, cancelling any call still waiting.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Cancel drops a pending call. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Debounce wraps fn so that bursts of calls collapse into one.
func Debounce(fn func(), wait time.Duration) func() {
	d := NewDebouncer(wait)
	return func() {
		d.Call(fn)
	}
}
