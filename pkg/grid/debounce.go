package grid

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period applied to search input before
// the effective term reaches the pipeline.
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer coalesces a burst of inputs into a single deferred call: each
// Trigger cancels any pending call and re-arms the timer, so only the most
// recent input survives the quiet period. Superseded calls are discarded,
// never queued.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay means Trigger fires synchronously, which tests use to
// make pipelines settle deterministically.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// not-yet-fired prior schedule.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay <= 0 {
		d.fn = nil
		d.mu.Unlock()
		fn()
		return
	}
	d.fn = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		f := d.fn
		d.fn = nil
		d.timer = nil
		d.mu.Unlock()
		if f != nil {
			f()
		}
	})
	d.mu.Unlock()
}

// Cancel discards the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Flush runs the pending call immediately instead of waiting out the quiet
// period. No-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	f := d.fn
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if f != nil {
		f()
	}
}

// Pending reports whether a call is scheduled but not yet fired.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}
