package filter

import (
	"sync"
	"time"
)

// DebounceDelay is the trailing-edge window applied to search input so
// that re-evaluation does not run on every keystroke.
const DebounceDelay = 300 * time.Millisecond

// Scheduler abstracts deferred execution so tests can drive virtual time
// instead of waiting on real timers.
type Scheduler interface {
	// Schedule runs fn after the delay and returns a cancel function.
	// Cancelling after fn has run is a no-op.
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// Schedule runs fn on a timer goroutine after delay.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// Debouncer collapses rapid successive calls into a single trailing
// invocation: each Call cancels the pending one and schedules a fresh
// timer, so only the last call within the window runs.
type Debouncer struct {
	delay     time.Duration
	scheduler Scheduler

	mu     sync.Mutex
	cancel func()
}

// NewDebouncer creates a debouncer with the given window. A nil
// scheduler selects TimerScheduler.
func NewDebouncer(delay time.Duration, scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &Debouncer{
		delay:     delay,
		scheduler: scheduler,
	}
}

// Call schedules fn to run after the debounce window, replacing any
// pending call that has not fired yet.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = d.scheduler.Schedule(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
