package debounce

import (
	"sync"
	"time"

	"smart-blog-be/pkg/clock"
)

// Debouncer runs an action once, delay after the last Trigger, with the
// argument of that last Trigger. Earlier schedules are dropped.
//
// The action lives in its own slot and is read when the timer fires, so
// SetAction between Trigger and firing makes the new action run.
type Debouncer[T any] struct {
	mu       sync.Mutex
	clock    clock.Clock
	delay    time.Duration
	action   func(T)
	timer    clock.Timer
	gen      uint64
	disposed bool
}

type options struct {
	clock clock.Clock
}

type Option func(*options)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func New[T any](action func(T), delay time.Duration, opts ...Option) *Debouncer[T] {
	o := options{clock: clock.Real{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[T]{
		clock:  o.clock,
		delay:  delay,
		action: action,
	}
}

// Trigger (re)arms the timer. It is a no-op after Dispose.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen, arg)
	})
}

// SetAction swaps the action a pending or future schedule will call.
func (d *Debouncer[T]) SetAction(action func(T)) {
	d.mu.Lock()
	d.action = action
	d.mu.Unlock()
}

// Cancel drops the pending schedule, if any, and reports whether there was one.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Dispose cancels the pending schedule and turns every later Trigger into a
// no-op. A timer that already fired but has not yet run is also suppressed.
func (d *Debouncer[T]) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.disposed = true
}

// Pending reports whether a schedule is armed.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	// Invalidates a callback racing for the lock.
	d.gen++
	return true
}

func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	if d.disposed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	action := d.action
	d.mu.Unlock()

	if action != nil {
		action(arg)
	}
}
