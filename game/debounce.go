package game

import "time"

// DefaultResizeDebounce is how long the canvas must stay unchanged before
// a resize restarts the simulation.
const DefaultResizeDebounce = 3 * time.Second

// Debouncer is a single-shot, restartable timer polled from the host loop.
// Trigger arms it, or pushes back a pending deadline; Poll reports true
// exactly once when the deadline passes.
type Debouncer struct {
	clock    Clock
	delay    time.Duration
	deadline time.Time
	armed    bool
}

// NewDebouncer creates a disarmed debouncer.
func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = NewTimeProvider()
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Trigger (re)arms the timer, replacing any pending deadline.
func (d *Debouncer) Trigger() {
	d.deadline = d.clock.Now().Add(d.delay)
	d.armed = true
}

// Cancel disarms the timer.
func (d *Debouncer) Cancel() {
	d.armed = false
}

// Pending reports whether the timer is armed.
func (d *Debouncer) Pending() bool {
	return d.armed
}

// Poll returns true once when the armed deadline has passed.
func (d *Debouncer) Poll() bool {
	if !d.armed || d.clock.Now().Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}
