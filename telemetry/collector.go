// Package telemetry tracks frame timings and orb statistics and writes them as CSV.
package telemetry

import "github.com/pthm-cable/orbs/systems"

// Collector counts field events within fixed windows of frames and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	windowStartTick int64

	bouncesDown int
	bouncesUp   int
	restarts    int
}

// NewCollector creates a stats collector.
// windowDurationSec is converted to frames using dt, the nominal seconds per frame.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordEvents counts the reversals reported by one tick.
func (c *Collector) RecordEvents(events []systems.Event) {
	for _, e := range events {
		switch e.Kind {
		case systems.EventBounceDown:
			c.bouncesDown++
		case systems.EventBounceUp:
			c.bouncesUp++
		}
	}
}

// RecordRestart counts a driver restart.
func (c *Collector) RecordRestart() {
	c.restarts++
}

// Reset starts a fresh window at tick.
func (c *Collector) Reset(tick int64) {
	c.windowStartTick = tick
	c.bouncesDown = 0
	c.bouncesUp = 0
	c.restarts = 0
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces the window's stats from the given field snapshot and
// resets the counters.
func (c *Collector) Flush(currentTick int64, particles []systems.Particle, speeds []float64) WindowStats {
	rising := 0
	radius := 0.0
	for _, p := range particles {
		if p.Reversed {
			rising++
		}
		radius = p.Radius
	}

	mean, std, p10, p50, p90, maxV := SpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Orbs:   len(particles),
		Rising: rising,
		Radius: radius,

		BouncesDown: c.bouncesDown,
		BouncesUp:   c.bouncesUp,
		Restarts:    c.restarts,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  maxV,
	}

	c.Reset(currentTick)
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
