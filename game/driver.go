package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/telemetry"
)

// DefaultFrameDelay is the pause taken after each frame to throttle below
// the display refresh rate.
const DefaultFrameDelay = 20 * time.Millisecond

// ErrFramePanic wraps a panic recovered while running a frame.
var ErrFramePanic = errors.New("frame panicked")

// Renderer draws one frame of orbs.
type Renderer interface {
	Render(cmds []systems.DrawCommand)
}

type nopRenderer struct{}

func (nopRenderer) Render([]systems.DrawCommand) {}

// DriverOptions configures a Driver. Zero values pick the defaults.
type DriverOptions struct {
	FrameDelay  time.Duration
	ResizeDelay time.Duration
	Clock       Clock
	Sleep       func(time.Duration)

	Perf      *telemetry.PerfCollector
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager
	LogStats  bool

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Driver pumps frames into a Field and hands the result to a Renderer.
// All methods must be called from the host goroutine.
type Driver struct {
	field    *systems.Field
	renderer Renderer
	rng      systems.Rand

	frameDelay time.Duration
	sleep      func(time.Duration)
	resize     *Debouncer

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	running       bool
	width, height float64
	mode          systems.Mode
	tick          int64

	cmds      []systems.DrawCommand
	particles []systems.Particle
	speeds    []float64
}

// NewDriver creates a stopped driver.
func NewDriver(field *systems.Field, r Renderer, rng systems.Rand, opts DriverOptions) *Driver {
	if r == nil {
		r = nopRenderer{}
	}
	if opts.FrameDelay < 0 {
		opts.FrameDelay = 0
	}
	if opts.ResizeDelay <= 0 {
		opts.ResizeDelay = DefaultResizeDebounce
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Perf == nil {
		opts.Perf = telemetry.NewPerfCollector(60, 0)
	}
	if opts.Collector == nil {
		opts.Collector = telemetry.NewCollector(10, float32(DefaultFrameDelay.Seconds()))
	}

	return &Driver{
		field:         field,
		renderer:      r,
		rng:           rng,
		frameDelay:    opts.FrameDelay,
		sleep:         opts.Sleep,
		resize:        NewDebouncer(opts.Clock, opts.ResizeDelay),
		perf:          opts.Perf,
		collector:     opts.Collector,
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
}

// Start resets the field for the canvas and begins accepting frames.
// It does nothing if the driver is already running.
func (d *Driver) Start(width, height float64, mode systems.Mode) error {
	if d.running {
		return nil
	}
	if err := d.field.Reset(width, height, mode, d.rng); err != nil {
		return fmt.Errorf("starting driver: %w", err)
	}

	d.width, d.height, d.mode = width, height, mode
	d.running = true
	d.perf.Reset()
	d.cmds = d.field.DrawCommands(d.cmds[:0])

	slog.Info("driver_start",
		"width", width,
		"height", height,
		"mode", mode.String(),
		"orbs", d.field.Len(),
		"radius", d.field.Radius(),
	)
	return nil
}

// Stop stops accepting frames. Safe to call when stopped.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.resize.Cancel()
	slog.Info("driver_stop", "tick", d.tick)
}

// Restart stops the driver and starts it again with the last canvas and mode.
func (d *Driver) Restart() error {
	d.Stop()
	d.collector.RecordRestart()
	return d.Start(d.width, d.height, d.mode)
}

// Running reports whether frames are being accepted.
func (d *Driver) Running() bool {
	return d.running
}

// Tick returns the number of frames run since the driver was created.
func (d *Driver) Tick() int64 {
	return d.tick
}

// Canvas returns the canvas size the next restart will use.
func (d *Driver) Canvas() (width, height float64) {
	return d.width, d.height
}

// Mode returns the display mode the next restart will use.
func (d *Driver) Mode() systems.Mode {
	return d.mode
}

// SetFrameDelay changes the pause taken after each frame.
func (d *Driver) SetFrameDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	d.frameDelay = delay
}

// FrameDelay returns the pause taken after each frame.
func (d *Driver) FrameDelay() time.Duration {
	return d.frameDelay
}

// Perf returns the frame timing collector.
func (d *Driver) Perf() *telemetry.PerfCollector {
	return d.perf
}

// Resize records a new canvas size and arms the restart debouncer.
// Repeated calls push the restart back.
func (d *Driver) Resize(width, height float64) {
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	d.resize.Trigger()
}

// Poll restarts the driver once the canvas has been stable for the
// debounce delay. It reports whether a restart happened.
func (d *Driver) Poll() (bool, error) {
	if !d.resize.Poll() {
		return false, nil
	}
	slog.Info("resize_restart", "width", d.width, "height", d.height)
	return true, d.Restart()
}

// Frame runs one frame: tick, telemetry, render, then the frame delay.
// It does nothing while stopped. Any tick failure stops the driver and is
// returned.
func (d *Driver) Frame() (err error) {
	if !d.running {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.Stop()
			slog.Error("frame_panic", "tick", d.tick, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w at tick %d: %v", ErrFramePanic, d.tick, r)
		}
	}()

	d.perf.StartTick()
	d.perf.StartPhase(telemetry.PhaseSimulate)

	res, err := d.field.Tick()
	if err != nil {
		d.Stop()
		return fmt.Errorf("tick %d: %w", d.tick, err)
	}
	if res.Stop {
		slog.Warn("field_empty", "tick", d.tick)
		d.Stop()
		return nil
	}
	d.tick++

	d.perf.StartPhase(telemetry.PhaseTelemetry)
	d.collector.RecordEvents(res.Events)
	d.flushTelemetry()

	d.perf.StartPhase(telemetry.PhaseRender)
	d.cmds = d.field.DrawCommands(d.cmds[:0])
	d.renderer.Render(d.cmds)

	d.perf.StartPhase(telemetry.PhaseSleep)
	if d.frameDelay > 0 {
		d.sleep(d.frameDelay)
	}
	d.perf.EndTick()
	d.perf.RecordFrame()

	return nil
}

// Redraw renders the last committed frame without advancing the field.
// Hosts call it while the driver is stopped.
func (d *Driver) Redraw() {
	d.renderer.Render(d.cmds)
}

// Run is the explicit scheduler loop for hosts without a display signal.
// It runs one frame per value received on frames until the driver stops,
// maxTicks frames have run (0 means no limit), frames is closed or ctx is
// cancelled.
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time, maxTicks int64) error {
	for d.running {
		if maxTicks > 0 && d.tick >= maxTicks {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				return nil
			}
		}

		if _, err := d.Poll(); err != nil {
			return err
		}
		if err := d.Frame(); err != nil {
			return err
		}
	}
	return nil
}
