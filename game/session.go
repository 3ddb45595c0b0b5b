package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/telemetry"
)

// Options holds per-run settings that come from the command line.
type Options struct {
	Seed           int64
	Mode           systems.Mode
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	OutputDir      string
	Clock          Clock // nil uses the system clock

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Session wires a field, its driver and the telemetry sinks together.
type Session struct {
	Field  *systems.Field
	Driver *Driver
	Output *telemetry.OutputManager
	Seed   int64
}

// SimulationConfig converts the loaded configuration into field parameters.
func SimulationConfig(cfg *config.Config) systems.SimulationConfig {
	s := cfg.Simulation
	return systems.SimulationConfig{
		Normal: systems.ModeConfig{
			MinCount: s.Normal.MinCount, MaxCount: s.Normal.MaxCount,
			MinRadius: s.Normal.MinRadius, MaxRadius: s.Normal.MaxRadius,
		},
		Fullscreen: systems.ModeConfig{
			MinCount: s.Fullscreen.MinCount, MaxCount: s.Fullscreen.MaxCount,
			MinRadius: s.Fullscreen.MinRadius, MaxRadius: s.Fullscreen.MaxRadius,
		},
		MinStartSpeed:   s.MinStartSpeed,
		MaxStartSpeed:   s.MaxStartSpeed,
		SpeedRatio:      s.SpeedRatio,
		DownCoefficient: s.DownCoefficient,
		UpCoefficient:   s.UpCoefficient,
		Rainbow:         cfg.Palette.Rainbow,
	}
}

// NewSession builds a stopped session drawing through r. r may be nil.
func NewSession(cfg *config.Config, opts Options, r Renderer) (*Session, error) {
	simCfg := SimulationConfig(cfg)
	if err := simCfg.Validate(); err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	field := systems.NewField(simCfg)
	driver := NewDriver(field, r, rand.New(rand.NewSource(opts.Seed)), DriverOptions{
		FrameDelay:  cfg.Derived.FrameSleep,
		ResizeDelay: cfg.Derived.ResizeDebounce,
		Clock:       opts.Clock,
		Perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, cfg.Telemetry.PerfWarmupTicks),
		Collector:   telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		Output:      output,
		LogStats:    opts.LogStats,

		StatsCallback: opts.StatsCallback,
	})

	if output != nil {
		slog.Info("output_enabled", "dir", output.Dir())
	}

	return &Session{Field: field, Driver: driver, Output: output, Seed: opts.Seed}, nil
}

// SetRainbow switches the palette used from the next restart on.
func (s *Session) SetRainbow(on bool) {
	c := s.Field.Config()
	c.Rainbow = on
	s.Field.SetConfig(c)
}

// Close stops the driver and flushes output files.
func (s *Session) Close() error {
	s.Driver.Stop()
	return s.Output.Close()
}
