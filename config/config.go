// Package config provides configuration loading and access for the orbs screensaver.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Palette    PaletteConfig    `yaml:"palette"`
	Driver     DriverConfig     `yaml:"driver"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Instance   InstanceConfig   `yaml:"instance"`
	Terminal   TerminalConfig   `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"` // headless frame rate, and the raylib cap when vsync is off
	VSync      bool   `yaml:"vsync"`
	Background [3]int `yaml:"background,flow"` // RGB, 0-255
}

// ModeConfig holds the population ranges for one display mode.
// Upper bounds follow the draw rules in the simulation: counts are
// inclusive, radii are exclusive.
type ModeConfig struct {
	MinCount  int `yaml:"min_count"`
	MaxCount  int `yaml:"max_count"`
	MinRadius int `yaml:"min_radius"`
	MaxRadius int `yaml:"max_radius"`
}

// SimulationConfig holds the orb spawn and motion parameters.
type SimulationConfig struct {
	Normal          ModeConfig `yaml:"normal"`
	Fullscreen      ModeConfig `yaml:"fullscreen"`
	MinStartSpeed   int        `yaml:"min_start_speed"`
	MaxStartSpeed   int        `yaml:"max_start_speed"`
	SpeedRatio      float64    `yaml:"speed_ratio"`
	DownCoefficient float64    `yaml:"down_coefficient"` // falling acceleration spread
	UpCoefficient   float64    `yaml:"up_coefficient"`   // rising acceleration spread
}

// PaletteConfig holds orb colouring options.
type PaletteConfig struct {
	Rainbow bool `yaml:"rainbow"`
	Outline bool `yaml:"outline"`
}

// DriverConfig holds frame pacing parameters.
type DriverConfig struct {
	FrameSleepMS      int     `yaml:"frame_sleep_ms"`
	ResizeDebounceSec float64 `yaml:"resize_debounce_sec"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of nominal frame time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	PerfWarmupTicks     int     `yaml:"perf_warmup_ticks"` // ticks ignored after a start to skip startup stutter
	ShowAverage         bool    `yaml:"show_average"`
}

// InstanceConfig holds the single-instance guard settings.
type InstanceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// TerminalConfig holds the canvas units covered by one terminal cell.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameSleep     time.Duration // Driver.FrameSleepMS as a duration
	ResizeDebounce time.Duration // Driver.ResizeDebounceSec as a duration
	FrameInterval  time.Duration // 1/TargetFPS
	DT32           float32       // FrameInterval in seconds
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the hosts cannot run with. Spawn ranges are
// checked again by the simulation at reset time.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("%w: target_fps %d", ErrInvalid, c.Screen.TargetFPS)
	}
	if c.Driver.FrameSleepMS < 0 {
		return fmt.Errorf("%w: frame_sleep_ms %d", ErrInvalid, c.Driver.FrameSleepMS)
	}
	if c.Driver.ResizeDebounceSec < 0 {
		return fmt.Errorf("%w: resize_debounce_sec %v", ErrInvalid, c.Driver.ResizeDebounceSec)
	}
	for name, m := range map[string]ModeConfig{"normal": c.Simulation.Normal, "fullscreen": c.Simulation.Fullscreen} {
		if m.MinCount > m.MaxCount {
			return fmt.Errorf("%w: %s count bounds [%d, %d]", ErrInvalid, name, m.MinCount, m.MaxCount)
		}
		if m.MinRadius > m.MaxRadius {
			return fmt.Errorf("%w: %s radius bounds [%d, %d]", ErrInvalid, name, m.MinRadius, m.MaxRadius)
		}
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("%w: terminal cell %dx%d", ErrInvalid, c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameSleep = time.Duration(c.Driver.FrameSleepMS) * time.Millisecond
	c.Derived.ResizeDebounce = time.Duration(c.Driver.ResizeDebounceSec * float64(time.Second))
	c.Derived.FrameInterval = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.DT32 = float32(c.Derived.FrameInterval.Seconds())
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
