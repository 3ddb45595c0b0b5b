package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Simulation.Normal.MinCount != 50 || cfg.Simulation.Normal.MaxCount != 100 {
		t.Errorf("normal count = [%d, %d], want [50, 100]",
			cfg.Simulation.Normal.MinCount, cfg.Simulation.Normal.MaxCount)
	}
	if cfg.Simulation.Fullscreen.MinRadius != 40 || cfg.Simulation.Fullscreen.MaxRadius != 80 {
		t.Errorf("fullscreen radius = [%d, %d], want [40, 80]",
			cfg.Simulation.Fullscreen.MinRadius, cfg.Simulation.Fullscreen.MaxRadius)
	}
	if cfg.Simulation.SpeedRatio != 0.1 {
		t.Errorf("speed_ratio = %v, want 0.1", cfg.Simulation.SpeedRatio)
	}
	if cfg.Derived.FrameSleep != 20*time.Millisecond {
		t.Errorf("derived frame sleep = %v, want 20ms", cfg.Derived.FrameSleep)
	}
	if cfg.Derived.ResizeDebounce != 3*time.Second {
		t.Errorf("derived resize debounce = %v, want 3s", cfg.Derived.ResizeDebounce)
	}
	if cfg.Screen.Background != [3]int{14, 14, 14} {
		t.Errorf("background = %v, want [14 14 14]", cfg.Screen.Background)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbs.yaml")
	overlay := []byte("palette:\n  rainbow: true\ndriver:\n  frame_sleep_ms: 5\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if !cfg.Palette.Rainbow {
		t.Error("expected rainbow palette from overlay")
	}
	// Fields absent from the overlay keep their defaults
	if !cfg.Palette.Outline {
		t.Error("expected outline to keep its default")
	}
	if cfg.Derived.FrameSleep != 5*time.Millisecond {
		t.Errorf("derived frame sleep = %v, want 5ms", cfg.Derived.FrameSleep)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"inverted counts", "simulation:\n  normal:\n    min_count: 120\n"},
		{"inverted radius", "simulation:\n  fullscreen:\n    min_radius: 90\n"},
		{"zero fps", "screen:\n  target_fps: 0\n"},
		{"negative sleep", "driver:\n  frame_sleep_ms: -1\n"},
		{"zero screen", "screen:\n  width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatalf("writing overlay: %v", err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Palette.Rainbow = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if !reloaded.Palette.Rainbow {
		t.Error("expected rainbow to survive a write/load cycle")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg() to panic before Init()")
		}
	}()
	Cfg()
}
