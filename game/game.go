package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/renderer"
	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/ui"
)

const windowTitle = "Orbs"

// Game is the raylib host: one window, one field and its overlays.
type Game struct {
	cfg     *config.Config
	session *Session
	driver  *Driver
	mode    systems.Mode

	orbs       *renderer.OrbRenderer
	background *renderer.BackgroundRenderer
	hud        *ui.HUD
	panel      *ui.SettingsPanel
	settings   ui.Settings

	closing bool
	err     error
}

// OpenWindow creates the raylib window for the given mode. Fullscreen
// covers the current monitor with a borderless window and hides the cursor.
func OpenWindow(cfg *config.Config, mode systems.Mode) {
	flags := uint32(rl.FlagMsaa4xHint)
	if cfg.Screen.VSync {
		flags |= rl.FlagVsyncHint
	}
	if mode == systems.ModeFullscreen {
		flags |= rl.FlagWindowUndecorated | rl.FlagWindowTopmost
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), windowTitle)

	if mode == systems.ModeFullscreen {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
		rl.SetWindowPosition(0, 0)
		rl.HideCursor()
	}
	if !cfg.Screen.VSync {
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}
}

// NewGame builds the host for an already opened window and starts the field.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	orbs := renderer.NewOrbRenderer(cfg.Palette.Outline)
	session, err := NewSession(cfg, opts, orbs)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		session:    session,
		driver:     session.Driver,
		mode:       opts.Mode,
		orbs:       orbs,
		background: renderer.NewBackgroundRenderer(cfg.Screen.Background),
		hud:        ui.NewHUD(),
		panel:      ui.NewSettingsPanel(10, 60, 220),
		settings: ui.Settings{
			Rainbow:      cfg.Palette.Rainbow,
			Outline:      cfg.Palette.Outline,
			ShowPerf:     cfg.Telemetry.ShowAverage,
			FrameDelayMS: float32(cfg.Derived.FrameSleep) / float32(time.Millisecond),
		},
	}

	w, h := g.canvas()
	if err := g.driver.Start(w, h, opts.Mode); err != nil {
		session.Close()
		return nil, fmt.Errorf("starting field: %w", err)
	}
	return g, nil
}

func (g *Game) canvas() (width, height float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Update handles input and pending restarts. Drawing happens in Draw.
func (g *Game) Update() {
	g.handleInput()
	if g.closing {
		return
	}
	if _, err := g.driver.Poll(); err != nil {
		g.fail(err)
	}
}

// ShouldClose reports whether the host asked to quit.
func (g *Game) ShouldClose() bool {
	return g.closing
}

// Err returns the error that stopped the field, if any.
func (g *Game) Err() error {
	return g.err
}

// Tick returns the number of frames run.
func (g *Game) Tick() int64 {
	return g.driver.Tick()
}

// Close stops the field and flushes telemetry output.
func (g *Game) Close() error {
	return g.session.Close()
}

func (g *Game) close() {
	g.driver.Stop()
	g.closing = true
}

func (g *Game) fail(err error) {
	if g.err == nil {
		g.err = err
	}
	g.close()
}
