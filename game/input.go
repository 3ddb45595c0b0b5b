package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/ui"
)

// handleInput processes mouse and keyboard gestures.
func (g *Game) handleInput() {
	g.handleResize()

	if g.mode == systems.ModeNormal && rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	mouse := rl.GetMousePosition()
	if g.panel.IsVisible() && g.panel.Contains(mouse) {
		return
	}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonRight):
		g.close()
	case g.mode == systems.ModeFullscreen && rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		g.close()
	case rl.IsMouseButtonPressed(rl.MouseButtonMiddle):
		if err := g.driver.Restart(); err != nil {
			g.fail(err)
		}
	}
}

// handleResize forwards window size changes to the debounced restart.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.driver.Resize(g.canvas())
}

// applySettings pushes panel edits into the field, renderer and driver.
func (g *Game) applySettings(change ui.SettingsChange) {
	if change.Outline {
		g.orbs.Outline = g.settings.Outline
	}
	if change.FrameDelay {
		g.driver.SetFrameDelay(time.Duration(g.settings.FrameDelayMS * float32(time.Millisecond)))
	}
	if change.Rainbow {
		g.session.SetRainbow(g.settings.Rainbow)
	}
	if change.Rainbow || change.Restart {
		if err := g.driver.Restart(); err != nil {
			g.fail(err)
		}
	}
}
