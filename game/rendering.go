package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/ui"
)

const controlsNormal = "[TAB] Settings  [Middle] Restart  [Right] Quit"

// Draw renders one frame. A running field advances here since the orb
// renderer issues draw calls directly; a stopped one repaints its last frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.background.Draw()

	if g.driver.Running() {
		if err := g.driver.Frame(); err != nil {
			g.fail(err)
		}
	} else {
		g.driver.Redraw()
	}

	if g.mode == systems.ModeNormal {
		g.drawOverlays()
	}

	rl.EndDrawing()
}

// drawOverlays renders the HUD and settings panel in windowed mode.
func (g *Game) drawOverlays() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	field := g.session.Field

	g.hud.Draw(ui.HUDData{
		Orbs:    field.Len(),
		Radius:  field.Radius(),
		Tick:    g.driver.Tick(),
		FPS:     rl.GetFPS(),
		Mode:    g.mode.String(),
		Running: g.driver.Running(),
	})
	if g.settings.ShowPerf {
		g.hud.DrawPerf(g.driver.Perf().Stats(), h)
	}
	g.hud.DrawControls(w, h, controlsNormal)

	if change := g.panel.Draw(&g.settings); change.Any() {
		g.applySettings(change)
	}
}
