package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/telemetry"
)

// HUDData holds the values shown by the status line.
type HUDData struct {
	Orbs    int
	Radius  float64
	Tick    int64
	FPS     int32
	Mode    string
	Running bool
}

// HUD renders the status line and the perf readout.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the status line in the top left corner.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	h.renderer.DrawShadowText(
		fmt.Sprintf("Orbs: %d | Size: %.0f | Tick: %d | FPS: %d | %s",
			data.Orbs, data.Radius, data.Tick, data.FPS, data.Mode),
		t.Padding, t.Padding, 16, rl.LightGray,
	)
	if !data.Running {
		h.renderer.DrawShadowText("STOPPED  [middle click to restart]", t.Padding, t.Padding+20, 16, t.WarnColor)
	}
}

// DrawPerf renders the average update time in the bottom left corner with
// a per-phase breakdown above it.
func (h *HUD) DrawPerf(stats telemetry.PerfStats, screenHeight int32) {
	r := h.renderer
	t := r.Theme
	phases := []string{telemetry.PhaseSimulate, telemetry.PhaseTelemetry, telemetry.PhaseRender, telemetry.PhaseSleep}

	panelH := t.Padding*2 + t.LineHeight*int32(len(phases)+1)
	panelY := screenHeight - t.Padding - 16 - 6 - panelH
	r.DrawPanel(t.Padding, panelY, 200, panelH)

	y := r.DrawSectionHeader(2*t.Padding, panelY+t.Padding, "Frame phases")
	for _, phase := range phases {
		y = r.DrawLabelValue(2*t.Padding, y, phase,
			fmt.Sprintf("%.3f ms  %4.1f%%", float64(stats.PhaseAvg[phase].Microseconds())/1000, stats.PhasePct[phase]))
	}

	r.DrawShadowText(FormatUpdate(stats), t.Padding, screenHeight-t.Padding-16, 16, rl.White)
}

// DrawControls renders the control legend at the bottom right of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	w := rl.MeasureText(controls, 14)
	rl.DrawText(controls, screenWidth-w-10, screenHeight-25, 14, rl.Gray)
}

// FormatUpdate renders the readout text, for example "Update: 0.042 ms (100)".
func FormatUpdate(stats telemetry.PerfStats) string {
	return fmt.Sprintf("Update: %.3f ms (%d)", stats.UpdateMillis(), stats.Samples)
}
