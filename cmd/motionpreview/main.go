// Motion preview tool - runs the field live next to sliders for the
// motion coefficients.
//
// Usage: go run ./cmd/motionpreview
package main

import (
	"fmt"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/game"
	"github.com/pthm-cable/orbs/renderer"
	"github.com/pthm-cable/orbs/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewWidth = 600
	panelWidth   = windowWidth - previewWidth - 30
)

// motionParams is the YAML fragment shown and copied by the tool.
type motionParams struct {
	SpeedRatio      float64 `yaml:"speed_ratio"`
	DownCoefficient float64 `yaml:"down_coefficient"`
	UpCoefficient   float64 `yaml:"up_coefficient"`
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Orb Motion Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(50)

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	defaults := game.SimulationConfig(cfg)
	simCfg := defaults

	seed := int64(12345)
	field := systems.NewField(simCfg)
	orbs := renderer.NewOrbRenderer(cfg.Palette.Outline)
	background := renderer.NewBackgroundRenderer(cfg.Screen.Background)

	reset := func() {
		field.SetConfig(simCfg)
		if err := field.Reset(previewWidth, windowHeight, systems.ModeNormal, rand.New(rand.NewSource(seed))); err != nil {
			fmt.Println("reset failed:", err)
		}
	}
	reset()

	var cmds []systems.DrawCommand
	running := true
	bounces := 0

	for !rl.WindowShouldClose() {
		if running {
			res, err := field.Tick()
			if err != nil || res.Stop {
				running = false
			}
			bounces += len(res.Events)
		}
		cmds = field.DrawCommands(cmds[:0])

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginScissorMode(0, 0, previewWidth, windowHeight)
		background.Draw()
		orbs.Render(cmds)
		rl.EndScissorMode()

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Motion Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, lo, hi float64) float64 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				float32(value), float32(lo), float32(hi),
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if float64(v) != float64(float32(value)) {
				return float64(v)
			}
			return value
		}

		simCfg.SpeedRatio = slider("Speed ratio (start speed scale)", "%.2f", simCfg.SpeedRatio, 0.01, 0.5)
		simCfg.DownCoefficient = slider("Down coefficient (falling pull)", "%.3f", simCfg.DownCoefficient, 0.0, 0.5)
		simCfg.UpCoefficient = slider("Up coefficient (rising drag)", "%.3f", simCfg.UpCoefficient, 0.0, 0.1)
		field.SetConfig(simCfg)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(running, "Pause", "Resume")) {
			running = !running
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Restart") {
			bounces = 0
			running = true
			reset()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = rand.Int63()
			bounces = 0
			running = true
			reset()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(simCfg.Rainbow, "Green", "Rainbow")) {
			simCfg.Rainbow = !simCfg.Rainbow
			reset()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Reset All") {
			simCfg = defaults
			bounces = 0
			running = true
			reset()
		}
		panelY += 55

		rl.DrawText(fmt.Sprintf("Orbs: %d  Size: %.0f  Bounces: %d", field.Len(), field.Radius(), bounces),
			int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		// Output YAML
		snippet := motionYAML(simCfg)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// motionYAML renders the motion coefficients as a simulation config block.
func motionYAML(c systems.SimulationConfig) string {
	out, err := yaml.Marshal(map[string]motionParams{
		"simulation": {
			SpeedRatio:      c.SpeedRatio,
			DownCoefficient: c.DownCoefficient,
			UpCoefficient:   c.UpCoefficient,
		},
	})
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(out), "\n")
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
