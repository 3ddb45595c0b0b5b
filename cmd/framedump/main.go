// Frame dump tool - runs the field for a number of frames and renders the
// result to a PNG file for inspection.
//
// Usage: go run ./cmd/framedump -seed 42 -ticks 300 -out frame.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/game"
	"github.com/pthm-cable/orbs/renderer"
	"github.com/pthm-cable/orbs/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	seed := flag.Int64("seed", 42, "RNG seed")
	ticks := flag.Int("ticks", 300, "Frames to run before rendering")
	fullscreen := flag.Bool("fullscreen", false, "Use the fullscreen spawn ranges")
	rainbow := flag.Bool("rainbow", false, "Use random gradients")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	width, height := cfg.Screen.Width, cfg.Screen.Height

	mode := systems.ModeNormal
	if *fullscreen {
		mode = systems.ModeFullscreen
	}

	simCfg := game.SimulationConfig(cfg)
	simCfg.Rainbow = simCfg.Rainbow || *rainbow
	field := systems.NewField(simCfg)
	if err := field.Reset(float64(width), float64(height), mode, rand.New(rand.NewSource(*seed))); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reset field: %v\n", err)
		os.Exit(1)
	}

	ran := 0
	for ; ran < *ticks; ran++ {
		res, err := field.Tick()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Tick %d failed: %v\n", ran, err)
			os.Exit(1)
		}
		if res.Stop {
			break
		}
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(width), int32(height), "Frame Dump")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	renderer.NewBackgroundRenderer(cfg.Screen.Background).Draw()
	renderer.NewOrbRenderer(cfg.Palette.Outline).Render(field.DrawCommands(nil))
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
	fmt.Printf("Frame %d rendered to: %s (%dx%d, %d orbs)\n", ran, *outPath, width, height, field.Len())
}
