package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer clears the frame to a flat colour.
type BackgroundRenderer struct {
	color rl.Color
}

// NewBackgroundRenderer creates a background renderer from an RGB triple.
func NewBackgroundRenderer(rgb [3]int) *BackgroundRenderer {
	return &BackgroundRenderer{color: BackgroundColor(rgb)}
}

// Draw clears the frame.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.color)
}

// Color returns the background colour.
func (b *BackgroundRenderer) Color() color.RGBA {
	return b.color
}

// BackgroundColor converts a configured RGB triple into an opaque colour,
// clamping each channel to 0-255.
func BackgroundColor(rgb [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{R: clamp(rgb[0]), G: clamp(rgb[1]), B: clamp(rgb[2]), A: 255}
}
