package systems

import (
	"image/color"

	"github.com/pthm-cable/orbs/components"
)

// Gradient geometry shared by every renderer, as fractions of the orb's
// bounding box.
const (
	GradientOriginX = 0.3
	GradientOriginY = 0.3
	GradientCenterX = 0.5
	GradientCenterY = 0.5
)

// OutlineColor is the faint rim drawn around each orb when outlines are on.
var OutlineColor = color.RGBA{R: 50, G: 50, B: 50, A: 50}

// GreenGradient fills orbs at spawn and after a top bounce.
var GreenGradient = components.Gradient{
	Primary:   color.RGBA{R: 0, G: 255, B: 0, A: 110},
	Secondary: color.RGBA{R: 0, G: 128, B: 0, A: 110},
}

// AmberGradient fills orbs after a bottom bounce.
var AmberGradient = components.Gradient{
	Primary:   color.RGBA{R: 255, G: 200, B: 0, A: 110},
	Secondary: color.RGBA{R: 200, G: 100, B: 0, A: 110},
}

// RandomGradient draws a rainbow-palette fill: a bright focal stop in
// [150, 255) per channel and a darker rim stop in [30, 200).
func RandomGradient(rng Rand) components.Gradient {
	primary := color.RGBA{
		R: uint8(uniformInt(rng, 150, 255)),
		G: uint8(uniformInt(rng, 150, 255)),
		B: uint8(uniformInt(rng, 150, 255)),
		A: 128,
	}
	secondary := color.RGBA{
		R: uint8(uniformInt(rng, 30, 200)),
		G: uint8(uniformInt(rng, 30, 200)),
		B: uint8(uniformInt(rng, 30, 200)),
		A: 128,
	}
	return components.Gradient{Primary: primary, Secondary: secondary}
}
