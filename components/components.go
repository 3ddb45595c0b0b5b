// Package components defines ECS components for the orb simulation.
package components

import "image/color"

// Position is the top-left corner of an orb's bounding box in canvas units.
type Position struct {
	X, Y float64
}

// Velocity holds the vertical speed in canvas units per frame.
// Positive values move the orb down the canvas.
type Velocity struct {
	Y float64
}

// Bounce tracks which leg of the bounce an orb is on.
// Reversed is set by a bottom bounce and cleared by a top bounce.
type Bounce struct {
	Reversed bool
}

// Body holds the orb size. The orb occupies a Radius x Radius box.
type Body struct {
	Radius float64
}

// Gradient is a two-stop radial fill: Primary at the focal point,
// Secondary at the rim.
type Gradient struct {
	Primary   color.RGBA
	Secondary color.RGBA
}
