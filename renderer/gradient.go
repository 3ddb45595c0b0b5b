package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/orbs/systems"
)

// gradientSpan is the radius of the gradient disc around the focal point
// that stays inside the orb.
func gradientSpan(cmd systems.DrawCommand) float64 {
	offset := math.Hypot(cmd.Origin.X-cmd.Center.X, cmd.Origin.Y-cmd.Center.Y)
	span := cmd.Radius - offset
	if span < 0 {
		return 0
	}
	return span
}

// contains reports whether (x, y) lies inside the orb.
func contains(cmd systems.DrawCommand, x, y float64) bool {
	dx, dy := x-cmd.Center.X, y-cmd.Center.Y
	return dx*dx+dy*dy <= cmd.Radius*cmd.Radius
}

// gradientT is the position of (x, y) along the fill, 0 at the focal point
// and 1 at the rim colour.
func gradientT(cmd systems.DrawCommand, x, y float64) float64 {
	span := gradientSpan(cmd)
	if span == 0 {
		return 1
	}
	t := math.Hypot(x-cmd.Origin.X, y-cmd.Origin.Y) / span
	if t > 1 {
		return 1
	}
	return t
}

func lerpAlpha(a, b color.RGBA, t float64) float64 {
	return (float64(a.A)*(1-t) + float64(b.A)*t) / 255
}
