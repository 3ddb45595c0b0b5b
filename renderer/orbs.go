package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/systems"
)

// OrbRenderer draws orbs with raylib. Must be used between
// rl.BeginDrawing and rl.EndDrawing.
type OrbRenderer struct {
	Outline bool
}

// NewOrbRenderer creates an orb renderer.
func NewOrbRenderer(outline bool) *OrbRenderer {
	return &OrbRenderer{Outline: outline}
}

// Render draws every command in order, later orbs on top.
func (r *OrbRenderer) Render(cmds []systems.DrawCommand) {
	for i := range cmds {
		c := &cmds[i]
		center := rl.Vector2{X: float32(c.Center.X), Y: float32(c.Center.Y)}
		radius := float32(c.Radius)

		// Rim colour first, then a disc around the focal point fading into it
		rl.DrawCircleV(center, radius, c.Fill.Secondary)
		if span := float32(gradientSpan(*c)); span > 0 {
			rl.DrawCircleGradient(int32(c.Origin.X), int32(c.Origin.Y), span, c.Fill.Primary, c.Fill.Secondary)
		}

		if r.Outline {
			rl.DrawCircleLinesV(center, radius, systems.OutlineColor)
		}
	}
}
