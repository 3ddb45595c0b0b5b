package systems

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbs/components"
)

// EventKind identifies a reversal event.
type EventKind uint8

const (
	EventBounceDown EventKind = iota // hit the bottom bound, now rising
	EventBounceUp                    // hit the top bound, now falling
)

func (k EventKind) String() string {
	if k == EventBounceDown {
		return "bounce_down"
	}
	return "bounce_up"
}

// Event reports a reversal and the orb's new fill.
type Event struct {
	Index int
	Kind  EventKind
	Fill  components.Gradient
}

// TickResult is the outcome of one Tick.
// Events is reused by the next Tick; copy it to keep it.
type TickResult struct {
	Events []Event
	Stop   bool // population is empty, the driver should halt
}

// Particle is a by-value view of one orb.
type Particle struct {
	X, Y      float64
	Radius    float64
	VelocityY float64
	Reversed  bool
	Fill      components.Gradient
}

// Point is a canvas position.
type Point struct {
	X, Y float64
}

// DrawCommand describes one orb for a renderer: a circle filled with a
// two-stop radial gradient whose focal point is Origin.
type DrawCommand struct {
	Index  int
	Center Point
	Radius float64
	Origin Point
	Fill   components.Gradient
}

// Field owns the orb population. Orbs live in an ECS world and are
// addressed by their spawn index through order.
type Field struct {
	cfg SimulationConfig

	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Bounce,
		components.Body,
		components.Gradient,
	]
	order []ecs.Entity

	rng           Rand
	width, height float64
	mode          Mode
	radius        float64

	events []Event
}

// NewField creates an empty field. Call Reset to spawn orbs.
func NewField(cfg SimulationConfig) *Field {
	return &Field{cfg: cfg}
}

// Config returns the simulation parameters.
func (f *Field) Config() SimulationConfig {
	return f.cfg
}

// SetConfig replaces the simulation parameters. Spawn ranges and the
// palette apply from the next Reset, motion coefficients from the next Tick.
func (f *Field) SetConfig(cfg SimulationConfig) {
	f.cfg = cfg
}

// Reset clears the population and spawns a new generation for the canvas.
// On error the previous population is left untouched.
func (f *Field) Reset(width, height float64, mode Mode, rng Rand) error {
	if rng == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas %vx%v", ErrInvalidConfig, width, height)
	}
	if err := f.cfg.Validate(); err != nil {
		return err
	}

	mc := f.cfg.ForMode(mode)
	radius := uniformInt(rng, mc.MinRadius, mc.MaxRadius)
	count := uniformInt(rng, mc.MinCount, mc.MaxCount+1)
	halfWidth := int(width)/2 - radius/2

	world := ecs.NewWorld()
	mapper := ecs.NewMap5[
		components.Position,
		components.Velocity,
		components.Bounce,
		components.Body,
		components.Gradient,
	](world)
	order := make([]ecs.Entity, 0, count)

	for i := 0; i < count; i++ {
		fill := GreenGradient
		if f.cfg.Rainbow {
			fill = RandomGradient(rng)
		}
		// x may land past either edge when the canvas is narrow; kept as drawn
		pos := components.Position{
			X: float64(halfWidth + uniformInt(rng, -halfWidth, halfWidth)),
			Y: 0,
		}
		vel := components.Velocity{
			Y: f.cfg.SpeedRatio * float64(uniformInt(rng, f.cfg.MinStartSpeed, f.cfg.MaxStartSpeed)),
		}
		bounce := components.Bounce{}
		body := components.Body{Radius: float64(radius)}

		order = append(order, mapper.NewEntity(&pos, &vel, &bounce, &body, &fill))
	}

	f.world = world
	f.mapper = mapper
	f.order = order
	f.rng = rng
	f.width = width
	f.height = height
	f.mode = mode
	f.radius = float64(radius)
	f.events = f.events[:0]
	return nil
}

// Tick advances every orb by one frame, walking the population from the
// last spawned to the first.
//
// Velocity is not clamped between bounces and keeps growing for as long
// as an orb coasts.
func (f *Field) Tick() (TickResult, error) {
	f.events = f.events[:0]
	if len(f.order) == 0 {
		return TickResult{Stop: true}, nil
	}

	for i := len(f.order) - 1; i >= 0; i-- {
		pos, vel, bounce, body, fill := f.mapper.Get(f.order[i])

		pos.Y += vel.Y

		switch {
		case !bounce.Reversed && pos.Y >= f.height-body.Radius*1.5:
			bounce.Reversed = true
			vel.Y = -dampedSpeed(f.rng)
			*fill = AmberGradient
			f.events = append(f.events, Event{Index: i, Kind: EventBounceDown, Fill: *fill})
		case bounce.Reversed && pos.Y <= 0:
			bounce.Reversed = false
			vel.Y = dampedSpeed(f.rng)
			*fill = GreenGradient
			f.events = append(f.events, Event{Index: i, Kind: EventBounceUp, Fill: *fill})
		case bounce.Reversed:
			vel.Y -= f.rng.Float64() * f.cfg.UpCoefficient
		default:
			vel.Y += f.rng.Float64() * f.cfg.DownCoefficient
		}

		if !finite(pos.Y) || !finite(vel.Y) {
			return TickResult{Events: f.events}, fmt.Errorf("%w: orb %d y=%v vy=%v", ErrCorruptState, i, pos.Y, vel.Y)
		}
	}

	return TickResult{Events: f.events}, nil
}

// Len returns the population size.
func (f *Field) Len() int {
	return len(f.order)
}

// Radius returns the orb size shared by the current generation.
func (f *Field) Radius() float64 {
	return f.radius
}

// Mode returns the display mode of the last successful Reset.
func (f *Field) Mode() Mode {
	return f.mode
}

// Canvas returns the canvas size of the last successful Reset.
func (f *Field) Canvas() (width, height float64) {
	return f.width, f.height
}

// Particle returns a copy of orb i.
func (f *Field) Particle(i int) (Particle, bool) {
	if i < 0 || i >= len(f.order) {
		return Particle{}, false
	}
	pos, vel, bounce, body, fill := f.mapper.Get(f.order[i])
	return Particle{
		X:         pos.X,
		Y:         pos.Y,
		Radius:    body.Radius,
		VelocityY: vel.Y,
		Reversed:  bounce.Reversed,
		Fill:      *fill,
	}, true
}

// SetParticle overwrites the position, velocity, reversal state and fill of
// orb i. The radius is shared by the generation and is not changed.
func (f *Field) SetParticle(i int, p Particle) error {
	if i < 0 || i >= len(f.order) {
		return fmt.Errorf("%w: %d of %d", ErrIndexRange, i, len(f.order))
	}
	pos, vel, bounce, _, fill := f.mapper.Get(f.order[i])
	pos.X, pos.Y = p.X, p.Y
	vel.Y = p.VelocityY
	bounce.Reversed = p.Reversed
	*fill = p.Fill
	return nil
}

// Particles appends a copy of every orb to dst in spawn order.
func (f *Field) Particles(dst []Particle) []Particle {
	for i := range f.order {
		p, _ := f.Particle(i)
		dst = append(dst, p)
	}
	return dst
}

// DrawCommands appends one command per orb to dst in spawn order.
func (f *Field) DrawCommands(dst []DrawCommand) []DrawCommand {
	for i, e := range f.order {
		pos, _, _, body, fill := f.mapper.Get(e)
		r := body.Radius
		dst = append(dst, DrawCommand{
			Index:  i,
			Center: Point{X: pos.X + r*GradientCenterX, Y: pos.Y + r*GradientCenterY},
			Radius: r / 2,
			Origin: Point{X: pos.X + r*GradientOriginX, Y: pos.Y + r*GradientOriginY},
			Fill:   *fill,
		})
	}
	return dst
}

// Speeds appends |velocity| of every orb to dst.
func (f *Field) Speeds(dst []float64) []float64 {
	for _, e := range f.order {
		_, vel, _, _, _ := f.mapper.Get(e)
		dst = append(dst, math.Abs(vel.Y))
	}
	return dst
}
