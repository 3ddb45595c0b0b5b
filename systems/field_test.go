package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestField(t *testing.T, seed int64, width, height float64, mode Mode) (*Field, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	f := NewField(DefaultSimulationConfig())
	if err := f.Reset(width, height, mode, rng); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return f, rng
}

// TestResetPopulationBounds verifies count and radius stay within the mode's ranges.
func TestResetPopulationBounds(t *testing.T) {
	tests := []struct {
		name           string
		mode           Mode
		minCount, maxC int
		minR, maxR     float64
	}{
		{"normal", ModeNormal, 50, 100, 20, 40},
		{"fullscreen", ModeFullscreen, 75, 125, 40, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 50; seed++ {
				f, _ := newTestField(t, seed, 400, 600, tt.mode)
				if n := f.Len(); n < tt.minCount || n > tt.maxC {
					t.Fatalf("seed %d: count %d outside [%d, %d]", seed, n, tt.minCount, tt.maxC)
				}
				if r := f.Radius(); r < tt.minR || r >= tt.maxR {
					t.Fatalf("seed %d: radius %v outside [%v, %v)", seed, r, tt.minR, tt.maxR)
				}
				if f.Mode() != tt.mode {
					t.Errorf("Mode() = %v, want %v", f.Mode(), tt.mode)
				}
			}
		})
	}
}

// TestResetSharedRadius verifies one radius per generation and the spawn state.
func TestResetSharedRadius(t *testing.T) {
	f, _ := newTestField(t, 7, 400, 600, ModeNormal)
	r := f.Radius()

	for i, p := range f.Particles(nil) {
		if p.Radius != r {
			t.Errorf("orb %d radius = %v, want %v", i, p.Radius, r)
		}
		if p.Y != 0 {
			t.Errorf("orb %d spawned at y=%v, want 0", i, p.Y)
		}
		if p.Reversed {
			t.Errorf("orb %d spawned reversed", i)
		}
		if p.VelocityY < 0.1 || p.VelocityY >= 1.0 {
			t.Errorf("orb %d start speed %v outside [0.1, 1.0)", i, p.VelocityY)
		}
		if p.Fill != GreenGradient {
			t.Errorf("orb %d fill = %+v, want green", i, p.Fill)
		}
		if p.X != math.Trunc(p.X) {
			t.Errorf("orb %d x = %v, want whole number", i, p.X)
		}
	}
}

// TestFirstTickAddsVelocity checks y equals the start velocity after one frame.
func TestFirstTickAddsVelocity(t *testing.T) {
	f, _ := newTestField(t, 42, 400, 600, ModeNormal)
	before := f.Particles(nil)

	res, err := f.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if res.Stop {
		t.Fatal("unexpected stop signal")
	}
	if len(res.Events) != 0 {
		t.Errorf("expected no reversals on the first frame, got %d", len(res.Events))
	}

	for i, p := range f.Particles(nil) {
		if p.Y != before[i].VelocityY {
			t.Errorf("orb %d y = %v, want %v", i, p.Y, before[i].VelocityY)
		}
		if p.VelocityY < before[i].VelocityY {
			t.Errorf("orb %d slowed while falling: %v -> %v", i, before[i].VelocityY, p.VelocityY)
		}
	}
}

// TestBottomBounce covers an orb just above the floor threshold.
func TestBottomBounce(t *testing.T) {
	f, _ := newTestField(t, 3, 400, 600, ModeNormal)
	threshold := 600 - f.Radius()*1.5

	p, _ := f.Particle(0)
	p.Y = threshold - 0.5
	p.VelocityY = 1.0
	p.Reversed = false
	if err := f.SetParticle(0, p); err != nil {
		t.Fatalf("SetParticle failed: %v", err)
	}

	res, err := f.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	got, _ := f.Particle(0)
	if got.Y < threshold {
		t.Errorf("y = %v, want >= %v", got.Y, threshold)
	}
	if !got.Reversed {
		t.Error("expected orb to be reversed after bottom bounce")
	}
	if got.VelocityY > 0 || got.VelocityY <= -1 {
		t.Errorf("velocity = %v, want in (-1, 0]", got.VelocityY)
	}
	if got.Fill != AmberGradient {
		t.Errorf("fill = %+v, want amber", got.Fill)
	}

	found := false
	for _, e := range res.Events {
		if e.Index == 0 {
			found = true
			if e.Kind != EventBounceDown {
				t.Errorf("event kind = %v, want %v", e.Kind, EventBounceDown)
			}
		}
	}
	if !found {
		t.Error("expected a reversal event for orb 0")
	}
}

// TestTopBounce covers a rising orb crossing the top edge.
func TestTopBounce(t *testing.T) {
	f, _ := newTestField(t, 5, 400, 600, ModeNormal)

	p, _ := f.Particle(1)
	p.Y = 0.2
	p.VelocityY = -0.5
	p.Reversed = true
	p.Fill = AmberGradient
	if err := f.SetParticle(1, p); err != nil {
		t.Fatalf("SetParticle failed: %v", err)
	}

	res, err := f.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	got, _ := f.Particle(1)
	if got.Reversed {
		t.Error("expected orb to fall again after top bounce")
	}
	if got.VelocityY < 0 || got.VelocityY >= 1 {
		t.Errorf("velocity = %v, want in [0, 1)", got.VelocityY)
	}
	if got.Fill != GreenGradient {
		t.Errorf("fill = %+v, want green", got.Fill)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventBounceUp {
		t.Errorf("events = %+v, want one bounce_up", res.Events)
	}
}

// TestRisingDecelerates checks the coast branch for a reversed orb.
func TestRisingDecelerates(t *testing.T) {
	f, _ := newTestField(t, 9, 400, 600, ModeNormal)

	p, _ := f.Particle(0)
	p.Y = 300
	p.VelocityY = -0.5
	p.Reversed = true
	if err := f.SetParticle(0, p); err != nil {
		t.Fatalf("SetParticle failed: %v", err)
	}
	if _, err := f.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	got, _ := f.Particle(0)
	if got.Y != 299.5 {
		t.Errorf("y = %v, want 299.5", got.Y)
	}
	if got.VelocityY > -0.5 || got.VelocityY < -0.51 {
		t.Errorf("velocity = %v, want in [-0.51, -0.5]", got.VelocityY)
	}
	if !got.Reversed {
		t.Error("coasting orb lost its reversed flag")
	}
}

// TestBounceLongRun runs a long session and checks the reversal rules hold every frame.
func TestBounceLongRun(t *testing.T) {
	f, _ := newTestField(t, 11, 400, 300, ModeNormal)

	prev := f.Particles(nil)
	var cur []Particle
	bounces := 0
	for tick := 0; tick < 2000; tick++ {
		res, err := f.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		cur = f.Particles(cur[:0])

		reported := make(map[int]EventKind, len(res.Events))
		for _, e := range res.Events {
			if _, dup := reported[e.Index]; dup {
				t.Fatalf("tick %d: orb %d reported twice", tick, e.Index)
			}
			reported[e.Index] = e.Kind
		}

		for i, p := range cur {
			flipped := p.Reversed != prev[i].Reversed
			kind, ok := reported[i]
			if flipped != ok {
				t.Fatalf("tick %d orb %d: flipped=%v but event=%v", tick, i, flipped, ok)
			}
			if !ok {
				continue
			}
			bounces++
			switch kind {
			case EventBounceDown:
				if !p.Reversed || p.VelocityY > 0 {
					t.Fatalf("tick %d orb %d: after bounce_down reversed=%v v=%v", tick, i, p.Reversed, p.VelocityY)
				}
			case EventBounceUp:
				if p.Reversed || p.VelocityY < 0 {
					t.Fatalf("tick %d orb %d: after bounce_up reversed=%v v=%v", tick, i, p.Reversed, p.VelocityY)
				}
			}
		}
		prev, cur = cur, prev
	}

	if bounces == 0 {
		t.Error("expected at least one bounce in 2000 frames")
	}
}

// TestTickEmptyStops verifies the stop signal on an empty population.
func TestTickEmptyStops(t *testing.T) {
	f := NewField(DefaultSimulationConfig())
	for i := 0; i < 3; i++ {
		res, err := f.Tick()
		if err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if !res.Stop {
			t.Error("expected stop signal from empty field")
		}
		if len(res.Events) != 0 {
			t.Errorf("expected no events, got %d", len(res.Events))
		}
	}

	// A zero-count configuration produces an empty generation
	cfg := DefaultSimulationConfig()
	cfg.Normal.MinCount, cfg.Normal.MaxCount = 0, 0
	f = NewField(cfg)
	if err := f.Reset(400, 600, ModeNormal, rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if res, _ := f.Tick(); !res.Stop {
		t.Error("expected stop signal after empty reset")
	}
}

// TestDeterminism compares two seeded runs frame by frame.
func TestDeterminism(t *testing.T) {
	for _, rainbow := range []bool{false, true} {
		cfg := DefaultSimulationConfig()
		cfg.Rainbow = rainbow

		a := NewField(cfg)
		b := NewField(cfg)
		if err := a.Reset(640, 480, ModeFullscreen, rand.New(rand.NewSource(99))); err != nil {
			t.Fatal(err)
		}
		if err := b.Reset(640, 480, ModeFullscreen, rand.New(rand.NewSource(99))); err != nil {
			t.Fatal(err)
		}

		var pa, pb []Particle
		for tick := 0; tick < 500; tick++ {
			if _, err := a.Tick(); err != nil {
				t.Fatal(err)
			}
			if _, err := b.Tick(); err != nil {
				t.Fatal(err)
			}
			pa = a.Particles(pa[:0])
			pb = b.Particles(pb[:0])
			if len(pa) != len(pb) {
				t.Fatalf("population mismatch %d vs %d", len(pa), len(pb))
			}
			for i := range pa {
				if pa[i] != pb[i] {
					t.Fatalf("rainbow=%v tick %d orb %d diverged: %+v vs %+v", rainbow, tick, i, pa[i], pb[i])
				}
			}
		}
	}
}

// TestResetInvalid covers the configuration errors raised at reset.
func TestResetInvalid(t *testing.T) {
	inverted := DefaultSimulationConfig()
	inverted.Normal.MinCount, inverted.Normal.MaxCount = 100, 50

	badRadius := DefaultSimulationConfig()
	badRadius.Fullscreen.MinRadius = 90

	nanCoeff := DefaultSimulationConfig()
	nanCoeff.DownCoefficient = math.NaN()

	tests := []struct {
		name          string
		cfg           SimulationConfig
		width, height float64
		rng           Rand
	}{
		{"zero width", DefaultSimulationConfig(), 0, 600, rand.New(rand.NewSource(1))},
		{"negative height", DefaultSimulationConfig(), 400, -1, rand.New(rand.NewSource(1))},
		{"infinite width", DefaultSimulationConfig(), math.Inf(1), 600, rand.New(rand.NewSource(1))},
		{"inverted counts", inverted, 400, 600, rand.New(rand.NewSource(1))},
		{"inverted radius", badRadius, 400, 600, rand.New(rand.NewSource(1))},
		{"nan coefficient", nanCoeff, 400, 600, rand.New(rand.NewSource(1))},
		{"nil rng", DefaultSimulationConfig(), 400, 600, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(tt.cfg)
			err := f.Reset(tt.width, tt.height, ModeNormal, tt.rng)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Reset() error = %v, want ErrInvalidConfig", err)
			}
			if f.Len() != 0 {
				t.Errorf("failed reset left %d orbs", f.Len())
			}
		})
	}
}

// TestResetFailureKeepsPopulation checks a failed reset leaves the old generation alone.
func TestResetFailureKeepsPopulation(t *testing.T) {
	f, rng := newTestField(t, 17, 400, 600, ModeNormal)
	n := f.Len()

	if err := f.Reset(0, 600, ModeNormal, rng); err == nil {
		t.Fatal("expected error for zero width")
	}
	if f.Len() != n {
		t.Errorf("population changed from %d to %d", n, f.Len())
	}
	if w, h := f.Canvas(); w != 400 || h != 600 {
		t.Errorf("canvas = %vx%v, want 400x600", w, h)
	}
}

// TestCorruptStateStops verifies non-finite motion surfaces as an error.
func TestCorruptStateStops(t *testing.T) {
	f, _ := newTestField(t, 21, 400, 600, ModeNormal)

	p, _ := f.Particle(2)
	p.VelocityY = math.NaN()
	if err := f.SetParticle(2, p); err != nil {
		t.Fatalf("SetParticle failed: %v", err)
	}

	if _, err := f.Tick(); !errors.Is(err, ErrCorruptState) {
		t.Errorf("Tick() error = %v, want ErrCorruptState", err)
	}
}

// TestParticleIndexRange covers lookups outside the population.
func TestParticleIndexRange(t *testing.T) {
	f, _ := newTestField(t, 1, 400, 600, ModeNormal)

	if _, ok := f.Particle(-1); ok {
		t.Error("Particle(-1) should report false")
	}
	if _, ok := f.Particle(f.Len()); ok {
		t.Error("Particle(Len()) should report false")
	}
	if err := f.SetParticle(f.Len(), Particle{}); !errors.Is(err, ErrIndexRange) {
		t.Errorf("SetParticle() error = %v, want ErrIndexRange", err)
	}
}

// TestRainbowPalette checks randomized fills stay in their channel ranges.
func TestRainbowPalette(t *testing.T) {
	cfg := DefaultSimulationConfig()
	cfg.Rainbow = true
	f := NewField(cfg)
	if err := f.Reset(800, 600, ModeNormal, rand.New(rand.NewSource(5))); err != nil {
		t.Fatal(err)
	}

	distinct := make(map[[3]uint8]bool)
	for i, p := range f.Particles(nil) {
		pr, sc := p.Fill.Primary, p.Fill.Secondary
		for _, c := range []uint8{pr.R, pr.G, pr.B} {
			if c < 150 || c > 254 {
				t.Errorf("orb %d primary channel %d outside [150, 254]", i, c)
			}
		}
		for _, c := range []uint8{sc.R, sc.G, sc.B} {
			if c < 30 || c > 199 {
				t.Errorf("orb %d secondary channel %d outside [30, 199]", i, c)
			}
		}
		if pr.A != 128 || sc.A != 128 {
			t.Errorf("orb %d alpha = %d/%d, want 128", i, pr.A, sc.A)
		}
		distinct[[3]uint8{pr.R, pr.G, pr.B}] = true
	}
	if len(distinct) < 2 {
		t.Error("expected rainbow fills to vary between orbs")
	}
}

// TestDrawCommands checks the gradient geometry handed to renderers.
func TestDrawCommands(t *testing.T) {
	f, _ := newTestField(t, 8, 400, 600, ModeNormal)

	p, _ := f.Particle(0)
	p.X, p.Y = 100, 50
	if err := f.SetParticle(0, p); err != nil {
		t.Fatal(err)
	}

	cmds := f.DrawCommands(nil)
	if len(cmds) != f.Len() {
		t.Fatalf("got %d commands, want %d", len(cmds), f.Len())
	}

	r := f.Radius()
	c := cmds[0]
	if c.Index != 0 {
		t.Errorf("Index = %d, want 0", c.Index)
	}
	if c.Center != (Point{X: 100 + r/2, Y: 50 + r/2}) {
		t.Errorf("Center = %+v", c.Center)
	}
	if c.Radius != r/2 {
		t.Errorf("Radius = %v, want %v", c.Radius, r/2)
	}
	if c.Origin != (Point{X: 100 + r*0.3, Y: 50 + r*0.3}) {
		t.Errorf("Origin = %+v", c.Origin)
	}

	// Reusing the slice must not grow it across frames
	cmds = f.DrawCommands(cmds[:0])
	if len(cmds) != f.Len() {
		t.Errorf("reused slice has %d commands, want %d", len(cmds), f.Len())
	}
}

// TestNarrowCanvasSpawn verifies spawning survives a canvas narrower than an orb.
func TestNarrowCanvasSpawn(t *testing.T) {
	f, _ := newTestField(t, 13, 10, 600, ModeFullscreen)
	if f.Len() == 0 {
		t.Fatal("expected orbs on a narrow canvas")
	}
	if _, err := f.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
}
