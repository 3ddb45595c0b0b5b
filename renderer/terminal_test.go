package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/orbs/components"
	"github.com/pthm-cable/orbs/systems"
)

func testCommand() systems.DrawCommand {
	// Orb at (0, 0) with a 40 unit box
	return systems.DrawCommand{
		Center: systems.Point{X: 20, Y: 20},
		Radius: 20,
		Origin: systems.Point{X: 12, Y: 12},
		Fill: components.Gradient{
			Primary:   color.RGBA{R: 255, A: 255},
			Secondary: color.RGBA{B: 255, A: 255},
		},
	}
}

func TestGradientGeometry(t *testing.T) {
	c := testCommand()

	wantSpan := 20 - math.Hypot(8, 8)
	if got := gradientSpan(c); math.Abs(got-wantSpan) > 1e-9 {
		t.Errorf("gradientSpan = %v, want %v", got, wantSpan)
	}
	if got := gradientT(c, 12, 12); got != 0 {
		t.Errorf("gradientT at focal point = %v, want 0", got)
	}
	if got := gradientT(c, 39, 20); got != 1 {
		t.Errorf("gradientT at rim = %v, want 1", got)
	}
	if !contains(c, 20, 1) || contains(c, 1, 1) {
		t.Error("contains disagrees with the circle bounds")
	}
}

func TestShade(t *testing.T) {
	bg := colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	cmds := []systems.DrawCommand{testCommand()}

	tests := []struct {
		name string
		x, y float64
		want colorful.Color
	}{
		{"outside", 1, 1, bg},
		{"focal point", 12, 12, colorful.Color{R: 1}},
		{"rim", 39, 20, colorful.Color{B: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shade(cmds, tt.x, tt.y, bg)
			if !got.AlmostEqualRgb(tt.want) {
				t.Errorf("Shade(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Translucent fills mix with what is underneath
	half := testCommand()
	half.Fill.Primary.A = 128
	half.Fill.Secondary.A = 128
	got := Shade([]systems.DrawCommand{half}, 12, 12, colorful.Color{})
	if got.R < 0.49 || got.R > 0.51 {
		t.Errorf("half-alpha red = %v, want ~0.5", got.R)
	}
}

func TestTerminalRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)

	r := NewTerminalRenderer(screen, 8, 16, color.RGBA{R: 14, G: 14, B: 14})
	if w, h := r.Canvas(); w != 80 || h != 80 {
		t.Fatalf("Canvas() = %vx%v, want 80x80", w, h)
	}

	r.Render([]systems.DrawCommand{testCommand()})

	// Cell (1, 0) samples (12, 8), inside the orb
	_, _, style, _ := screen.GetContent(1, 0)
	_, bg, _ := style.Decompose()
	if bg == tcell.NewRGBColor(14, 14, 14) {
		t.Error("expected orb colour in cell (1, 0)")
	}

	// Cell (9, 4) samples (76, 72), background only
	_, _, style, _ = screen.GetContent(9, 4)
	_, bg, _ = style.Decompose()
	if bg != tcell.NewRGBColor(14, 14, 14) {
		t.Errorf("background cell = %v, want rgb(14,14,14)", bg)
	}
}
