package renderer

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/orbs/systems"
)

// TerminalRenderer paints orbs onto a tcell screen, one sample per cell.
// Each cell covers CellWidth x CellHeight canvas units.
type TerminalRenderer struct {
	screen     tcell.Screen
	cellWidth  float64
	cellHeight float64
	background colorful.Color
}

// NewTerminalRenderer creates a renderer for screen.
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight int, bg color.RGBA) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		cellWidth:  float64(cellWidth),
		cellHeight: float64(cellHeight),
		background: toColorful(bg),
	}
}

// Canvas returns the canvas size covered by the current terminal size.
func (r *TerminalRenderer) Canvas() (width, height float64) {
	cols, rows := r.screen.Size()
	return float64(cols) * r.cellWidth, float64(rows) * r.cellHeight
}

// CellAt maps a terminal cell to the canvas point at its center.
func (r *TerminalRenderer) CellAt(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * r.cellWidth, (float64(row) + 0.5) * r.cellHeight
}

// Render repaints the whole screen and shows it.
func (r *TerminalRenderer) Render(cmds []systems.DrawCommand) {
	cols, rows := r.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := r.CellAt(col, row)
			c := Shade(cmds, x, y, r.background)
			cr, cg, cb := c.Clamped().RGB255()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
	r.screen.Show()
}

// Shade composites every orb covering (x, y) over bg in draw order.
func Shade(cmds []systems.DrawCommand, x, y float64, bg colorful.Color) colorful.Color {
	out := bg
	for i := range cmds {
		c := &cmds[i]
		if !contains(*c, x, y) {
			continue
		}
		t := gradientT(*c, x, y)
		fill := toColorful(c.Fill.Primary).BlendRgb(toColorful(c.Fill.Secondary), t)
		out = out.BlendRgb(fill, lerpAlpha(c.Fill.Primary, c.Fill.Secondary, t))
	}
	return out
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
