package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Settings is the state edited by the settings panel.
type Settings struct {
	Rainbow      bool
	Outline      bool
	ShowPerf     bool
	FrameDelayMS float32
}

// SettingsChange reports what the user changed in one Draw.
type SettingsChange struct {
	Rainbow    bool // palette toggled, needs a restart to apply
	Outline    bool
	ShowPerf   bool
	FrameDelay bool
	Restart    bool
}

// Any reports whether anything changed.
func (c SettingsChange) Any() bool {
	return c.Rainbow || c.Outline || c.ShowPerf || c.FrameDelay || c.Restart
}

// MaxFrameDelayMS is the upper end of the frame delay slider.
const MaxFrameDelayMS = 100

// SettingsPanel is a raygui panel for the windowed mode settings.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewSettingsPanel creates a hidden settings panel.
func NewSettingsPanel(x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (p *SettingsPanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *SettingsPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *SettingsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Contains reports whether a screen point falls on the visible panel.
func (p *SettingsPanel) Contains(pt rl.Vector2) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(pt, p.bounds())
}

func (p *SettingsPanel) bounds() rl.Rectangle {
	t := p.renderer.Theme
	rows := int32(6)
	height := t.Padding*2 + t.LineHeight + rows*(t.ControlHeight+6)
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(height)}
}

// Draw renders the panel and applies clicks to s.
func (p *SettingsPanel) Draw(s *Settings) SettingsChange {
	var change SettingsChange
	if !p.visible {
		return change
	}

	r := p.renderer
	t := r.Theme
	b := p.bounds()
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	x := float32(p.x + t.Padding)
	y := r.DrawSectionHeader(p.x+t.Padding, p.y+t.Padding, "Settings  [Tab]")
	w := float32(p.width - 2*t.Padding)
	h := float32(t.ControlHeight)
	row := func() rl.Rectangle {
		rect := rl.Rectangle{X: x, Y: float32(y), Width: w, Height: h}
		y += t.ControlHeight + 6
		return rect
	}

	if gui.Button(row(), toggleText(s.Rainbow, "Palette: rainbow", "Palette: green")) {
		s.Rainbow = !s.Rainbow
		change.Rainbow = true
	}
	if gui.Button(row(), toggleText(s.Outline, "Outline: on", "Outline: off")) {
		s.Outline = !s.Outline
		change.Outline = true
	}
	if gui.Button(row(), toggleText(s.ShowPerf, "Show average: on", "Show average: off")) {
		s.ShowPerf = !s.ShowPerf
		change.ShowPerf = true
	}

	rl.DrawText(fmt.Sprintf("Frame delay: %.0f ms", s.FrameDelayMS), int32(x), y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	delay := gui.SliderBar(row(), "0", fmt.Sprint(MaxFrameDelayMS), s.FrameDelayMS, 0, MaxFrameDelayMS)
	if delay = float32(int(delay + 0.5)); delay != s.FrameDelayMS {
		s.FrameDelayMS = delay
		change.FrameDelay = true
	}

	if gui.Button(row(), "Restart") {
		change.Restart = true
	}

	return change
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
