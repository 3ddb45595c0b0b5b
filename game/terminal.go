package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/renderer"
	"github.com/pthm-cable/orbs/systems"
)

// TerminalHost runs the field on a tcell screen. The caller owns the
// screen: it must be initialised before NewTerminalHost and finalised
// after Run returns.
type TerminalHost struct {
	screen   tcell.Screen
	session  *Session
	driver   *Driver
	renderer *renderer.TerminalRenderer
	mode     systems.Mode

	buttons  tcell.ButtonMask
	restarts int
}

// NewTerminalHost builds the host and starts the field at the terminal size.
func NewTerminalHost(screen tcell.Screen, cfg *config.Config, opts Options) (*TerminalHost, error) {
	screen.EnableMouse()
	screen.HideCursor()

	r := renderer.NewTerminalRenderer(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight,
		renderer.BackgroundColor(cfg.Screen.Background))
	session, err := NewSession(cfg, opts, r)
	if err != nil {
		return nil, err
	}

	h := &TerminalHost{
		screen:   screen,
		session:  session,
		driver:   session.Driver,
		renderer: r,
		mode:     opts.Mode,
	}
	w, ht := r.Canvas()
	if err := h.driver.Start(w, ht, opts.Mode); err != nil {
		session.Close()
		return nil, fmt.Errorf("starting field: %w", err)
	}
	return h, nil
}

// Driver returns the frame driver.
func (h *TerminalHost) Driver() *Driver {
	return h.driver
}

// Restarts returns how many restarts the user asked for.
func (h *TerminalHost) Restarts() int {
	return h.restarts
}

// Close stops the field and flushes telemetry output.
func (h *TerminalHost) Close() error {
	return h.session.Close()
}

// Run pumps terminal events and frames until the user quits, ctx is
// cancelled, frames is closed or maxTicks frames have run. A stopped field
// keeps its last frame on screen.
func (h *TerminalHost) Run(ctx context.Context, frames <-chan time.Time, maxTicks int64) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		if maxTicks > 0 && h.driver.Tick() >= maxTicks {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			quit, err := h.handleEvent(ev)
			if err != nil || quit {
				return err
			}

		case _, ok := <-frames:
			if !ok {
				return nil
			}
			if _, err := h.driver.Poll(); err != nil {
				return err
			}
			if !h.driver.Running() {
				h.driver.Redraw()
				continue
			}
			if err := h.driver.Frame(); err != nil {
				return err
			}
		}
	}
}

// handleEvent applies one terminal event. It reports whether to quit.
func (h *TerminalHost) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.driver.Resize(h.renderer.Canvas())

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			h.driver.Stop()
			return true, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			h.driver.Stop()
			return true, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			return false, h.restart()
		}

	case *tcell.EventMouse:
		// Motion with a button held repeats the mask; act on presses only
		pressed := ev.Buttons() &^ h.buttons
		h.buttons = ev.Buttons()

		switch {
		case pressed&tcell.ButtonSecondary != 0:
			h.driver.Stop()
			return true, nil
		case pressed&tcell.ButtonPrimary != 0 && h.mode == systems.ModeFullscreen:
			h.driver.Stop()
			return true, nil
		case pressed&tcell.ButtonMiddle != 0:
			return false, h.restart()
		}
	}
	return false, nil
}

func (h *TerminalHost) restart() error {
	h.restarts++
	return h.driver.Restart()
}
