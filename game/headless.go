package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/orbs/config"
)

// RunHeadless drives the field without a display at the configured frame
// rate. The ticker paces frames, so the per-frame delay is skipped. It
// returns the number of frames run.
func RunHeadless(ctx context.Context, cfg *config.Config, opts Options, maxTicks int64) (int64, error) {
	session, err := NewSession(cfg, opts, nil)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	d := session.Driver
	d.SetFrameDelay(0)
	if err := d.Start(float64(cfg.Screen.Width), float64(cfg.Screen.Height), opts.Mode); err != nil {
		return 0, fmt.Errorf("starting field: %w", err)
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"mode", opts.Mode.String(),
		"max_ticks", maxTicks,
		"frame_interval", cfg.Derived.FrameInterval,
	)

	ticker := time.NewTicker(cfg.Derived.FrameInterval)
	defer ticker.Stop()

	err = d.Run(ctx, ticker.C, maxTicks)
	slog.Info("headless simulation finished", "tick", d.Tick(), "running", d.Running())
	return d.Tick(), err
}
