package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/game"
	"github.com/pthm-cable/orbs/instance"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Render into the terminal instead of a window")
	fullscreen := flag.Bool("fullscreen", false, "Run in screensaver mode")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file (empty = stdout, discarded in terminal mode)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON for structured logging)
	logOut, closeLog := logWriter(*logFile, *terminal)
	defer closeLog()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	graphical := !*headless && !*terminal
	defer func() { game.HandleCrash(recover(), graphical) }()

	// Screensaver arguments follow the flags, e.g. "orbs.scr /s"
	mode, launch := game.DetectMode(os.Args[0], flag.Args(), *fullscreen)
	if launch != game.LaunchRun {
		slog.Info("nothing to show", "launch", launch.String())
		return
	}

	if err := config.Init(*configPath); err != nil {
		game.ReportCrash(err, graphical)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if cfg.Instance.Enabled {
		lock, err := instance.Acquire(cfg.Instance.Address)
		if errors.Is(err, instance.ErrAlreadyRunning) {
			slog.Info("already running, exiting", "addr", cfg.Instance.Address)
			return
		}
		if err != nil {
			slog.Warn("instance guard unavailable", "error", err)
		}
		defer lock.Release()
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Mode:           mode,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *headless:
		_, err = game.RunHeadless(ctx, cfg, opts, *maxTicks)
	case *terminal:
		err = runTerminal(ctx, cfg, opts, *maxTicks)
	default:
		err = runWindow(ctx, cfg, opts, *maxTicks)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		game.ReportCrash(err, graphical)
		os.Exit(1)
	}
}

// logWriter picks the log destination. Terminal mode owns stdout.
func logWriter(path string, terminal bool) (io.Writer, func()) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return f, func() { f.Close() }
		}
	}
	if terminal {
		return io.Discard, func() {}
	}
	return os.Stdout, func() {}
}

// runWindow runs the raylib host until the window closes or the user quits.
func runWindow(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int64) error {
	game.OpenWindow(cfg, opts.Mode)
	defer rl.CloseWindow()

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting window", "seed", opts.Seed, "mode", opts.Mode.String())

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		if g.ShouldClose() {
			break
		}
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
	return g.Err()
}

// runTerminal runs the tcell host on the controlling terminal.
func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host, err := game.NewTerminalHost(screen, cfg, opts)
	if err != nil {
		return err
	}
	defer host.Close()

	ticker := time.NewTicker(cfg.Derived.FrameInterval)
	defer ticker.Stop()

	return host.Run(ctx, ticker.C, maxTicks)
}
