package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/orbs/config"
	"github.com/pthm-cable/orbs/game"
	"github.com/pthm-cable/orbs/systems"
	"github.com/pthm-cable/orbs/telemetry"
)

// Targets are the motion characteristics the search aims for.
type Targets struct {
	BounceRate float64 // bounces per orb per second
	SpeedMean  float64 // mean |velocity| in units per frame
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	mode        systems.Mode
	targets     Targets
	statsWindow float64

	mu         sync.Mutex
	lastResult runSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, mode systems.Mode, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		mode:        mode,
		targets:     targets,
		statsWindow: 5.0,
	}
}

// runSummary averages the valid windows of one or more runs.
type runSummary struct {
	BounceRate float64
	SpeedMean  float64
	Windows    int
}

// LastSummary returns the averaged measurements from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// Skip the first windows while orbs are still on their first fall.
const warmupWindows = 2

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runSummary, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = summarize(fe.runSimulation(x, s))
		}(i, seed)
	}
	wg.Wait()

	var total runSummary
	var fitness float64
	for _, r := range results {
		fitness += fe.computeFitness(r)
		total.BounceRate += r.BounceRate
		total.SpeedMean += r.SpeedMean
		total.Windows += r.Windows
	}
	n := float64(len(results))
	total.BounceRate /= n
	total.SpeedMean /= n

	fe.mu.Lock()
	fe.lastResult = total
	fe.mu.Unlock()

	return fitness / n
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	var windows []telemetry.WindowStats
	session, err := game.NewSession(&cfg, game.Options{
		Seed:           seed,
		Mode:           fe.mode,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	}, nil)
	if err != nil {
		return nil
	}
	defer session.Close()

	d := session.Driver
	d.SetFrameDelay(0)
	if err := d.Start(float64(cfg.Screen.Width), float64(cfg.Screen.Height), fe.mode); err != nil {
		return nil
	}
	for d.Running() && d.Tick() < fe.maxTicks {
		if err := d.Frame(); err != nil {
			break
		}
	}
	return windows
}

// summarize averages bounce rate and speed over the windows past warmup.
func summarize(windows []telemetry.WindowStats) runSummary {
	var s runSummary
	if len(windows) <= warmupWindows {
		return s
	}
	for _, w := range windows[warmupWindows:] {
		dur := w.SimTimeSec
		if w.WindowEndTick > 0 {
			dur = w.SimTimeSec * float64(w.WindowEndTick-w.WindowStartTick) / float64(w.WindowEndTick)
		}
		if w.Orbs == 0 || dur <= 0 {
			continue
		}
		s.BounceRate += float64(w.BouncesDown+w.BouncesUp) / float64(w.Orbs) / dur
		s.SpeedMean += w.SpeedMean
		s.Windows++
	}
	if s.Windows > 0 {
		s.BounceRate /= float64(s.Windows)
		s.SpeedMean /= float64(s.Windows)
	}
	return s
}

// Penalty for a run with no usable windows.
const missPenalty = 100.0

// computeFitness is the squared log distance from the targets.
func (fe *FitnessEvaluator) computeFitness(r runSummary) float64 {
	if r.Windows == 0 {
		return missPenalty
	}
	return logErr(r.BounceRate, fe.targets.BounceRate) + logErr(r.SpeedMean, fe.targets.SpeedMean)
}

func logErr(got, want float64) float64 {
	const eps = 1e-6
	e := math.Log((got + eps) / (want + eps))
	return e * e
}
