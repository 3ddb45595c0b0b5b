package systems

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the particle field.
var (
	ErrInvalidConfig = errors.New("invalid simulation config")
	ErrCorruptState  = errors.New("corrupt particle state")
	ErrIndexRange    = errors.New("particle index out of range")
)

// Rand is the random source threaded through reset and tick.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Mode selects the population and size ranges used at reset.
type Mode uint8

const (
	ModeNormal     Mode = iota // windowed
	ModeFullscreen             // fullscreen or screensaver
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ModeConfig holds the population ranges for one display mode.
// Count is drawn from [MinCount, MaxCount], radius from [MinRadius, MaxRadius).
type ModeConfig struct {
	MinCount, MaxCount   int
	MinRadius, MaxRadius int
}

// SimulationConfig holds the spawn and motion parameters for a session.
type SimulationConfig struct {
	Normal     ModeConfig
	Fullscreen ModeConfig

	MinStartSpeed, MaxStartSpeed int // start speed drawn from [Min, Max), scaled by SpeedRatio
	SpeedRatio                   float64
	DownCoefficient              float64 // spread of the per-frame falling acceleration
	UpCoefficient                float64 // spread of the per-frame rising acceleration

	Rainbow bool // randomize each orb's spawn gradient
}

// DefaultSimulationConfig returns the stock screensaver parameters.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Normal:          ModeConfig{MinCount: 50, MaxCount: 100, MinRadius: 20, MaxRadius: 40},
		Fullscreen:      ModeConfig{MinCount: 75, MaxCount: 125, MinRadius: 40, MaxRadius: 80},
		MinStartSpeed:   1,
		MaxStartSpeed:   10,
		SpeedRatio:      0.1,
		DownCoefficient: 0.1,
		UpCoefficient:   0.01,
	}
}

// ForMode returns the ranges used for the given display mode.
func (c SimulationConfig) ForMode(m Mode) ModeConfig {
	if m == ModeFullscreen {
		return c.Fullscreen
	}
	return c.Normal
}

// Validate reports the first inconsistent parameter.
func (c SimulationConfig) Validate() error {
	for _, m := range []Mode{ModeNormal, ModeFullscreen} {
		mc := c.ForMode(m)
		if mc.MinCount < 0 || mc.MinCount > mc.MaxCount {
			return fmt.Errorf("%w: %s count bounds [%d, %d]", ErrInvalidConfig, m, mc.MinCount, mc.MaxCount)
		}
		if mc.MinRadius < 0 || mc.MinRadius > mc.MaxRadius {
			return fmt.Errorf("%w: %s radius bounds [%d, %d]", ErrInvalidConfig, m, mc.MinRadius, mc.MaxRadius)
		}
	}
	if c.MinStartSpeed > c.MaxStartSpeed {
		return fmt.Errorf("%w: start speed bounds [%d, %d]", ErrInvalidConfig, c.MinStartSpeed, c.MaxStartSpeed)
	}
	if !finite(c.SpeedRatio) || !finite(c.DownCoefficient) || !finite(c.UpCoefficient) {
		return fmt.Errorf("%w: non-finite motion coefficient", ErrInvalidConfig)
	}
	return nil
}

// uniformInt draws an integer from [lo, hi). An empty range yields lo.
func uniformInt(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// dampedSpeed returns the smallest of three uniform draws, skewing the
// post-bounce speed toward zero.
func dampedSpeed(rng Rand) float64 {
	return math.Min(math.Min(rng.Float64(), rng.Float64()), rng.Float64())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
