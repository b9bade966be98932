package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns the step interval after the progress made since the
// initial level. At the initial level it equals base; at max difficulty the
// worm moves (1 + speed_multiplier) times faster, never below min_interval_ms.
func (d *DifficultyManager) Interval(base time.Duration, score int, ticks int) time.Duration {
	if !d.IsEnabled() {
		return base
	}
	gained := d.Level(score, ticks) - d.initialLevel
	speed := 1.0 + gained*d.cfg.Scaling.SpeedMultiplier
	if speed <= 1.0 {
		return base
	}
	result := time.Duration(float64(base) / speed)

	floor := time.Duration(d.cfg.Scaling.MinIntervalMS) * time.Millisecond
	if floor > base {
		floor = base
	}
	return max(result, floor)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
