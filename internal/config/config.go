// Package config loads the worm configuration from YAML and manages
// difficulty progression.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Smallest grid that still holds the three starting segments.
const (
	MinGridRows = 7
	MinGridCols = 3
)

// WormConfig contains all configuration for the worm game.
type WormConfig struct {
	Grid       WormGrid         `yaml:"grid"`
	Pace       WormPace         `yaml:"pace"`
	Scoring    WormScoring      `yaml:"scoring"`
	Rules      WormRules        `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WormGrid defines the board size in cells.
type WormGrid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// WormPace defines how often the worm moves.
type WormPace struct {
	StepIntervalMS int `yaml:"step_interval_ms"`
}

// StepInterval returns the move throttle as a duration.
func (p WormPace) StepInterval() time.Duration {
	return time.Duration(p.StepIntervalMS) * time.Millisecond
}

// WormScoring defines points awarded per food.
type WormScoring struct {
	FoodPoints int `yaml:"food_points"`
}

// WormRules switches optional behaviours on. All are off on the device.
type WormRules struct {
	EatFood                 bool `yaml:"eat_food"`
	FoodAvoidsWorm          bool `yaml:"food_avoids_worm"`
	ResetDirectionOnRestart bool `yaml:"reset_direction_on_restart"`
}

// Validate reports every problem that would make the config unplayable.
func (c WormConfig) Validate() error {
	var errs []error
	if c.Grid.Rows < MinGridRows {
		errs = append(errs, fmt.Errorf("grid.rows must be at least %d, got %d", MinGridRows, c.Grid.Rows))
	}
	if c.Grid.Cols < MinGridCols {
		errs = append(errs, fmt.Errorf("grid.cols must be at least %d, got %d", MinGridCols, c.Grid.Cols))
	}
	if c.Pace.StepIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("pace.step_interval_ms must be positive, got %d", c.Pace.StepIntervalMS))
	}
	if c.Scoring.FoodPoints < 0 {
		errs = append(errs, fmt.Errorf("scoring.food_points must not be negative, got %d", c.Scoring.FoodPoints))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid worm config: %w", err)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty, 1.0 = twice as fast
	MinIntervalMS   int     `yaml:"min_interval_ms"`  // Floor for the step interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IntervalScaleForPreset returns the factor applied to the base step interval.
func IntervalScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.6
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
