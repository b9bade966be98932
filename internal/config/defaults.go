package config

import (
	_ "embed"
)

//go:embed defaults/worm.yaml
var defaultWormYAML []byte

// DefaultWormConfig returns the device configuration:
// a 9x10 grid stepping every 200ms with food consumption off.
func DefaultWormConfig() WormConfig {
	return WormConfig{
		Grid: WormGrid{
			Rows: 9,
			Cols: 10,
		},
		Pace: WormPace{
			StepIntervalMS: 200,
		},
		Scoring: WormScoring{
			FoodPoints: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				MinIntervalMS:   60,
			},
		},
	}
}
