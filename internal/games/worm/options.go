package worm

import (
	"math/rand"

	"github.com/vovakirdan/tui-worm/internal/config"
	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
)

// Mode selects the rule set a game instance runs with.
type Mode string

const (
	ModeClassic Mode = "worm"         // Device behaviour: food is never eaten
	ModeFeeding Mode = "worm_feeding" // Eating grows the worm and scores
)

// Package-level settings, set once by the CLI before any game starts.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the YAML file consulted before the default locations.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// LoadConfig resolves the configuration for mode: file lookup, difficulty
// preset, then the mode's rule overrides.
func LoadConfig(mode Mode) (config.WormConfig, error) {
	cfg, err := config.LoadWorm(configPath)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(difficultyPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyWormPreset(&cfg, preset)
	if mode == ModeFeeding {
		cfg.Rules.EatFood = true
	}
	return cfg, nil
}

// OptionsFromConfig converts a loaded configuration into simulator options.
func OptionsFromConfig(cfg config.WormConfig) wormcore.Options {
	return wormcore.Options{
		Rows:         cfg.Grid.Rows,
		Cols:         cfg.Grid.Cols,
		StepInterval: cfg.Pace.StepInterval(),
		FoodPoints:   cfg.Scoring.FoodPoints,
		Rules: wormcore.Rules{
			EatFood:        cfg.Rules.EatFood,
			FoodAvoidsWorm: cfg.Rules.FoodAvoidsWorm,
			ResetDirection: cfg.Rules.ResetDirectionOnRestart,
		},
	}
}

// NewSimulator builds a simulator for cfg whose food placement is driven by seed.
func NewSimulator(cfg config.WormConfig, seed int64) (*wormcore.Simulator, error) {
	return wormcore.New(OptionsFromConfig(cfg), rand.New(rand.NewSource(seed)))
}
