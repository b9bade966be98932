package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWorm loads the worm configuration.
// Search order: customPath -> ~/.arcade/configs/worm.yaml -> ./configs/worm.yaml -> embedded default
//
// Fields missing from a file keep their default values. A custom path that
// cannot be read or parsed is an error; the other locations are skipped
// silently when absent or broken.
func LoadWorm(customPath string) (WormConfig, error) {
	cfg := DefaultWormConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath("worm.yaml"),
		filepath.Join("configs", "worm.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultWormConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			continue
		}
		return fileCfg, fileCfg.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultWormYAML, &cfg); err != nil {
		return DefaultWormConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyWormPreset modifies the config based on a difficulty preset.
// Easy and hard also slow down or speed up the base step interval.
func ApplyWormPreset(cfg *WormConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	scaled := float64(cfg.Pace.StepIntervalMS) * IntervalScaleForPreset(preset)
	cfg.Pace.StepIntervalMS = max(1, int(math.Round(scaled)))
}
