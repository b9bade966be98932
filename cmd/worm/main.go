// worm is a terminal host for the worm grid simulator.
//
// Usage:
//
//	worm list              - List available game modes
//	worm play [mode]       - Play a mode (default: worm)
//	worm menu              - Pick a mode interactively
//	worm sim               - Run the simulator headless and print render instructions
//	worm serve             - Start SSH server for remote play
//	worm scores [mode]     - Show high scores and run statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for food placement (0: time-based, except in sim)
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom worm YAML config
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-worm/internal/games/worm"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "worm",
	Short: "Worm - a grid movement simulator in your terminal",
	Long: `Worm drives a segmented worm around a small grid. Touching the border
sends the worm back to the centre as a single segment.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  sim      - Headless deterministic run
  serve    - Start SSH server for remote play
  scores   - View high scores and run history

Examples:
  worm play
  worm play worm_feeding --difficulty hard
  worm sim --seed 7 --ticks 300 --turns "20:left,80:down"
  worm serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for food placement (play/menu: 0 = random based on time; sim: 0 is used as is)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom worm config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger returns a stderr logger honouring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// applyGameFlags hands --config and --difficulty to the worm package and
// checks that they resolve, so bad input fails before the TUI starts.
func applyGameFlags(mode worm.Mode) error {
	worm.SetConfigPath(flagConfig)
	worm.SetDifficultyPreset(flagDifficulty)
	if _, err := worm.LoadConfig(mode); err != nil {
		return err
	}
	return nil
}

// seed returns --seed, or the current time when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
