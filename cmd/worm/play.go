package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-worm/internal/core"
	"github.com/vovakirdan/tui-worm/internal/games/worm"
	"github.com/vovakirdan/tui-worm/internal/platform/tui"
	"github.com/vovakirdan/tui-worm/internal/registry"
	"github.com/vovakirdan/tui-worm/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play the worm",
	Long: `Start the worm in the given mode (default: worm).

Controls:
  Arrows/WASD/hjkl - Turn the head
  P/Space          - Pause
  R                - Restart
  Esc/B            - Back
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Difficulty options:
  easy   - Slower steps, speeds up as the score grows
  normal - Default pace, speeds up as the score grows
  hard   - Faster steps, speeds up as the score grows
  fixed  - No progression

Examples:
  worm play
  worm play worm_feeding
  worm play --difficulty hard
  worm play --config ./my-worm.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(worm.ModeClassic)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'worm list' to see available modes.")
		os.Exit(1)
	}

	if err := applyGameFlags(worm.Mode(gameID)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger("worm")

	// Storage is optional; the game still works without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	runErr := tui.Run(game, store, logger, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
