package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-worm/internal/games/worm"
	"github.com/vovakirdan/tui-worm/internal/registry"
	"github.com/vovakirdan/tui-worm/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and run statistics",
	Long: `Display the top scores and aggregate run statistics for a mode
(default: worm).

Examples:
  worm scores
  worm scores worm_feeding --limit 20
  worm scores worm_feeding --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := string(worm.ModeClassic)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'worm list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores and runs for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		if gameID == string(worm.ModeClassic) {
			fmt.Println("The classic worm never eats; try 'worm play worm_feeding'.")
		}
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run stats: %v\n", err)
		return
	}
	if stats.Runs == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Runs")
	fmt.Printf("  Played:        %d\n", stats.Runs)
	fmt.Printf("  Best:          %d\n", stats.HighScore)
	fmt.Printf("  Average:       %.1f\n", stats.AvgScore)
	fmt.Printf("  Total moves:   %d\n", stats.TotalMoves)
	fmt.Printf("  Wall restarts: %d\n", stats.TotalRestarts)
	fmt.Printf("  Longest worm:  %d\n", stats.LongestWorm)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
