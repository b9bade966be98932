package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-worm/internal/games/worm"
	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
)

var (
	flagSimMode  string
	flagSimTicks int
	flagSimTurns string
	flagSimFrame bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulator headless",
	Long: `Run the worm without a terminal UI. Every render instruction the
simulator produces is written to stdout as one JSON object per line,
followed by a summary on stderr.

Each tick advances the clock by 1/fps seconds. Turns are applied before
the tick they name. Unlike play, --seed 0 is not replaced by a time-based
seed, so repeated runs print the same output.

Output lines:
  {"tick":0,"row":0,"col":3,"kind":"food"}
  {"tick":13,"event":"moved","score":0,"length":3}

Examples:
  worm sim --seed 7
  worm sim --ticks 600 --turns "20:left,90:down,150:right"
  worm sim --mode worm_feeding --frame`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", string(worm.ModeClassic), "Game mode: worm, worm_feeding")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 300, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagSimTurns, "turns", "", `Turn schedule, e.g. "20:left,40:down"`)
	simCmd.Flags().BoolVar(&flagSimFrame, "frame", false, "Print the final frame as text after the run")
}

// turn is a direction change scheduled before a given tick.
type turn struct {
	Tick int
	Dir  wormcore.Dir
}

// parseTurns reads a "tick:dir,tick:dir" schedule, sorted by tick.
// Turns sharing a tick keep their written order.
func parseTurns(s string) ([]turn, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var turns []turn
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		tickStr, dirStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("sim: turn %q: expected tick:direction", part)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || tick < 1 {
			return nil, fmt.Errorf("sim: turn %q: tick must be a positive integer", part)
		}
		dir, ok := wormcore.ParseDir(strings.ToLower(strings.TrimSpace(dirStr)))
		if !ok {
			return nil, fmt.Errorf("sim: turn %q: unknown direction %q", part, dirStr)
		}
		turns = append(turns, turn{Tick: tick, Dir: dir})
	}

	slices.SortStableFunc(turns, func(a, b turn) int { return a.Tick - b.Tick })
	return turns, nil
}

// simRecord is one output line: either a cell repaint or a tick event.
type simRecord struct {
	Tick   int    `json:"tick"`
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Event  string `json:"event,omitempty"`
	Score  *int   `json:"score,omitempty"`
	Length *int   `json:"length,omitempty"`
}

func cellRecord(tick int, in wormcore.Instruction) simRecord {
	row, col := in.Cell.Row, in.Cell.Col
	return simRecord{Tick: tick, Row: &row, Col: &col, Kind: in.Kind.String()}
}

func eventRecord(tick int, ev wormcore.Event, sim *wormcore.Simulator) simRecord {
	score, length := sim.Score(), sim.Len()
	return simRecord{Tick: tick, Event: ev.String(), Score: &score, Length: &length}
}

// simulate drives sim for ticks steps of dt and streams every instruction and
// non-idle event to w. Tick 0 carries the initial paint.
func simulate(w io.Writer, sim *wormcore.Simulator, ticks int, dt time.Duration, turns []turn) error {
	enc := json.NewEncoder(w)
	emit := func(tick int) error {
		for in := range sim.Changes() {
			if err := enc.Encode(cellRecord(tick, in)); err != nil {
				return fmt.Errorf("sim: write instruction: %w", err)
			}
		}
		return nil
	}

	if err := emit(0); err != nil {
		return err
	}

	next := 0
	for tick := 1; tick <= ticks; tick++ {
		for next < len(turns) && turns[next].Tick <= tick {
			sim.SetDirection(turns[next].Dir)
			next++
		}

		ev := sim.Tick(dt)
		if ev != wormcore.EventIdle {
			if err := enc.Encode(eventRecord(tick, ev, sim)); err != nil {
				return fmt.Errorf("sim: write event: %w", err)
			}
		}
		if err := emit(tick); err != nil {
			return err
		}
	}
	return nil
}

func runSim(_ *cobra.Command, _ []string) error {
	logger := newLogger("worm-sim")

	if flagFPS <= 0 {
		return fmt.Errorf("sim: --fps must be positive, got %d", flagFPS)
	}
	if flagSimTicks < 0 {
		return fmt.Errorf("sim: --ticks must not be negative, got %d", flagSimTicks)
	}

	mode := worm.Mode(flagSimMode)
	if mode != worm.ModeClassic && mode != worm.ModeFeeding {
		return fmt.Errorf("sim: unknown mode %q", flagSimMode)
	}

	turns, err := parseTurns(flagSimTurns)
	if err != nil {
		return err
	}

	worm.SetConfigPath(flagConfig)
	worm.SetDifficultyPreset(flagDifficulty)
	cfg, err := worm.LoadConfig(mode)
	if err != nil {
		return err
	}

	// Unlike play, a zero seed stays zero so runs are reproducible by default.
	sim, err := worm.NewSimulator(cfg, flagSeed)
	if err != nil {
		return err
	}

	dt := time.Second / time.Duration(flagFPS)
	logger.Debug("simulating",
		"mode", mode,
		"grid", fmt.Sprintf("%dx%d", sim.Rows(), sim.Cols()),
		"step", sim.StepInterval(),
		"dt", dt,
		"seed", flagSeed,
	)

	if err := simulate(os.Stdout, sim, flagSimTicks, dt, turns); err != nil {
		return err
	}

	if flagSimFrame {
		fmt.Fprintln(os.Stderr, sim.Frame().String())
	}

	stats := sim.Stats()
	head := sim.Head()
	logger.Info("run finished",
		"ticks", flagSimTicks,
		"moves", stats.Moves,
		"restarts", stats.Restarts,
		"eaten", stats.FoodEaten,
		"max_length", stats.MaxLength,
		"score", sim.Score(),
		"head", head.Cell,
		"dir", head.Dir,
	)
	return nil
}
