// Package worm adapts the grid movement simulator to the arcade platform.
// It converts platform ticks into elapsed time, maps swipe actions to
// headings and paints the board from the simulator's change stream.
package worm

import (
	"time"

	"github.com/vovakirdan/tui-worm/internal/config"
	"github.com/vovakirdan/tui-worm/internal/core"
	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
	"github.com/vovakirdan/tui-worm/internal/registry"
)

// Game implements the Worm game.
type Game struct {
	mode Mode
	cfg  config.WormConfig
	sim  *wormcore.Simulator

	difficulty   *config.DifficultyManager
	baseInterval time.Duration
	tickDur      time.Duration // Simulated time per platform tick

	seed   int64
	tick   uint64 // All platform ticks, pauses included
	played int    // Ticks handed to the simulator

	// board is the renderer's retained view, fed only from sim.Changes.
	board []wormcore.CellKind

	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	loadErr   error
	lastEvent wormcore.Event
}

// New creates a Worm game with the device rules.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewFeeding creates a Worm game where eating food grows the worm.
func NewFeeding() *Game {
	return &Game{mode: ModeFeeding}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeFeeding), func() registry.Game {
		return NewFeeding()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeFeeding {
		return "Worm (Feeding)"
	}
	return "Worm"
}

// Reset loads the configuration and starts a fresh simulator.
// A broken config file falls back to the defaults; the HUD says so.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.tick = 0
	g.played = 0
	g.paused = false
	g.lastEvent = wormcore.EventIdle

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	wc, err := LoadConfig(g.mode)
	g.loadErr = err
	if err != nil {
		wc = g.defaultConfig()
	}

	sim, err := NewSimulator(wc, cfg.Seed)
	if err != nil {
		g.loadErr = err
		wc = g.defaultConfig()
		sim, _ = NewSimulator(wc, cfg.Seed)
	}
	g.useConfig(wc)
	g.sim = sim
	g.board = make([]wormcore.CellKind, sim.Rows()*sim.Cols())

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// defaultConfig returns the built-in settings for the game's mode.
func (g *Game) defaultConfig() config.WormConfig {
	wc := config.DefaultWormConfig()
	wc.Rules.EatFood = g.mode == ModeFeeding
	return wc
}

// useConfig records the settings the simulator runs with and derives the
// pacing state from them.
func (g *Game) useConfig(wc config.WormConfig) {
	g.cfg = wc
	g.baseInterval = wc.Pace.StepInterval()
	g.difficulty = config.NewDifficultyManager(wc.Difficulty)
}

// Resize adapts the layout to a new screen without restarting the run.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	w, h := g.boardSize()
	g.tooSmall = width < w || height < hudHeight+h
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Every swipe is delivered, even several within one tick.
	for _, a := range in.Directions() {
		if d, ok := dirForAction(a); ok {
			g.sim.SetDirection(d)
		}
	}

	g.played++
	ev := g.sim.Tick(g.tickDur)
	if ev != wormcore.EventIdle {
		g.lastEvent = ev
	}
	if ev == wormcore.EventMoved || ev == wormcore.EventAte {
		g.sim.SetStepInterval(g.difficulty.Interval(g.baseInterval, g.sim.Score(), g.played))
	}

	return core.StepResult{State: g.State()}
}

// restart starts a new run on the same grid and random stream.
func (g *Game) restart() {
	g.sim.Initialize()
	g.sim.SetStepInterval(g.baseInterval)
	clear(g.board)
	g.played = 0
	g.paused = false
	g.lastEvent = wormcore.EventIdle
}

// dirForAction maps a swipe action to a heading.
func dirForAction(a core.Action) (wormcore.Dir, bool) {
	switch a {
	case core.ActionUp:
		return wormcore.DirUp, true
	case core.ActionRight:
		return wormcore.DirRight, true
	case core.ActionDown:
		return wormcore.DirDown, true
	case core.ActionLeft:
		return wormcore.DirLeft, true
	default:
		return 0, false
	}
}

// State returns the current game state. The worm never dies, so GameOver
// stays false; wall hits restart it in place.
func (g *Game) State() core.GameState {
	score := 0
	if g.sim != nil {
		score = g.sim.Score()
	}
	return core.GameState{
		Score:  score,
		Paused: g.paused,
	}
}

// Summary reports the current run for persistence.
func (g *Game) Summary() core.RunSummary {
	st := g.sim.Stats()
	return core.RunSummary{
		Seed:      g.seed,
		Rows:      g.sim.Rows(),
		Cols:      g.sim.Cols(),
		Ticks:     g.played,
		Moves:     st.Moves,
		Restarts:  st.Restarts,
		FoodEaten: st.FoodEaten,
		MaxLength: st.MaxLength,
		Score:     g.sim.Score(),
	}
}

// ConfigError returns the error that forced default settings, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

var (
	_ registry.Game     = (*Game)(nil)
	_ registry.Reporter = (*Game)(nil)
	_ registry.Resizer  = (*Game)(nil)
)
