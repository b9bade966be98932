package worm

import (
	"time"

	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Score        int
	Len          int
	HeadRow      int
	HeadCol      int
	Dir          wormcore.Dir
	FoodRow      int
	FoodCol      int
	StepInterval time.Duration
	Moves        int
	Restarts     int
	LastEvent    wormcore.Event
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	head := g.sim.Head()
	food := g.sim.Food()
	st := g.sim.Stats()

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        g.sim.Score(),
		Len:          g.sim.Len(),
		HeadRow:      head.Row,
		HeadCol:      head.Col,
		Dir:          head.Dir,
		FoodRow:      food.Row,
		FoodCol:      food.Col,
		StepInterval: g.sim.StepInterval(),
		Moves:        st.Moves,
		Restarts:     st.Restarts,
		LastEvent:    g.lastEvent,
		State:        state,
	}
}
