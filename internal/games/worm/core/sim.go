package core

import (
	"errors"
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/tui-worm/internal/core"
)

// Grid and pacing defaults.
const (
	DefaultRows         = 9
	DefaultCols         = 10
	DefaultStepInterval = 200 * time.Millisecond
	DefaultFoodPoints   = 50
	InitialLength       = 3

	// MinRows keeps the three starting segments inside the grid:
	// the head spawns at Rows/2+1 and the tail two rows below it.
	MinRows = 7
	MinCols = 3
)

// ErrGridTooSmall is returned by New when the grid cannot hold the starting worm.
var ErrGridTooSmall = errors.New("worm: grid too small")

// Rand is the random source used for food placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Rules toggles the behaviours that ship disabled on the device.
type Rules struct {
	EatFood        bool // Head on food grows the worm, scores and relocates food
	FoodAvoidsWorm bool // PlaceFood never picks an occupied cell
	ResetDirection bool // Restart turns the head back to Up
}

// Options configures a Simulator.
type Options struct {
	Rows         int
	Cols         int
	StepInterval time.Duration
	FoodPoints   int
	Rules        Rules
}

// DefaultOptions returns the device configuration: 9x10 grid, 200ms steps,
// food consumption off.
func DefaultOptions() Options {
	return Options{
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		StepInterval: DefaultStepInterval,
		FoodPoints:   DefaultFoodPoints,
	}
}

// Validate checks that the options describe a playable grid.
func (o Options) Validate() error {
	if o.Rows < MinRows || o.Cols < MinCols {
		return fmt.Errorf("%w: %dx%d (need at least %dx%d rows x cols)",
			ErrGridTooSmall, o.Rows, o.Cols, MinRows, MinCols)
	}
	if o.StepInterval <= 0 {
		return fmt.Errorf("worm: step interval must be positive, got %s", o.StepInterval)
	}
	if o.FoodPoints < 0 {
		return fmt.Errorf("worm: food points must not be negative, got %d", o.FoodPoints)
	}
	return nil
}

// Simulator owns the worm, the food cell and the score.
// It is not safe for concurrent use; the host serializes Tick and SetDirection.
type Simulator struct {
	rows         int
	cols         int
	stepInterval time.Duration
	foodPoints   int
	rules        Rules
	rng          Rand

	worm    []Segment // Head at index 0
	food    Cell
	score   int
	elapsed time.Duration // Time accumulated since the last move

	moves    int
	restarts int
	eaten    int
	maxLen   int

	shown []CellKind // Cell kinds last handed to the renderer, row-major
}

// New validates opts and returns an initialized simulator.
func New(opts Options, rng Rand) (*Simulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("worm: nil random source")
	}
	s := &Simulator{
		rows:         opts.Rows,
		cols:         opts.Cols,
		stepInterval: opts.StepInterval,
		foodPoints:   opts.FoodPoints,
		rules:        opts.Rules,
		rng:          rng,
	}
	s.Initialize()
	return s, nil
}

// Initialize resets the score, places food and spawns a three-segment worm
// stacked in the centre column, all facing Up. The renderer's view is reset
// to an all-background grid so the next Changes reports every occupied cell.
func (s *Simulator) Initialize() {
	s.score = 0
	s.elapsed = 0
	s.moves = 0
	s.restarts = 0
	s.eaten = 0
	s.worm = s.worm[:0]
	s.shown = make([]CellKind, s.rows*s.cols)

	s.PlaceFood()
	s.GrowWorm(0, 0)
	s.GrowWorm(1, 0)
	s.GrowWorm(1, 0)
	s.maxLen = len(s.worm)
}

// startCell is where the head spawns and respawns.
func (s *Simulator) startCell() Cell {
	return At(s.rows/2+1, s.cols/2)
}

// SetDirection records a swipe. Every trailing segment takes the heading the
// segment ahead of it had before this call; the head takes d unless d is the
// exact reverse of its current heading. Nothing moves until the next Tick.
func (s *Simulator) SetDirection(d Dir) {
	if len(s.worm) == 0 {
		return
	}
	prev := s.worm[0].Dir
	for i := 1; i < len(s.worm); i++ {
		cur := s.worm[i].Dir
		s.worm[i].Dir = prev
		prev = cur
	}
	if d != s.worm[0].Dir.Opposite() {
		s.worm[0].Dir = d
	}
}

// Tick advances the simulation clock by elapsed. A head touching the border
// restarts the worm; otherwise the worm moves once more than StepInterval
// has accumulated since the previous move.
func (s *Simulator) Tick(elapsed time.Duration) Event {
	s.elapsed += elapsed

	if s.onBorder(s.worm[0].Cell) {
		s.Restart()
		return EventRestarted
	}

	if s.elapsed <= s.stepInterval {
		return EventIdle
	}
	s.elapsed = 0
	if s.MoveWorm() {
		return EventAte
	}
	return EventMoved
}

// onBorder reports whether c lies on or beyond the outer ring of the grid.
func (s *Simulator) onBorder(c Cell) bool {
	return c.Row <= 0 || c.Row >= s.rows-1 || c.Col <= 0 || c.Col >= s.cols-1
}

// MoveWorm clamps every segment into [1, Rows-1] x [1, Cols-1] and then
// advances it one cell along its own heading. Returns true if the head
// consumed food (only possible with Rules.EatFood).
func (s *Simulator) MoveWorm() bool {
	for i := range s.worm {
		seg := &s.worm[i]
		seg.Row = platformcore.Clamp(seg.Row, 1, s.rows-1)
		seg.Col = platformcore.Clamp(seg.Col, 1, s.cols-1)
		seg.Cell = seg.Step(seg.Dir)
	}
	s.moves++

	if !s.rules.EatFood || s.worm[0].Cell != s.food {
		return false
	}

	// New tail goes behind the current tail, against its heading.
	dr, dc := s.worm[len(s.worm)-1].Dir.Opposite().Delta()
	s.GrowWorm(dr, dc)
	s.PlaceFood()
	s.score += s.foodPoints
	s.eaten++
	return true
}

// Restart keeps only the head and moves it back to the start cell.
// Food stays where it is.
func (s *Simulator) Restart() {
	s.worm = s.worm[:1]
	s.worm[0].Cell = s.startCell()
	if s.rules.ResetDirection {
		s.worm[0].Dir = DirUp
	}
	s.restarts++
}

// GrowWorm appends a tail segment at the current tail offset by
// (rowOffset, colOffset), inheriting the tail's heading. On an empty worm it
// places the head at the start cell facing Up.
func (s *Simulator) GrowWorm(rowOffset, colOffset int) {
	if len(s.worm) == 0 {
		s.worm = append(s.worm, Segment{Cell: s.startCell(), Dir: DirUp})
		return
	}
	tail := s.worm[len(s.worm)-1]
	s.worm = append(s.worm, Segment{
		Cell: tail.Add(rowOffset, colOffset),
		Dir:  tail.Dir,
	})
	if len(s.worm) > s.maxLen {
		s.maxLen = len(s.worm)
	}
}

// PlaceFood picks a new food cell uniformly over the whole grid.
// With Rules.FoodAvoidsWorm, occupied cells are excluded.
func (s *Simulator) PlaceFood() {
	if !s.rules.FoodAvoidsWorm {
		s.food = At(s.rng.Intn(s.rows), s.rng.Intn(s.cols))
		return
	}

	free := make([]Cell, 0, s.rows*s.cols)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			if !s.occupied(At(r, c)) {
				free = append(free, At(r, c))
			}
		}
	}
	if len(free) == 0 {
		return // Grid full, food stays put
	}
	s.food = free[s.rng.Intn(len(free))]
}

// occupied reports whether any segment sits on c.
func (s *Simulator) occupied(c Cell) bool {
	for _, seg := range s.worm {
		if seg.Cell == c {
			return true
		}
	}
	return false
}

// SetStepInterval changes the movement throttle. Non-positive values are ignored.
func (s *Simulator) SetStepInterval(d time.Duration) {
	if d > 0 {
		s.stepInterval = d
	}
}

// StepInterval returns the current movement throttle.
func (s *Simulator) StepInterval() time.Duration { return s.stepInterval }

// Rows returns the grid height.
func (s *Simulator) Rows() int { return s.rows }

// Cols returns the grid width.
func (s *Simulator) Cols() int { return s.cols }

// Rules returns the active rule switches.
func (s *Simulator) Rules() Rules { return s.rules }

// Len returns the number of worm segments.
func (s *Simulator) Len() int { return len(s.worm) }

// Head returns the leading segment.
func (s *Simulator) Head() Segment { return s.worm[0] }

// Segments returns a copy of the worm, head first.
func (s *Simulator) Segments() []Segment {
	out := make([]Segment, len(s.worm))
	copy(out, s.worm)
	return out
}

// Food returns the food cell.
func (s *Simulator) Food() Cell { return s.food }

// Score returns the current score.
func (s *Simulator) Score() int { return s.score }

// Stats summarises a run so far.
type Stats struct {
	Moves     int
	Restarts  int
	FoodEaten int
	MaxLength int
}

// Stats returns counters accumulated since Initialize.
func (s *Simulator) Stats() Stats {
	return Stats{
		Moves:     s.moves,
		Restarts:  s.restarts,
		FoodEaten: s.eaten,
		MaxLength: s.maxLen,
	}
}
