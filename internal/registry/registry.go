// Package registry maps game IDs to factories.
// Game packages register themselves in init(), so the CLI and the TUI can
// list and start them without importing each one by name.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-worm/internal/core"
)

// Game is what the platform drives. Implementations hold pure logic with no
// Bubble Tea dependency; the platform maps keys, paces ticks and paints.
type Game interface {
	// ID returns a unique identifier (e.g. "worm"), used by the CLI and
	// as the score key in storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a fresh run. Called once before the first Step and again
	// on every manual restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score, pause and game-over flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on duplicate IDs, which can
// only happen through a programming error in an init() function.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Reporter is implemented by games that can summarise the current run.
// The platform persists the summary when a run ends.
type Reporter interface {
	Summary() core.RunSummary
}

// Resizer is implemented by games that can adapt to a new screen size
// without starting over.
type Resizer interface {
	Resize(width, height int)
}
