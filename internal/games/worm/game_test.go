package worm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-worm/internal/config"
	"github.com/vovakirdan/tui-worm/internal/core"
	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
	"github.com/vovakirdan/tui-worm/internal/registry"
)

// newTestGame resets g against an empty home and working directory so no
// config file on the machine leaks into the test.
func newTestGame(t *testing.T, g *Game, seed int64, w, h int) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 60, Seed: seed})
	return g
}

// steps runs n ticks; actions are delivered on the first tick only.
func steps(g *Game, n int, actions ...core.Action) {
	input := core.NewInputFrame()
	for i := 0; i < n; i++ {
		input.Clear()
		if i == 0 {
			for _, a := range actions {
				input.Set(a)
			}
		}
		g.Step(input)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"worm", "worm_feeding"} {
		if !registry.Exists(id) {
			t.Errorf("%q should be registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, New(), 12345, 80, 24)
	g2 := newTestGame(t, New(), 12345, 80, 24)

	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionLeft)
		case 40:
			input.Set(core.ActionDown)
		case 90:
			input.Set(core.ActionRight)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestMovesOncePerStepInterval(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)

	// 12 ticks at 60 FPS are just under 200ms.
	steps(g, 12)
	if s := g.Snapshot(); s.Moves != 0 || s.HeadRow != 5 {
		t.Fatalf("after 12 ticks: moves=%d head row=%d, expected no move", s.Moves, s.HeadRow)
	}

	steps(g, 1)
	s := g.Snapshot()
	if s.Moves != 1 || s.HeadRow != 4 || s.HeadCol != 5 {
		t.Errorf("after 13 ticks: moves=%d head=(%d,%d), expected one move to (4,5)", s.Moves, s.HeadRow, s.HeadCol)
	}
	if s.LastEvent != wormcore.EventMoved {
		t.Errorf("LastEvent = %v, expected moved", s.LastEvent)
	}
}

func TestWallRestartsInPlace(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)

	steps(g, 65)
	s := g.Snapshot()
	if s.HeadRow != 0 || s.Len != 3 {
		t.Fatalf("after 65 ticks: head row=%d len=%d, expected row 0 with 3 segments", s.HeadRow, s.Len)
	}

	steps(g, 1)
	s = g.Snapshot()
	if s.Restarts != 1 || s.Len != 1 {
		t.Errorf("restarts=%d len=%d, expected 1 and 1", s.Restarts, s.Len)
	}
	if s.HeadRow != 5 || s.HeadCol != 5 {
		t.Errorf("head = (%d,%d), expected (5,5)", s.HeadRow, s.HeadCol)
	}
	if s.LastEvent != wormcore.EventRestarted {
		t.Errorf("LastEvent = %v, expected restarted", s.LastEvent)
	}
	if g.State().GameOver {
		t.Error("a wall hit must not end the game")
	}
}

func TestDirectionInput(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)

	steps(g, 13, core.ActionLeft)
	s := g.Snapshot()
	if s.Dir != wormcore.DirLeft {
		t.Errorf("Dir = %v, expected Left", s.Dir)
	}
	if s.HeadRow != 5 || s.HeadCol != 4 {
		t.Errorf("head = (%d,%d), expected (5,4)", s.HeadRow, s.HeadCol)
	}

	// Reversal is ignored.
	steps(g, 1, core.ActionRight)
	if s := g.Snapshot(); s.Dir != wormcore.DirLeft {
		t.Errorf("Dir after reversal = %v, expected Left", s.Dir)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)

	steps(g, 1, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	steps(g, 60)
	if s := g.Snapshot(); s.Moves != 0 || s.State != StatePaused {
		t.Errorf("paused game moved: %+v", s)
	}
	if sum := g.Summary(); sum.Ticks != 0 {
		t.Errorf("Summary().Ticks = %d, expected paused ticks excluded", sum.Ticks)
	}

	steps(g, 1, core.ActionPause)
	steps(g, 13)
	if s := g.Snapshot(); s.Moves != 1 {
		t.Errorf("after unpause moves = %d, expected 1", s.Moves)
	}
}

func TestRestartAction(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)
	steps(g, 66)

	steps(g, 1, core.ActionRestart)
	s := g.Snapshot()
	if s.Len != 3 || s.Moves != 0 || s.Restarts != 0 {
		t.Errorf("after restart: %+v, expected a fresh three-segment worm", s)
	}
	if s.HeadRow != 5 || s.HeadCol != 5 {
		t.Errorf("head = (%d,%d), expected (5,5)", s.HeadRow, s.HeadCol)
	}
}

func TestTooSmallScreenWaits(t *testing.T) {
	g := newTestGame(t, New(), 1, 10, 5)

	steps(g, 30)
	s := g.Snapshot()
	if s.State != StatePausedSmall || s.Moves != 0 {
		t.Fatalf("small screen: %+v, expected paused without moves", s)
	}

	g.Resize(80, 24)
	steps(g, 13)
	if s := g.Snapshot(); s.State != StatePlaying || s.Moves != 1 {
		t.Errorf("after resize: %+v, expected the same run to continue", s)
	}
}

func TestModesSetEatRule(t *testing.T) {
	classic := newTestGame(t, New(), 1, 80, 24)
	if classic.sim.Rules().EatFood {
		t.Error("classic worm should not eat")
	}
	if classic.Title() != "Worm" {
		t.Errorf("Title() = %q", classic.Title())
	}

	feeding := newTestGame(t, NewFeeding(), 1, 80, 24)
	if !feeding.sim.Rules().EatFood {
		t.Error("feeding worm should eat")
	}
	if feeding.ID() != "worm_feeding" {
		t.Errorf("ID() = %q", feeding.ID())
	}
}

func TestDifficultyPresetScalesInterval(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, New(), 1, 80, 24)
	if got := g.Snapshot().StepInterval; got != 300*time.Millisecond {
		t.Errorf("StepInterval = %v, expected 300ms", got)
	}
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worm.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  rows: 2\ndifficulty:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(t, New(), 1, 80, 24)
	if g.ConfigError() == nil {
		t.Error("ConfigError() should report the invalid grid")
	}
	if g.sim.Rows() != wormcore.DefaultRows || g.sim.Cols() != wormcore.DefaultCols {
		t.Errorf("grid = %dx%d, expected defaults", g.sim.Rows(), g.sim.Cols())
	}
	if !g.difficulty.IsEnabled() {
		t.Error("difficulty should follow the defaults, not the rejected file")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "config error") {
		t.Errorf("HUD should mention the config error, got %q", screen.Row(0))
	}
}

func TestUseConfigRebuildsPacing(t *testing.T) {
	g := New()

	slow := config.DefaultWormConfig()
	slow.Pace.StepIntervalMS = 500
	slow.Difficulty.Enabled = false
	g.useConfig(slow)

	g.useConfig(g.defaultConfig())
	if g.baseInterval != wormcore.DefaultStepInterval {
		t.Errorf("baseInterval = %v, expected %v", g.baseInterval, wormcore.DefaultStepInterval)
	}
	if !g.difficulty.IsEnabled() {
		t.Error("difficulty manager still built from the previous config")
	}
	if g.cfg != config.DefaultWormConfig() {
		t.Errorf("cfg = %+v, expected defaults", g.cfg)
	}
}

func TestSummary(t *testing.T) {
	g := newTestGame(t, New(), 77, 80, 24)
	steps(g, 66)

	want := core.RunSummary{
		Seed:      77,
		Rows:      9,
		Cols:      10,
		Ticks:     66,
		Moves:     5,
		Restarts:  1,
		MaxLength: 3,
	}
	if got := g.Summary(); got != want {
		t.Errorf("Summary() = %+v\nexpected %+v", got, want)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:    0") {
		t.Errorf("HUD = %q, expected the score label", screen.Row(0))
	}

	// 22x11 frame centred below the HUD: origin (29, 7).
	if screen.Get(29, 7) != '┌' {
		t.Errorf("frame corner = %q, expected '┌'", screen.Get(29, 7))
	}
	head := screen.GetCell(29+1+5*cellWidth, 7+1+5)
	if head.Rune != '█' || head.Color != core.ColorGreen {
		t.Errorf("head cell = %+v, expected green block", head)
	}

	blocks := 0
	for y := 0; y < screen.Height(); y++ {
		blocks += strings.Count(screen.Row(y), "█")
	}
	if blocks != 3*cellWidth {
		t.Errorf("found %d block runes, expected %d for three segments", blocks, 3*cellWidth)
	}

	// Only changed cells are streamed; the retained board keeps the picture.
	g.Render(screen)
	if again := screen.GetCell(29+1+5*cellWidth, 7+1+5); again != head {
		t.Errorf("second render lost the head cell: %+v", again)
	}
}

func TestRenderAfterMoveClearsTail(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	steps(g, 13)
	g.Render(screen)

	newHead := screen.GetCell(29+1+5*cellWidth, 7+1+4)
	if newHead.Rune != '█' {
		t.Errorf("cell (4,5) = %+v, expected worm", newHead)
	}
	if s := g.Snapshot(); s.FoodRow == 7 && s.FoodCol == 5 {
		t.Skip("food sits on the old tail cell")
	}
	oldTail := screen.GetCell(29+1+5*cellWidth, 7+1+7)
	if oldTail.Rune != '·' {
		t.Errorf("cell (7,5) = %+v, expected background", oldTail)
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	g := newTestGame(t, New(), 1, 80, 24)
	steps(g, 1, core.ActionPause)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}
}
