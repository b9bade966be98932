package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-worm/internal/games/worm/core"
)

func collect(s *core.Simulator) []core.Instruction {
	var out []core.Instruction
	for in := range s.Changes() {
		out = append(out, in)
	}
	return out
}

func TestChangesInitialPaint(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})

	got := collect(s)
	want := []core.Instruction{
		{Cell: core.At(0, 0), Kind: core.KindFood},
		{Cell: core.At(5, 5), Kind: core.KindWorm},
		{Cell: core.At(6, 5), Kind: core.KindWorm},
		{Cell: core.At(7, 5), Kind: core.KindWorm},
	}
	if len(got) != len(want) {
		t.Fatalf("Changes() yielded %d instructions, expected %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %v, expected %v", i, got[i], want[i])
		}
	}

	if again := collect(s); len(again) != 0 {
		t.Errorf("second Changes() yielded %v, expected nothing", again)
	}
}

func TestChangesAfterMove(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})
	collect(s)

	s.Tick(step)
	got := collect(s)
	want := []core.Instruction{
		{Cell: core.At(4, 5), Kind: core.KindWorm},
		{Cell: core.At(7, 5), Kind: core.KindBackground},
	}
	if len(got) != len(want) {
		t.Fatalf("Changes() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestChangesAfterRestart(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})
	for s.Tick(step) != core.EventRestarted {
	}
	collect(s)

	// Repaint everything from scratch and compare with the derived frame.
	f := s.Frame()
	if f.Count(core.KindWorm) != 1 || f.Count(core.KindFood) != 1 {
		t.Errorf("frame after restart:\n%s", f)
	}
}

func TestChangesEarlyStop(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})

	for in := range s.Changes() {
		if in.Kind != core.KindFood {
			t.Errorf("first instruction = %v, expected food", in)
		}
		break
	}

	rest := collect(s)
	if len(rest) != 3 {
		t.Fatalf("remaining instructions = %v, expected the 3 worm cells", rest)
	}
	for _, in := range rest {
		if in.Kind != core.KindWorm {
			t.Errorf("unexpected instruction %v", in)
		}
	}
}

func TestFrameString(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})

	lines := strings.Split(s.Frame().String(), "\n")
	if len(lines) != core.DefaultRows {
		t.Fatalf("frame has %d lines, expected %d", len(lines), core.DefaultRows)
	}
	if lines[0] != "*........." {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[5] != ".....o...." {
		t.Errorf("row 5 = %q", lines[5])
	}
	if lines[8] != ".........." {
		t.Errorf("row 8 = %q", lines[8])
	}
}

func TestScoreText(t *testing.T) {
	s := newSim(t, core.DefaultOptions(), &seqRand{vals: []int{0}})
	if got := s.ScoreText(); got != "Score:    0" {
		t.Errorf("ScoreText() = %q, expected %q", got, "Score:    0")
	}
}
