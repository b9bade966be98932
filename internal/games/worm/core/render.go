package core

import (
	"fmt"
	"iter"
	"strings"
)

// ScoreFormat is the label format for the score readout.
const ScoreFormat = "Score: %4d"

// Instruction tells the renderer to repaint one cell.
type Instruction struct {
	Cell Cell
	Kind CellKind
}

// String returns a string representation of the instruction.
func (in Instruction) String() string {
	return fmt.Sprintf("%s=%s", in.Cell, in.Kind)
}

// Frame is the render state derived from the worm and food.
// Cells are stored in row-major order: index = row*Cols + col.
type Frame struct {
	Rows  int
	Cols  int
	Cells []CellKind
}

// At returns the kind of cell c, or KindBackground if c is out of bounds.
func (f Frame) At(c Cell) CellKind {
	if c.Row < 0 || c.Row >= f.Rows || c.Col < 0 || c.Col >= f.Cols {
		return KindBackground
	}
	return f.Cells[c.Row*f.Cols+c.Col]
}

// Count returns how many cells have the given kind.
func (f Frame) Count(kind CellKind) int {
	n := 0
	for _, k := range f.Cells {
		if k == kind {
			n++
		}
	}
	return n
}

// String renders the frame as rows of '.', 'o' and '*'.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.Rows * (f.Cols + 1))
	for r := 0; r < f.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < f.Cols; c++ {
			sb.WriteRune(f.Cells[r*f.Cols+c].Char())
		}
	}
	return sb.String()
}

// Frame recomputes the render state. Worm segments are painted over food;
// segments that have left the grid are not drawn.
func (s *Simulator) Frame() Frame {
	f := Frame{
		Rows:  s.rows,
		Cols:  s.cols,
		Cells: make([]CellKind, s.rows*s.cols),
	}
	if s.inBounds(s.food) {
		f.Cells[s.index(s.food)] = KindFood
	}
	for _, seg := range s.worm {
		if s.inBounds(seg.Cell) {
			f.Cells[s.index(seg.Cell)] = KindWorm
		}
	}
	return f
}

// Changes returns the cells whose kind differs from what the renderer was
// last told, in row-major order. Cells are marked as shown while the
// sequence is consumed, so stopping early leaves the rest for the next call.
func (s *Simulator) Changes() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		frame := s.Frame()
		for i, kind := range frame.Cells {
			if s.shown[i] == kind {
				continue
			}
			s.shown[i] = kind
			in := Instruction{Cell: At(i/s.cols, i%s.cols), Kind: kind}
			if !yield(in) {
				return
			}
		}
	}
}

// ScoreText returns the formatted score label.
func (s *Simulator) ScoreText() string {
	return fmt.Sprintf(ScoreFormat, s.score)
}

func (s *Simulator) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < s.rows && c.Col >= 0 && c.Col < s.cols
}

func (s *Simulator) index(c Cell) int {
	return c.Row*s.cols + c.Col
}
