// Package core provides the grid movement simulation behind the Worm game.
// This package is UI-agnostic and deterministic for a given random source.
package core

import "fmt"

// Dir represents the heading of a worm segment.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dRow, dCol) offset for moving one cell in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// ParseDir converts a name such as "up" or "L" into a direction.
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "up", "Up", "u", "U":
		return DirUp, true
	case "right", "Right", "r", "R":
		return DirRight, true
	case "down", "Down", "d", "D":
		return DirDown, true
	case "left", "Left", "l", "L":
		return DirLeft, true
	default:
		return DirUp, false
	}
}

// Cell is a grid coordinate. Row 0 is the top edge.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(r%d,c%d)", c.Row, c.Col)
}

// Add returns the cell offset by (dRow, dCol).
func (c Cell) Add(dRow, dCol int) Cell {
	return Cell{Row: c.Row + dRow, Col: c.Col + dCol}
}

// Step returns the neighbouring cell in the given direction.
func (c Cell) Step(d Dir) Cell {
	dr, dc := d.Delta()
	return c.Add(dr, dc)
}

// Segment is one unit of the worm body with its own heading.
type Segment struct {
	Cell
	Dir Dir
}

// CellKind classifies a grid cell for the renderer.
type CellKind uint8

const (
	KindBackground CellKind = iota
	KindWorm
	KindFood
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindWorm:
		return "worm"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// Char returns the ASCII glyph used for this kind in text renderings.
func (k CellKind) Char() rune {
	switch k {
	case KindWorm:
		return 'o'
	case KindFood:
		return '*'
	default:
		return '.'
	}
}

// Event reports what a Tick did.
type Event uint8

const (
	EventIdle Event = iota // Below the step interval, nothing moved
	EventMoved
	EventAte // Moved and the head consumed food
	EventRestarted
)

// String returns the string representation of an event.
func (e Event) String() string {
	switch e {
	case EventIdle:
		return "idle"
	case EventMoved:
		return "moved"
	case EventAte:
		return "ate"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}
