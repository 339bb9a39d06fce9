package maze

import "fmt"

// Cell is the kind of a single maze square
type Cell uint8

// Cell kinds
const (
	Wall Cell = iota
	Open
	Start
	Goal
)

// Marker runes as they appear in maze text
const (
	MarkerWall  = '#'
	MarkerOpen  = ' '
	MarkerStart = 'O'
	MarkerGoal  = 'X'
)

// ParseCell maps a marker rune to its Cell kind
// Unknown markers are rejected rather than guessed
func ParseCell(r rune) (Cell, error) {
	switch r {
	case MarkerWall:
		return Wall, nil
	case MarkerOpen:
		return Open, nil
	case MarkerStart:
		return Start, nil
	case MarkerGoal:
		return Goal, nil
	}
	return Wall, fmt.Errorf("%w: unknown cell marker %q", ErrConfiguration, r)
}

// Marker returns the rune used to draw the cell
func (c Cell) Marker() rune {
	switch c {
	case Open:
		return MarkerOpen
	case Start:
		return MarkerStart
	case Goal:
		return MarkerGoal
	default:
		return MarkerWall
	}
}

// Passable reports whether the cell can be walked through
func (c Cell) Passable() bool {
	return c != Wall
}

func (c Cell) String() string {
	switch c {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case Start:
		return "start"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}
