package maze

import (
	"fmt"
	"strings"
)

// Coordinate addresses a cell by row and column
type Coordinate struct {
	Row, Col int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Neighbor offsets in expansion order: up, down, left, right
var neighborOffsets = [4]Coordinate{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

// Grid is an immutable rectangular maze
type Grid struct {
	cells         []Cell // Row-major, height*width
	width, height int
}

// New validates rows and builds a Grid from a copy of them
// Requires a non-empty rectangular grid with exactly one Start and at least one Goal
func New(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrConfiguration)
	}

	height, width := len(rows), len(rows[0])
	g := &Grid{
		cells:  make([]Cell, 0, height*width),
		width:  width,
		height: height,
	}

	starts, goals := 0, 0
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrConfiguration, r, len(row), width)
		}
		for _, c := range row {
			switch c {
			case Start:
				starts++
			case Goal:
				goals++
			case Wall, Open:
			default:
				return nil, fmt.Errorf("%w: invalid cell %v in row %d", ErrConfiguration, c, r)
			}
		}
		g.cells = append(g.cells, row...)
	}

	if starts != 1 {
		return nil, fmt.Errorf("%w: found %d start cells, want exactly 1", ErrConfiguration, starts)
	}
	if goals == 0 {
		return nil, fmt.Errorf("%w: no goal cell", ErrConfiguration)
	}

	return g, nil
}

// Parse builds a Grid from text rows, one rune per cell
func Parse(lines []string) (*Grid, error) {
	rows := make([][]Cell, 0, len(lines))
	for r, line := range lines {
		row := make([]Cell, 0, len(line))
		for _, ch := range line {
			c, err := ParseCell(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	return New(rows)
}

// ParseMarkers builds a Grid from a matrix of single-character markers
func ParseMarkers(markers [][]string) (*Grid, error) {
	lines := make([]string, len(markers))
	for r, row := range markers {
		var sb strings.Builder
		for c, m := range row {
			if len([]rune(m)) != 1 {
				return nil, fmt.Errorf("%w: marker %q at (%d,%d) is not a single character", ErrConfiguration, m, r, c)
			}
			sb.WriteString(m)
		}
		lines[r] = sb.String()
	}
	return Parse(lines)
}

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Contains reports whether c lies within the grid extents
func (g *Grid) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// CellAt returns the cell at c
func (g *Grid) CellAt(c Coordinate) (Cell, error) {
	if !g.Contains(c) {
		return Wall, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.height, g.width)
	}
	return g.cells[c.Row*g.width+c.Col], nil
}

// Passable reports whether c is inside the grid and not a wall
func (g *Grid) Passable(c Coordinate) bool {
	cell, err := g.CellAt(c)
	return err == nil && cell.Passable()
}

// Locate scans in row-major order and returns the first cell of the given kind
func (g *Grid) Locate(kind Cell) (Coordinate, error) {
	for i, c := range g.cells {
		if c == kind {
			return Coordinate{Row: i / g.width, Col: i % g.width}, nil
		}
	}
	return Coordinate{-1, -1}, fmt.Errorf("%w: %v", ErrNotFound, kind)
}

// Neighbors returns the in-bounds orthogonal neighbors of c in up, down, left, right order
// Passability is left to the caller
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// PassableCount returns the number of non-wall cells
func (g *Grid) PassableCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Passable() {
			n++
		}
	}
	return n
}

// Rows returns a fresh copy of the grid as rows of cells
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for r := range rows {
		rows[r] = append([]Cell(nil), g.cells[r*g.width:(r+1)*g.width]...)
	}
	return rows
}

// String renders the grid back to marker text, one line per row
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for i, c := range g.cells {
		if i > 0 && i%g.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(c.Marker())
	}
	return sb.String()
}
