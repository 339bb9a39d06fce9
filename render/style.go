package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles used to draw a frame
type Theme struct {
	Wall     tcell.Style
	Open     tcell.Style
	Start    tcell.Style
	Goal     tcell.Style
	Path     tcell.Style
	Frontier tcell.Style
	Status   tcell.Style
}

// DefaultTheme draws the maze in blue on black with the path in red
func DefaultTheme() Theme {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return Theme{
		Wall:     base.Foreground(tcell.ColorBlue),
		Open:     base.Foreground(tcell.ColorBlue),
		Start:    base.Foreground(tcell.ColorBlue),
		Goal:     base.Foreground(tcell.ColorBlue),
		Path:     base.Foreground(tcell.ColorRed).Bold(true),
		Frontier: base.Foreground(tcell.ColorYellow),
		Status:   base.Foreground(tcell.ColorWhite),
	}
}

// Palette names the colors of a theme, as found in configuration
type Palette struct {
	Background string `toml:"background"`
	Maze       string `toml:"maze"`
	Path       string `toml:"path"`
	Frontier   string `toml:"frontier"`
	Status     string `toml:"status"`
}

// ThemeFromPalette resolves color names (W3C names or #rrggbb) into a Theme
// Empty names keep the default
func ThemeFromPalette(p Palette) (Theme, error) {
	t := DefaultTheme()

	bg := tcell.ColorBlack
	if p.Background != "" {
		c, err := parseColor(p.Background)
		if err != nil {
			return t, err
		}
		bg = c
	}
	base := tcell.StyleDefault.Background(bg)

	pick := func(name string, def tcell.Color) (tcell.Color, error) {
		if name == "" {
			return def, nil
		}
		return parseColor(name)
	}

	mazeColor, err := pick(p.Maze, tcell.ColorBlue)
	if err != nil {
		return t, err
	}
	pathColor, err := pick(p.Path, tcell.ColorRed)
	if err != nil {
		return t, err
	}
	frontierColor, err := pick(p.Frontier, tcell.ColorYellow)
	if err != nil {
		return t, err
	}
	statusColor, err := pick(p.Status, tcell.ColorWhite)
	if err != nil {
		return t, err
	}

	t.Wall = base.Foreground(mazeColor)
	t.Open = base.Foreground(mazeColor)
	t.Start = base.Foreground(mazeColor)
	t.Goal = base.Foreground(mazeColor)
	t.Path = base.Foreground(pathColor).Bold(true)
	t.Frontier = base.Foreground(frontierColor)
	t.Status = base.Foreground(statusColor)
	return t, nil
}

func parseColor(name string) (tcell.Color, error) {
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("render: unknown color %q", name)
	}
	return c, nil
}
