// Package render draws search frames onto a tcell screen
package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-bfs/engine"
	"github.com/lixenwraith/maze-bfs/maze"
)

// Frame layout defaults
const (
	DefaultCellWidth = 2
	DefaultDelay     = 200 * time.Millisecond

	pathMarker     = 'X'
	frontierMarker = '.'
)

// Terminal renders frames to a tcell screen and paces the search
type Terminal struct {
	screen    tcell.Screen
	theme     Theme
	cellWidth int
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error

	pumpOnce  sync.Once
	events    chan tcell.Event
	pumpDone  chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// Option configures a Terminal
type Option func(*Terminal)

// WithTheme sets the drawing styles
func WithTheme(th Theme) Option {
	return func(t *Terminal) { t.theme = th }
}

// WithCellWidth sets the horizontal stride per cell; values below 1 are clamped
func WithCellWidth(w int) Option {
	return func(t *Terminal) {
		if w < 1 {
			w = 1
		}
		t.cellWidth = w
	}
}

// WithDelay sets the pause after each presented frame; zero disables pacing
func WithDelay(d time.Duration) Option {
	return func(t *Terminal) {
		if d < 0 {
			d = 0
		}
		t.delay = d
	}
}

// NewTerminal wraps an initialized screen
func NewTerminal(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen:    screen,
		theme:     DefaultTheme(),
		cellWidth: DefaultCellWidth,
		delay:     DefaultDelay,
		sleep:     sleepCtx,
		pumpDone:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render clears the screen, draws the grid with the current path and frontier, presents it, then pauses
func (t *Terminal) Render(ctx context.Context, grid *maze.Grid, f engine.Frame) error {
	t.screen.Clear()
	t.drawGrid(grid, f.Path, f.Frontier)
	t.drawLine(grid.Height()+1, fmt.Sprintf("step %d  frontier %d  visited %d",
		f.Step, len(f.Frontier), f.VisitedCount))
	t.screen.Show()

	if t.delay <= 0 {
		return nil
	}
	return t.sleep(ctx, t.delay)
}

// Finish draws the outcome of the search and a dismissal hint
func (t *Terminal) Finish(_ context.Context, grid *maze.Grid, r engine.Result) error {
	t.screen.Clear()
	t.drawGrid(grid, r.Path, nil)

	var msg string
	switch r.State {
	case engine.Found:
		msg = fmt.Sprintf("path found: %d moves, %d steps", len(r.Path)-1, r.Steps)
	case engine.Exhausted:
		msg = fmt.Sprintf("no path found: %d cells explored", len(r.Visited))
	default:
		msg = fmt.Sprintf("search stopped (%v) after %d steps", r.State, r.Steps)
	}
	t.drawLine(grid.Height()+1, msg)
	t.drawLine(grid.Height()+2, "press any key to exit")
	t.screen.Show()
	return nil
}

// WaitDismiss blocks until a key is pressed or ctx is done
// Resize events resynchronize the screen
func (t *Terminal) WaitDismiss(ctx context.Context) error {
	t.startPump()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case *tcell.EventKey:
				return nil
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}
}

// WatchQuit derives a context that is canceled when Esc, q or Ctrl-C is pressed
// The returned stop function ends the watch and waits for it to release the event stream
func (t *Terminal) WatchQuit(parent context.Context) (context.Context, func()) {
	t.startPump()
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-t.events:
				if !ok {
					cancel()
					return
				}
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if isQuitKey(ev) {
						cancel()
						return
					}
				case *tcell.EventResize:
					t.screen.Sync()
				}
			}
		}
	}()

	return ctx, func() {
		cancel()
		<-done
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Close stops event delivery; call it before finalizing the screen
// Pending and later events are dropped and waiting readers see the stream end
func (t *Terminal) Close() {
	t.closeOnce.Do(func() { close(t.done) })
}

// startPump moves screen events onto t.events
// The channel closes when the screen is finalized or the Terminal is closed
func (t *Terminal) startPump() {
	t.pumpOnce.Do(func() {
		t.events = make(chan tcell.Event, 16)
		go func() {
			defer close(t.pumpDone)
			defer close(t.events)
			for {
				ev := t.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case <-t.done:
					return
				default:
				}
				select {
				case t.events <- ev:
				case <-t.done:
					return
				}
			}
		}()
	})
}

func (t *Terminal) drawGrid(grid *maze.Grid, path, frontier []maze.Coordinate) {
	onPath := make(map[maze.Coordinate]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	inFrontier := make(map[maze.Coordinate]bool, len(frontier))
	for _, c := range frontier {
		inFrontier[c] = true
	}

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			c := maze.Coordinate{Row: row, Col: col}
			cell, _ := grid.CellAt(c)

			ch, style := cell.Marker(), t.styleFor(cell)
			switch {
			case onPath[c]:
				ch, style = pathMarker, t.theme.Path
			case inFrontier[c] && cell == maze.Open:
				ch, style = frontierMarker, t.theme.Frontier
			}

			x := col * t.cellWidth
			t.screen.SetContent(x, row, ch, nil, style)
			for pad := 1; pad < t.cellWidth; pad++ {
				t.screen.SetContent(x+pad, row, ' ', nil, style)
			}
		}
	}
}

func (t *Terminal) styleFor(c maze.Cell) tcell.Style {
	switch c {
	case maze.Open:
		return t.theme.Open
	case maze.Start:
		return t.theme.Start
	case maze.Goal:
		return t.theme.Goal
	default:
		return t.theme.Wall
	}
}

func (t *Terminal) drawLine(y int, s string) {
	x := 0
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, t.theme.Status)
		x++
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
