package engine

import (
	"context"
	"errors"

	"github.com/lixenwraith/maze-bfs/maze"
)

// Frame is the snapshot handed to renderers once per dequeue
// Slices are owned by the engine and must not be modified
type Frame struct {
	Step         int               // 1-based dequeue count
	State        State             // State the step concludes in
	Current      maze.Coordinate   // Dequeued coordinate
	Path         []maze.Coordinate // Start..Current inclusive
	Frontier     []maze.Coordinate // Coordinates still queued, FIFO order
	VisitedCount int
}

// Result is the outcome of a completed search
type Result struct {
	State   State
	Path    []maze.Coordinate // Start..Goal when Found, nil when Exhausted
	Steps   int               // Dequeues performed
	Visited []maze.Coordinate // Enqueue order, Start first
}

// Renderer consumes one frame per dequeue
// A returned error aborts the search
type Renderer interface {
	Render(ctx context.Context, grid *maze.Grid, f Frame) error
}

// Finisher is implemented by renderers that draw the terminal outcome
type Finisher interface {
	Finish(ctx context.Context, grid *maze.Grid, r Result) error
}

// RendererFunc adapts a plain function to Renderer
type RendererFunc func(ctx context.Context, grid *maze.Grid, f Frame) error

func (fn RendererFunc) Render(ctx context.Context, grid *maze.Grid, f Frame) error {
	return fn(ctx, grid, f)
}

// MultiRenderer fans frames out to each renderer in order, stopping at the first error
type MultiRenderer []Renderer

func (m MultiRenderer) Render(ctx context.Context, grid *maze.Grid, f Frame) error {
	for _, r := range m {
		if err := r.Render(ctx, grid, f); err != nil {
			return err
		}
	}
	return nil
}

// Finish forwards the result to every member implementing Finisher, joining errors
func (m MultiRenderer) Finish(ctx context.Context, grid *maze.Grid, r Result) error {
	var errs []error
	for _, rr := range m {
		if f, ok := rr.(Finisher); ok {
			if err := f.Finish(ctx, grid, r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
