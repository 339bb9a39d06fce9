package engine

import (
	"context"
	"fmt"

	"github.com/lixenwraith/maze-bfs/maze"
)

// entry is a frontier item awaiting expansion
// path is nil under the ParentPointer strategy
type entry struct {
	coord maze.Coordinate
	path  []maze.Coordinate
}

// Engine runs one breadth-first search over a grid, one dequeue per Step
// Not safe for concurrent use
type Engine struct {
	grid  *maze.Grid
	start maze.Coordinate
	opts  Options

	state State
	steps int

	// FIFO frontier; head indexes the next entry to dequeue
	queue []entry
	head  int

	visited map[maze.Coordinate]struct{}
	order   []maze.Coordinate                   // Visited coordinates in enqueue order
	parent  map[maze.Coordinate]maze.Coordinate // ParentPointer strategy only

	path []maze.Coordinate // Final path once Found
	last Frame
}

// New creates an idle engine for grid
// A grid without a start cell is a configuration error
func New(grid *maze.Grid, opts ...Option) (*Engine, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	start, err := grid.Locate(maze.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", maze.ErrConfiguration, err)
	}

	return &Engine{
		grid:  grid,
		start: start,
		opts:  o,
		state: Idle,
	}, nil
}

// Search builds an engine and runs it to completion
func Search(ctx context.Context, grid *maze.Grid, opts ...Option) (Result, error) {
	e, err := New(grid, opts...)
	if err != nil {
		return Result{}, err
	}
	return e.Run(ctx)
}

// State returns the current lifecycle state
func (e *Engine) State() State { return e.state }

// Start returns the start coordinate
func (e *Engine) Start() maze.Coordinate { return e.start }

// Run steps until Found or Exhausted
// The context is only checked between steps
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for !e.state.Terminal() {
		if _, err := e.Step(ctx); err != nil {
			return e.Result(), err
		}
	}

	e.opts.Logger.Info().
		Stringer("state", e.state).
		Int("steps", e.steps).
		Int("visited", len(e.order)).
		Int("path_len", len(e.path)).
		Msg("search complete")

	return e.Result(), nil
}

// Step performs a single dequeue and renders it
// The first call seeds the frontier; an empty frontier moves the engine to Exhausted without rendering
// A render error is returned after the step's expansion, never in place of it
// Calls after a terminal state return the last frame unchanged
func (e *Engine) Step(ctx context.Context) (Frame, error) {
	if e.state.Terminal() {
		return e.last, nil
	}
	if err := ctx.Err(); err != nil {
		return e.last, err
	}

	if e.state == Idle {
		if err := e.transition(Running); err != nil {
			return e.last, err
		}
		e.seed()
	}

	if e.head == len(e.queue) {
		if err := e.transition(Exhausted); err != nil {
			return e.last, err
		}
		e.last = Frame{
			Step:         e.steps,
			State:        Exhausted,
			Current:      e.last.Current,
			VisitedCount: len(e.order),
		}
		return e.last, nil
	}

	cur := e.queue[e.head]
	e.queue[e.head] = entry{}
	e.head++
	e.steps++

	path := e.pathTo(cur)
	cell, err := e.grid.CellAt(cur.coord)
	if err != nil {
		return e.last, fmt.Errorf("dequeue %v: %w", cur.coord, err)
	}
	found := cell == maze.Goal

	f := Frame{
		Step:         e.steps,
		State:        Running,
		Current:      cur.coord,
		Path:         path,
		Frontier:     e.frontier(),
		VisitedCount: len(e.order),
	}
	if found {
		f.State = Found
	}
	e.last = f

	e.opts.Logger.Debug().
		Int("step", f.Step).
		Stringer("at", cur.coord).
		Int("depth", len(path)-1).
		Int("frontier", len(f.Frontier)).
		Msg("dequeue")

	// A failed render still completes the dequeue so a later Step resumes on an intact frontier
	var renderErr error
	if e.opts.Renderer != nil {
		if err := e.opts.Renderer.Render(ctx, e.grid, f); err != nil {
			renderErr = fmt.Errorf("render step %d: %w", f.Step, err)
		}
	}

	if found {
		if err := e.transition(Found); err != nil {
			return f, err
		}
		e.path = path
		return f, renderErr
	}

	e.expand(cur, path)
	e.compact()
	return f, renderErr
}

// Result reports the search outcome so far
// Path is only set once Found
func (e *Engine) Result() Result {
	r := Result{
		State:   e.state,
		Steps:   e.steps,
		Visited: append([]maze.Coordinate(nil), e.order...),
	}
	if e.state == Found {
		r.Path = append([]maze.Coordinate(nil), e.path...)
	}
	return r
}

func (e *Engine) transition(to State) error {
	if !CanTransition(e.state, to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, e.state, to)
	}
	e.state = to
	return nil
}

// seed initializes the frontier with the start cell, already marked visited
func (e *Engine) seed() {
	e.visited = map[maze.Coordinate]struct{}{e.start: {}}
	e.order = []maze.Coordinate{e.start}

	first := entry{coord: e.start}
	if e.opts.Strategy == ParentPointer {
		e.parent = make(map[maze.Coordinate]maze.Coordinate)
	} else {
		first.path = []maze.Coordinate{e.start}
	}
	e.queue = []entry{first}
	e.head = 0
}

// expand enqueues unvisited passable neighbors in up, down, left, right order
func (e *Engine) expand(cur entry, path []maze.Coordinate) {
	for _, n := range e.grid.Neighbors(cur.coord) {
		if _, seen := e.visited[n]; seen {
			continue
		}
		cell, err := e.grid.CellAt(n)
		if err != nil || !cell.Passable() {
			continue
		}

		next := entry{coord: n}
		if e.opts.Strategy == ParentPointer {
			e.parent[n] = cur.coord
		} else {
			next.path = make([]maze.Coordinate, len(path)+1)
			copy(next.path, path)
			next.path[len(path)] = n
		}

		e.queue = append(e.queue, next)
		e.visited[n] = struct{}{}
		e.order = append(e.order, n)
	}
}

// pathTo returns the start-to-coordinate path of a dequeued entry
func (e *Engine) pathTo(en entry) []maze.Coordinate {
	if en.path != nil {
		return en.path
	}

	var rev []maze.Coordinate
	for c := en.coord; ; {
		rev = append(rev, c)
		if c == e.start {
			break
		}
		c = e.parent[c]
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

func (e *Engine) frontier() []maze.Coordinate {
	out := make([]maze.Coordinate, 0, len(e.queue)-e.head)
	for _, en := range e.queue[e.head:] {
		out = append(out, en.coord)
	}
	return out
}

// compact drops consumed queue slots once they dominate the backing array
func (e *Engine) compact() {
	if e.head > 64 && e.head*2 > len(e.queue) {
		n := copy(e.queue, e.queue[e.head:])
		clear(e.queue[n:])
		e.queue = e.queue[:n]
		e.head = 0
	}
}
