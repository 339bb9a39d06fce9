package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Sentinel errors for engine construction and stepping
var (
	// ErrNilGrid is returned when no grid is supplied
	ErrNilGrid = errors.New("engine: grid is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied
	ErrOptionViolation = errors.New("engine: invalid option supplied")

	// ErrInvalidTransition signals an internal state machine fault
	ErrInvalidTransition = errors.New("engine: invalid state transition")
)

// Strategy selects how frontier entries remember their path
type Strategy uint8

const (
	// FullPath stores a complete path copy in every queue entry
	FullPath Strategy = iota
	// ParentPointer stores one back-reference per visited cell and rebuilds paths on dequeue
	ParentPointer
)

func (s Strategy) String() string {
	switch s {
	case FullPath:
		return "fullpath"
	case ParentPointer:
		return "parent"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a strategy name to its value
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fullpath", "full":
		return FullPath, nil
	case "parent", "parentpointer":
		return ParentPointer, nil
	}
	return FullPath, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
}

// Options holds engine parameters
type Options struct {
	Renderer Renderer
	Strategy Strategy
	Logger   zerolog.Logger

	// internal error recorded during option parsing
	err error
}

// Option configures the engine via functional arguments
type Option func(*Options)

// DefaultOptions returns full-path storage, no renderer and a disabled logger
func DefaultOptions() Options {
	return Options{
		Strategy: FullPath,
		Logger:   zerolog.Nop(),
	}
}

// WithRenderer appends renderers; multiple renderers receive frames in the given order
func WithRenderer(rs ...Renderer) Option {
	return func(o *Options) {
		var all MultiRenderer
		if o.Renderer != nil {
			all = append(all, o.Renderer)
		}
		for _, r := range rs {
			if r != nil {
				all = append(all, r)
			}
		}
		switch len(all) {
		case 0:
		case 1:
			o.Renderer = all[0]
		default:
			o.Renderer = all
		}
	}
}

// WithStrategy selects the path storage strategy
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != FullPath && s != ParentPointer {
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, s)
			return
		}
		o.Strategy = s
	}
}

// WithLogger sets the engine logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
