package maze

import "errors"

// Sentinel errors for grid construction and lookup
var (
	// ErrConfiguration marks a malformed maze: empty, ragged, bad marker, or missing start/goal
	ErrConfiguration = errors.New("maze: invalid configuration")

	// ErrNotFound is returned by Locate when no cell of the requested kind exists
	ErrNotFound = errors.New("maze: cell kind not found")

	// ErrOutOfBounds is returned for coordinates outside the grid extents
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
)
