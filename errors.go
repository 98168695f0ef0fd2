package shelf

import "errors"

var (
	// ErrNotFound is returned when a path does not resolve to a servable file
	ErrNotFound = errors.New("not found")
	// ErrInvalidPath is returned when a request path fails decoding or
	// contains a traversal segment. Callers are expected to collapse it
	// into the same outward response as ErrNotFound.
	ErrInvalidPath = errors.New("invalid path")
)
