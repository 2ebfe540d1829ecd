package query

import "errors"

var (
	// ErrMalformedQuery is returned when a query string fails tokenization
	// or argument parsing.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrConcurrentCollection is returned when Collect is called on a
	// journal whose previous collection result has not been closed yet.
	ErrConcurrentCollection = errors.New("journal already has an open collection")
)
