package journal

import "errors"

// ErrIndexOutOfRange is returned when a positional lookup resolves outside
// the container's bounds.
var ErrIndexOutOfRange = errors.New("index out of range")
