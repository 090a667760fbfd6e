package async

import "errors"

// ErrPanic wraps a value recovered from a panicking computation.
var ErrPanic = errors.New("async: computation panicked")
