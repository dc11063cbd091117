package interfaces

import "errors"

// ErrNotFound is wrapped by every repository implementation when the
// requested entity does not exist
var ErrNotFound = errors.New("not found")
