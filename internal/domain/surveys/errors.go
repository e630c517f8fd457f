package surveys

import "errors"

// ErrNotFound indicates no survey exists under the requested id.
var ErrNotFound = errors.New("survey not found")
