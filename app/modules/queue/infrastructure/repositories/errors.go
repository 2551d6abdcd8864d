package queuedb

import "errors"

// ErrNotFound is returned when a signup does not exist.
var ErrNotFound = errors.New("signup not found")
