package queueservice

import "errors"

var (
	// ErrNotFound is returned when the referenced signup does not exist.
	ErrNotFound = errors.New("signup not found")

	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventClosed is returned by the event gate when an event no longer
	// accepts public signups.
	ErrEventClosed = errors.New("event is not accepting signups")

	// ErrPermissionDenied is returned when the caller may not mutate the
	// target event's queue.
	ErrPermissionDenied = errors.New("permission denied")
)
