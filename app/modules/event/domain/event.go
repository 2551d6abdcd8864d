// Package eventdomain holds the karaoke event model.
package eventdomain

import (
	"time"

	"github.com/google/uuid"
)

// Status is an event's signup window state.
type Status string

const (
	// StatusOpen means the event accepts public signups.
	StatusOpen Status = "OPEN"
	// StatusClosed means public signups are refused; host mutations on the
	// existing queue still work.
	StatusClosed Status = "CLOSED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// JoinCodeLength is the length of the generated join code.
const JoinCodeLength = 6

// Event is a single karaoke night.
type Event struct {
	ID        uuid.UUID
	Name      string
	JoinCode  string
	HostID    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsSignups reports whether the public signup form may submit.
func (e *Event) AcceptsSignups() bool {
	return e.Status == StatusOpen
}

// OwnedBy reports whether hostID owns this event.
func (e *Event) OwnedBy(hostID string) bool {
	return e.HostID == hostID
}
