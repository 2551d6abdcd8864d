// Package queuedomain holds the signup model and the status state machine
// for the live performance queue.
package queuedomain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a signup.
type Status string

const (
	StatusQueued     Status = "QUEUED"
	StatusPerforming Status = "PERFORMING"
	StatusComplete   Status = "COMPLETE"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusQueued, StatusPerforming, StatusComplete, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to
// target:
//
//	QUEUED     -> PERFORMING | CANCELLED
//	PERFORMING -> COMPLETE   | CANCELLED
//	COMPLETE   -> QUEUED (restore)
//	CANCELLED  -> QUEUED (restore)
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusQueued:
		return target == StatusPerforming || target == StatusCancelled
	case StatusPerforming:
		return target == StatusComplete || target == StatusCancelled
	case StatusComplete, StatusCancelled:
		return target == StatusQueued
	}
	return false
}

// PerformanceType is informational only; it never affects ordering.
type PerformanceType string

const (
	PerformanceSolo  PerformanceType = "SOLO"
	PerformanceDuet  PerformanceType = "DUET"
	PerformanceGroup PerformanceType = "GROUP"
)

// Signup is a single queue entry.
//
// Position is meaningful only while Status is QUEUED: a dense 1..N ranking
// among queued entries of the same event. For every other status it is 0
// once normalization has run.
type Signup struct {
	ID              uuid.UUID
	EventID         uuid.UUID
	SingerName      string
	SongTitle       string
	Artist          string
	PerformanceType PerformanceType
	Status          Status
	Position        int
	CreatedAt       time.Time
	PerformingAt    *time.Time
}

// IsActive reports whether the signup belongs to the active queue view
// (queued or currently performing).
func (s *Signup) IsActive() bool {
	return s.Status == StatusQueued || s.Status == StatusPerforming
}
