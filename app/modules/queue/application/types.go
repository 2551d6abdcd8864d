package queueservice

import (
	"github.com/google/uuid"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

// InsertSignupInput carries a new, boundary-validated signup submission.
type InsertSignupInput struct {
	EventID     uuid.UUID
	SongTitle   string
	Artist      string
	Performance queuedomain.PerformanceInput
}

// SignupCreated is the success payload of InsertSignup. Position is the
// 1-based queue position reported back to the singer.
type SignupCreated struct {
	Signup   queuedomain.Signup
	Position int
}

// SignupRejected is the validation failure payload of InsertSignup.
// Fields maps form field names to messages.
type SignupRejected struct {
	Reason string
	Fields map[string]string
}

// StatusChanged is the success payload of ChangeStatus.
type StatusChanged struct {
	Signup   queuedomain.Signup
	Previous queuedomain.Status
}

// StatusChangeRejected is the domain failure payload of ChangeStatus.
type StatusChangeRejected struct {
	Reason string
}

// QueueReordered is the success payload of ReorderQueue.
type QueueReordered struct {
	EventID uuid.UUID
	Order   []uuid.UUID
}

// ReorderRejected is the domain failure payload of ReorderQueue.
type ReorderRejected struct {
	Reason string
}

// SignupRemoved is the success payload of RemoveSignup.
type SignupRemoved struct {
	SignupID uuid.UUID
	EventID  uuid.UUID
}

// RemoveRejected is the domain failure payload of RemoveSignup.
type RemoveRejected struct {
	Reason string
}
