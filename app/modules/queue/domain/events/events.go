// Package queueevents defines the payloads published after committed queue
// mutations. Subscribers (live dashboards, the public queue display) refetch
// projections when they see one.
package queueevents

import (
	"time"

	"github.com/google/uuid"
)

// Topic prefixes for the NATS subjects the queue module publishes on.
const (
	QueueUpdatedTopicPrefix = "queue.updated."
)

// Update kinds.
const (
	KindSignupCreated = "signup_created"
	KindStatusChanged = "status_changed"
	KindReordered     = "reordered"
	KindSignupRemoved = "signup_removed"
)

// QueueUpdatedTopic returns the per-event topic for queue updates.
func QueueUpdatedTopic(eventID uuid.UUID) string {
	return QueueUpdatedTopicPrefix + eventID.String()
}

// QueueUpdatedPayload announces that an event's queue changed and projections
// should be refetched.
type QueueUpdatedPayload struct {
	EventID    uuid.UUID `json:"event_id"`
	SignupID   uuid.UUID `json:"signup_id,omitempty"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
