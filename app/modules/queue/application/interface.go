package queueservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	"github.com/open-mic-club/encore/internal/results"
)

// Service is the queue mutation coordinator plus its read projections.
type Service interface {
	// InsertSignup validates a submission, computes its fairness position,
	// persists it and renormalizes the event's queue.
	InsertSignup(ctx context.Context, input InsertSignupInput) (results.OperationResult[SignupCreated, SignupRejected], error)

	// ChangeStatus applies a status transition with its side effects
	// (performer cascade, performing_at bookkeeping, tail re-entry on
	// restore) and renormalizes when active-set membership changed.
	ChangeStatus(ctx context.Context, hostID string, signupID uuid.UUID, target queuedomain.Status) (results.OperationResult[StatusChanged, StatusChangeRejected], error)

	// ReorderQueue applies an explicit host-supplied ordering of the queued
	// entries, bypassing fairness.
	ReorderQueue(ctx context.Context, hostID string, eventID uuid.UUID, orderedIDs []uuid.UUID) (results.OperationResult[QueueReordered, ReorderRejected], error)

	// RemoveSignup deletes a signup and renormalizes the event's queue.
	RemoveSignup(ctx context.Context, hostID string, signupID uuid.UUID) (results.OperationResult[SignupRemoved, RemoveRejected], error)

	// ActiveQueue returns QUEUED and PERFORMING entries ordered by position.
	ActiveQueue(ctx context.Context, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// History returns every signup for the event ordered by creation time.
	History(ctx context.Context, hostID string, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// ExportHistory renders the history view as an xlsx workbook.
	ExportHistory(ctx context.Context, hostID string, eventID uuid.UUID) ([]byte, error)

	// NormalizeEvent re-applies the dense-sequence invariant for one event.
	// Used by the integrity sweep; reports whether anything changed.
	NormalizeEvent(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// Authorizer answers whether a caller may mutate an event's queue. Backed by
// event ownership; implemented outside this module.
type Authorizer interface {
	AuthorizeQueueWrite(ctx context.Context, hostID string, eventID uuid.UUID) error
}

// EventGate answers, inside the insert transaction, whether an event exists
// and currently accepts public signups. Returns ErrEventNotFound or
// ErrEventClosed.
type EventGate interface {
	SignupOpen(ctx context.Context, db bun.IDB, eventID uuid.UUID) error
}
