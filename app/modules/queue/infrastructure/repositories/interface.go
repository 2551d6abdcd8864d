package queuedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

// PositionUpdate assigns one signup a new queue position.
type PositionUpdate struct {
	ID       uuid.UUID
	Position int
}

// Repository defines the contract for signup persistence. Every method takes
// a bun.IDB so the same calls compose inside a coordinator transaction or
// run standalone.
type Repository interface {
	// Insert creates a new signup row.
	Insert(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error

	// GetByID retrieves a signup, returning ErrNotFound when absent.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*queuedomain.Signup, error)

	// ListByEvent returns every signup for the event, created_at ascending.
	ListByEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// ListQueued returns the QUEUED entries for the event, position ascending.
	ListQueued(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// ListActive returns QUEUED and PERFORMING entries, position ascending.
	ListActive(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// ListPerforming returns the entries currently PERFORMING for the event.
	ListPerforming(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)

	// Update persists status, position and performing_at for the signup.
	Update(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error

	// ShiftQueuedPositions moves every queued position >= fromPosition up by
	// one, opening a slot for a mid-queue insert. Two-phase under the
	// (event_id, position) unique index.
	ShiftQueuedPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, fromPosition int) error

	// ApplyPositions assigns the given queued positions. Two-phase: rows move
	// to negated placeholders first, then flip to their final values.
	ApplyPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, updates []PositionUpdate) error

	// ZeroPositions sets position = 0 for the given signups.
	ZeroPositions(ctx context.Context, db bun.IDB, ids []uuid.UUID) error

	// Delete removes a signup row, returning ErrNotFound when absent.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// ListDriftedEventIDs returns events whose queued positions are not a
	// dense 1..N sequence or whose non-queued rows carry stale nonzero
	// positions. Used by the integrity sweep.
	ListDriftedEventIDs(ctx context.Context, db bun.IDB, limit int) ([]uuid.UUID, error)
}
