package eventdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
)

// ErrNotFound is returned when no event matches the lookup.
var ErrNotFound = errors.New("event not found")

// ErrJoinCodeTaken is returned when an insert collides on the join code's
// unique constraint.
var ErrJoinCodeTaken = errors.New("join code already in use")

// Repository defines the contract for event persistence. Methods take a
// bun.IDB so lookups compose inside the queue coordinator's transactions.
type Repository interface {
	// Insert creates a new event row, returning ErrJoinCodeTaken on a join
	// code collision.
	Insert(ctx context.Context, db bun.IDB, event *eventdomain.Event) error

	// GetByID retrieves an event, returning ErrNotFound when absent.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error)

	// GetByJoinCode resolves a join code, returning ErrNotFound when absent.
	GetByJoinCode(ctx context.Context, db bun.IDB, joinCode string) (*eventdomain.Event, error)

	// UpdateStatus sets the event's signup window status.
	UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status eventdomain.Status) error

	// ListByHost returns the host's events, newest first.
	ListByHost(ctx context.Context, db bun.IDB, hostID string) ([]eventdomain.Event, error)
}
