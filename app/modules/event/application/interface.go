package eventservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	"github.com/open-mic-club/encore/internal/results"
)

// ErrPermissionDenied is returned when a host touches an event they do not
// own.
var ErrPermissionDenied = errors.New("permission denied")

// Service manages karaoke events and their signup windows.
type Service interface {
	// CreateEvent creates an OPEN event with a generated join code.
	CreateEvent(ctx context.Context, hostID, name string) (results.OperationResult[EventCreated, EventRejected], error)

	// GetEvent returns an event the host owns.
	GetEvent(ctx context.Context, hostID string, eventID uuid.UUID) (*eventdomain.Event, error)

	// GetEventByCode resolves a public join code. Cached.
	GetEventByCode(ctx context.Context, joinCode string) (*eventdomain.Event, error)

	// ListHostEvents returns the host's events, newest first.
	ListHostEvents(ctx context.Context, hostID string) ([]eventdomain.Event, error)

	// CloseEvent stops accepting public signups.
	CloseEvent(ctx context.Context, hostID string, eventID uuid.UUID) error

	// ReopenEvent resumes accepting public signups.
	ReopenEvent(ctx context.Context, hostID string, eventID uuid.UUID) error
}
