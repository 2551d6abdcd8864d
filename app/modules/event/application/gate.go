package eventservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
)

// Gate adapts event ownership and signup-window state to the queue
// module's Authorizer and EventGate collaborator interfaces.
type Gate struct {
	repo eventdb.Repository
	db   *bun.DB
}

// NewGate builds the queue module's event-backed gate.
func NewGate(repo eventdb.Repository, db *bun.DB) *Gate {
	return &Gate{repo: repo, db: db}
}

var (
	_ queueservice.Authorizer = (*Gate)(nil)
	_ queueservice.EventGate  = (*Gate)(nil)
)

// AuthorizeQueueWrite allows only the event's host to mutate its queue.
func (g *Gate) AuthorizeQueueWrite(ctx context.Context, hostID string, eventID uuid.UUID) error {
	event, err := g.repo.GetByID(ctx, g.db, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return queueservice.ErrEventNotFound
		}
		return err
	}
	if !event.OwnedBy(hostID) {
		return queueservice.ErrPermissionDenied
	}
	return nil
}

// SignupOpen reports whether the event currently accepts public signups.
// Runs on the caller's transaction handle so the check is part of the
// insert's atomic protocol.
func (g *Gate) SignupOpen(ctx context.Context, db bun.IDB, eventID uuid.UUID) error {
	if db == nil {
		db = g.db
	}
	event, err := g.repo.GetByID(ctx, db, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return queueservice.ErrEventNotFound
		}
		return err
	}
	if !event.AcceptsSignups() {
		return queueservice.ErrEventClosed
	}
	return nil
}
