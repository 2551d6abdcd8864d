package eventservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
)

func TestGate_AuthorizeQueueWrite(t *testing.T) {
	event := storedEvent("host-1", eventdomain.StatusOpen)

	t.Run("owner is allowed", func(t *testing.T) {
		repo := NewFakeEventRepository()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
			return event, nil
		}
		g := NewGate(repo, nil)
		if err := g.AuthorizeQueueWrite(context.Background(), "host-1", event.ID); err != nil {
			t.Errorf("AuthorizeQueueWrite() error = %v", err)
		}
	})

	t.Run("foreign host is denied", func(t *testing.T) {
		repo := NewFakeEventRepository()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
			return event, nil
		}
		g := NewGate(repo, nil)
		err := g.AuthorizeQueueWrite(context.Background(), "host-2", event.ID)
		if !errors.Is(err, queueservice.ErrPermissionDenied) {
			t.Errorf("error = %v, want queue ErrPermissionDenied", err)
		}
	})

	t.Run("unknown event maps to queue not-found sentinel", func(t *testing.T) {
		repo := NewFakeEventRepository()
		g := NewGate(repo, nil)
		err := g.AuthorizeQueueWrite(context.Background(), "host-1", uuid.New())
		if !errors.Is(err, queueservice.ErrEventNotFound) {
			t.Errorf("error = %v, want queue ErrEventNotFound", err)
		}
	})
}

func TestGate_SignupOpen(t *testing.T) {
	t.Run("open event passes", func(t *testing.T) {
		repo := NewFakeEventRepository()
		event := storedEvent("host-1", eventdomain.StatusOpen)
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
			return event, nil
		}
		g := NewGate(repo, nil)
		if err := g.SignupOpen(context.Background(), nil, event.ID); err != nil {
			t.Errorf("SignupOpen() error = %v", err)
		}
	})

	t.Run("closed event maps to queue closed sentinel", func(t *testing.T) {
		repo := NewFakeEventRepository()
		event := storedEvent("host-1", eventdomain.StatusClosed)
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
			return event, nil
		}
		g := NewGate(repo, nil)
		err := g.SignupOpen(context.Background(), nil, event.ID)
		if !errors.Is(err, queueservice.ErrEventClosed) {
			t.Errorf("error = %v, want queue ErrEventClosed", err)
		}
	})

	t.Run("unknown event maps to queue not-found sentinel", func(t *testing.T) {
		repo := NewFakeEventRepository()
		g := NewGate(repo, nil)
		err := g.SignupOpen(context.Background(), nil, uuid.New())
		if !errors.Is(err, queueservice.ErrEventNotFound) {
			t.Errorf("error = %v, want queue ErrEventNotFound", err)
		}
	})
}
