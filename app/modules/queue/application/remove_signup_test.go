package queueservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
)

func TestQueueService_RemoveSignup(t *testing.T) {
	eventID := uuid.New()
	signupID := uuid.New()
	base := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)

	t.Run("deletes and renormalizes", func(t *testing.T) {
		repo := NewFakeSignupRepository()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, _ uuid.UUID) (*queuedomain.Signup, error) {
			return &queuedomain.Signup{
				ID: signupID, EventID: eventID, SingerName: "Alice",
				Status: queuedomain.StatusQueued, Position: 2, CreatedAt: base,
			}, nil
		}
		deleted := uuid.Nil
		repo.DeleteFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) error {
			deleted = id
			return nil
		}

		s := newTestService(repo, &FakeAuthorizer{}, &FakeEventGate{})
		result, err := s.RemoveSignup(context.Background(), "host-1", signupID)
		if err != nil {
			t.Fatalf("RemoveSignup() error = %v", err)
		}
		if !result.IsSuccess() {
			t.Fatalf("expected success, got %+v", result)
		}
		if result.Success.EventID != eventID {
			t.Errorf("EventID = %s, want %s", result.Success.EventID, eventID)
		}
		if deleted != signupID {
			t.Errorf("deleted = %s, want %s", deleted, signupID)
		}

		trace := repo.Trace()
		sawDelete := false
		sawNormalizeRead := false
		for _, step := range trace {
			if step == "Delete" {
				sawDelete = true
			}
			if step == "ListByEvent" && sawDelete {
				sawNormalizeRead = true
			}
		}
		if !sawNormalizeRead {
			t.Errorf("expected normalization read after delete, trace = %v", trace)
		}
	})

	t.Run("missing signup errors not found", func(t *testing.T) {
		repo := NewFakeSignupRepository()
		s := newTestService(repo, &FakeAuthorizer{}, &FakeEventGate{})

		_, err := s.RemoveSignup(context.Background(), "host-1", signupID)
		if !errors.Is(err, queuedb.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("unauthorized host is denied", func(t *testing.T) {
		repo := NewFakeSignupRepository()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, _ uuid.UUID) (*queuedomain.Signup, error) {
			return &queuedomain.Signup{ID: signupID, EventID: eventID, Status: queuedomain.StatusQueued, Position: 1, CreatedAt: base}, nil
		}
		s := newTestService(repo, &FakeAuthorizer{Err: ErrPermissionDenied}, &FakeEventGate{})

		_, err := s.RemoveSignup(context.Background(), "host-2", signupID)
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("error = %v, want ErrPermissionDenied", err)
		}
		for _, step := range repo.Trace() {
			if step == "Delete" {
				t.Error("denied removal must not delete")
			}
		}
	})
}
