package eventhandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authhandlers "github.com/open-mic-club/encore/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/open-mic-club/encore/app/modules/auth/infrastructure/jwt"
	eventservice "github.com/open-mic-club/encore/app/modules/event/application"
	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/results"
)

// FakeEventService provides a programmable stub for the eventservice.Service interface.
type FakeEventService struct {
	CreateEventFunc    func(ctx context.Context, hostID, name string) (results.OperationResult[eventservice.EventCreated, eventservice.EventRejected], error)
	GetEventFunc       func(ctx context.Context, hostID string, eventID uuid.UUID) (*eventdomain.Event, error)
	GetEventByCodeFunc func(ctx context.Context, joinCode string) (*eventdomain.Event, error)
	ListHostEventsFunc func(ctx context.Context, hostID string) ([]eventdomain.Event, error)
	CloseEventFunc     func(ctx context.Context, hostID string, eventID uuid.UUID) error
	ReopenEventFunc    func(ctx context.Context, hostID string, eventID uuid.UUID) error
}

func (f *FakeEventService) CreateEvent(ctx context.Context, hostID, name string) (results.OperationResult[eventservice.EventCreated, eventservice.EventRejected], error) {
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, hostID, name)
	}
	return results.OperationResult[eventservice.EventCreated, eventservice.EventRejected]{}, nil
}

func (f *FakeEventService) GetEvent(ctx context.Context, hostID string, eventID uuid.UUID) (*eventdomain.Event, error) {
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, hostID, eventID)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventService) GetEventByCode(ctx context.Context, joinCode string) (*eventdomain.Event, error) {
	if f.GetEventByCodeFunc != nil {
		return f.GetEventByCodeFunc(ctx, joinCode)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventService) ListHostEvents(ctx context.Context, hostID string) ([]eventdomain.Event, error) {
	if f.ListHostEventsFunc != nil {
		return f.ListHostEventsFunc(ctx, hostID)
	}
	return nil, nil
}

func (f *FakeEventService) CloseEvent(ctx context.Context, hostID string, eventID uuid.UUID) error {
	if f.CloseEventFunc != nil {
		return f.CloseEventFunc(ctx, hostID, eventID)
	}
	return nil
}

func (f *FakeEventService) ReopenEvent(ctx context.Context, hostID string, eventID uuid.UUID) error {
	if f.ReopenEventFunc != nil {
		return f.ReopenEventFunc(ctx, hostID, eventID)
	}
	return nil
}

var _ eventservice.Service = (*FakeEventService)(nil)

func newTestRouter(t *testing.T, svc eventservice.Service) (*chi.Mux, string) {
	t.Helper()

	provider := authjwt.NewProvider("test-secret")
	token, err := provider.GenerateToken("host-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewEventHandlers(svc, logger)

	r := chi.NewRouter()
	r.Get("/api/events/code/{joinCode}", h.HandleGetEventByCode)
	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireHost(provider))
		r.Post("/api/events", h.HandleCreateEvent)
		r.Get("/api/events", h.HandleListEvents)
		r.Get("/api/events/{eventID}", h.HandleGetEvent)
		r.Post("/api/events/{eventID}/close", h.HandleCloseEvent)
		r.Post("/api/events/{eventID}/reopen", h.HandleReopenEvent)
	})
	return r, token
}

func sampleEvent() *eventdomain.Event {
	return &eventdomain.Event{
		ID:        uuid.New(),
		Name:      "Friday Karaoke",
		JoinCode:  "AB12CD",
		HostID:    "host-1",
		Status:    eventdomain.StatusOpen,
		CreatedAt: time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestHandleCreateEvent(t *testing.T) {
	t.Run("creates for authenticated host", func(t *testing.T) {
		event := sampleEvent()
		svc := &FakeEventService{
			CreateEventFunc: func(ctx context.Context, hostID, name string) (results.OperationResult[eventservice.EventCreated, eventservice.EventRejected], error) {
				if hostID != "host-1" {
					t.Errorf("hostID = %q, want host-1", hostID)
				}
				return results.SuccessResult[eventservice.EventCreated, eventservice.EventRejected](eventservice.EventCreated{Event: *event}), nil
			},
		}
		router, token := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"name":"Friday Karaoke"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
		}
		var resp eventResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.JoinCode != "AB12CD" {
			t.Errorf("joinCode = %q, want AB12CD", resp.JoinCode)
		}
	})

	t.Run("rejects without token", func(t *testing.T) {
		router, _ := newTestRouter(t, &FakeEventService{})
		req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"name":"x"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("blank name maps to 422", func(t *testing.T) {
		svc := &FakeEventService{
			CreateEventFunc: func(ctx context.Context, hostID, name string) (results.OperationResult[eventservice.EventCreated, eventservice.EventRejected], error) {
				return results.FailureResult[eventservice.EventCreated](eventservice.EventRejected{
					Reason: "invalid event",
					Fields: map[string]string{"name": "event name is required"},
				}), nil
			},
		}
		router, token := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"name":""}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})
}

func TestHandleGetEventByCode(t *testing.T) {
	t.Run("public lookup hides nothing the caller lacks", func(t *testing.T) {
		event := sampleEvent()
		svc := &FakeEventService{
			GetEventByCodeFunc: func(ctx context.Context, joinCode string) (*eventdomain.Event, error) {
				if joinCode != "AB12CD" {
					t.Errorf("joinCode = %q, want AB12CD", joinCode)
				}
				return event, nil
			},
		}
		router, _ := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/api/events/code/AB12CD", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp["status"] != "OPEN" {
			t.Errorf("status = %v, want OPEN", resp["status"])
		}
	})

	t.Run("unknown code maps to 404", func(t *testing.T) {
		router, _ := newTestRouter(t, &FakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "/api/events/code/ZZZZZZ", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandleCloseEvent(t *testing.T) {
	event := sampleEvent()

	t.Run("closes for owner", func(t *testing.T) {
		closed := false
		svc := &FakeEventService{
			CloseEventFunc: func(ctx context.Context, hostID string, eventID uuid.UUID) error {
				closed = true
				return nil
			},
		}
		router, token := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/events/%s/close", event.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !closed {
			t.Error("expected CloseEvent to be called")
		}
	})

	t.Run("foreign host maps to 403", func(t *testing.T) {
		svc := &FakeEventService{
			CloseEventFunc: func(ctx context.Context, hostID string, eventID uuid.UUID) error {
				return eventservice.ErrPermissionDenied
			},
		}
		router, token := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/events/%s/close", event.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}
