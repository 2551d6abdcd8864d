// Package eventhandlers serves event creation, lookup and signup-window
// endpoints.
package eventhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authhandlers "github.com/open-mic-club/encore/app/modules/auth/infrastructure/handlers"
	eventservice "github.com/open-mic-club/encore/app/modules/event/application"
	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
)

// EventHandlers serves the event endpoints.
type EventHandlers struct {
	service eventservice.Service
	logger  *slog.Logger
}

// NewEventHandlers creates the event handler set.
func NewEventHandlers(service eventservice.Service, logger *slog.Logger) *EventHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandlers{service: service, logger: logger}
}

type eventResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"joinCode"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEventResponse(e *eventdomain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Name:      e.Name,
		JoinCode:  e.JoinCode,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventdb.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, eventservice.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "permission denied"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong, please try again"})
	}
}

type createEventRequest struct {
	Name string `json:"name"`
}

// HandleCreateEvent serves POST /api/events.
func (h *EventHandlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.CreateEvent(r.Context(), hostID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  result.Failure.Reason,
			Fields: result.Failure.Fields,
		})
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(&result.Success.Event))
}

// HandleGetEvent serves GET /api/events/{eventID}.
func (h *EventHandlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event id"})
		return
	}

	event, err := h.service.GetEvent(r.Context(), hostID, eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleListEvents serves GET /api/events.
func (h *EventHandlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	events, err := h.service.ListHostEvents(r.Context(), hostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

// HandleGetEventByCode serves GET /api/events/code/{joinCode}. Public.
func (h *EventHandlers) HandleGetEventByCode(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEventByCode(r.Context(), chi.URLParam(r, "joinCode"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// Public view: no join code echo beyond what the caller already knows.
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     event.ID,
		"name":   event.Name,
		"status": string(event.Status),
	})
}

// HandleCloseEvent serves POST /api/events/{eventID}/close.
func (h *EventHandlers) HandleCloseEvent(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, eventdomain.StatusClosed)
}

// HandleReopenEvent serves POST /api/events/{eventID}/reopen.
func (h *EventHandlers) HandleReopenEvent(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, eventdomain.StatusOpen)
}

func (h *EventHandlers) setStatus(w http.ResponseWriter, r *http.Request, status eventdomain.Status) {
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event id"})
		return
	}

	if status == eventdomain.StatusClosed {
		err = h.service.CloseEvent(r.Context(), hostID, eventID)
	} else {
		err = h.service.ReopenEvent(r.Context(), hostID, eventID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
