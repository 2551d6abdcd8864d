package queuehandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
)

// signupResponse is the wire form of a queue entry.
type signupResponse struct {
	ID              uuid.UUID  `json:"id"`
	EventID         uuid.UUID  `json:"eventId"`
	SingerName      string     `json:"singerName"`
	SongTitle       string     `json:"songTitle"`
	Artist          string     `json:"artist"`
	PerformanceType string     `json:"performanceType"`
	Status          string     `json:"status"`
	Position        int        `json:"position"`
	CreatedAt       time.Time  `json:"createdAt"`
	PerformingAt    *time.Time `json:"performingAt,omitempty"`
}

func toSignupResponse(s queuedomain.Signup) signupResponse {
	return signupResponse{
		ID:              s.ID,
		EventID:         s.EventID,
		SingerName:      s.SingerName,
		SongTitle:       s.SongTitle,
		Artist:          s.Artist,
		PerformanceType: string(s.PerformanceType),
		Status:          string(s.Status),
		Position:        s.Position,
		CreatedAt:       s.CreatedAt,
		PerformingAt:    s.PerformingAt,
	}
}

func toSignupResponses(signups []queuedomain.Signup) []signupResponse {
	out := make([]signupResponse, len(signups))
	for i, s := range signups {
		out[i] = toSignupResponse(s)
	}
	return out
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

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeFieldErrors(w http.ResponseWriter, msg string, fields map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msg, Fields: fields})
}

// writeServiceError maps the engine's sentinel errors onto HTTP statuses;
// anything unrecognized becomes a generic retryable 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, queuedb.ErrNotFound),
		errors.Is(err, queueservice.ErrNotFound),
		errors.Is(err, queueservice.ErrEventNotFound),
		errors.Is(err, eventdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, queueservice.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission denied")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
