// Package queuehandlers translates HTTP requests into queue engine
// operations and publishes change notifications after commits.
package queuehandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authhandlers "github.com/open-mic-club/encore/app/modules/auth/infrastructure/handlers"
	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queueevents "github.com/open-mic-club/encore/app/modules/queue/domain/events"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/cache"
)

// QueueHandlers serves the queue mutation and projection endpoints.
type QueueHandlers struct {
	service  queueservice.Service
	notifier *Notifier
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewQueueHandlers creates the queue handler set.
func NewQueueHandlers(
	service queueservice.Service,
	notifier *Notifier,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *QueueHandlers {
	if c == nil {
		c = cache.NoOp{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueHandlers{
		service:  service,
		notifier: notifier,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type insertSignupRequest struct {
	PerformanceType string   `json:"performanceType"`
	SingerName1     string   `json:"singerName1"`
	SingerName2     string   `json:"singerName2"`
	GroupNames      []string `json:"groupNames"`
	SongTitle       string   `json:"songTitle"`
	Artist          string   `json:"artist"`
}

// performanceInput maps the wire form onto the per-type input variants.
// Unknown type strings fall through to nil, which the validator reports as a
// performanceType field error.
func (r insertSignupRequest) performanceInput() queuedomain.PerformanceInput {
	switch queuedomain.PerformanceType(r.PerformanceType) {
	case queuedomain.PerformanceSolo:
		return queuedomain.SoloInput{Name: r.SingerName1}
	case queuedomain.PerformanceDuet:
		return queuedomain.DuetInput{Name1: r.SingerName1, Name2: r.SingerName2}
	case queuedomain.PerformanceGroup:
		return queuedomain.GroupInput{GroupNames: r.GroupNames}
	default:
		return nil
	}
}

type insertSignupResponse struct {
	Signup   signupResponse `json:"signup"`
	Position int            `json:"position"`
}

// HandleInsertSignup serves POST /api/events/{eventID}/signups.
func (h *QueueHandlers) HandleInsertSignup(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req insertSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.InsertSignup(r.Context(), queueservice.InsertSignupInput{
		EventID:     eventID,
		SongTitle:   req.SongTitle,
		Artist:      req.Artist,
		Performance: req.performanceInput(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeFieldErrors(w, result.Failure.Reason, result.Failure.Fields)
		return
	}

	h.notifier.QueueUpdated(r.Context(), queueevents.KindSignupCreated, eventID, result.Success.Signup.ID)

	writeJSON(w, http.StatusCreated, insertSignupResponse{
		Signup:   toSignupResponse(result.Success.Signup),
		Position: result.Success.Position,
	})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// HandleChangeStatus serves PATCH /api/signups/{signupID}/status.
func (h *QueueHandlers) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	signupID, err := uuid.Parse(chi.URLParam(r, "signupID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signup id")
		return
	}
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), hostID, signupID, queuedomain.Status(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeFieldErrors(w, result.Failure.Reason, nil)
		return
	}

	h.notifier.QueueUpdated(r.Context(), queueevents.KindStatusChanged, result.Success.Signup.EventID, signupID)

	writeJSON(w, http.StatusOK, toSignupResponse(result.Success.Signup))
}

type reorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// HandleReorderQueue serves PUT /api/events/{eventID}/queue/order.
func (h *QueueHandlers) HandleReorderQueue(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.ReorderQueue(r.Context(), hostID, eventID, req.Order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeFieldErrors(w, result.Failure.Reason, nil)
		return
	}

	h.notifier.QueueUpdated(r.Context(), queueevents.KindReordered, eventID, uuid.Nil)

	writeJSON(w, http.StatusOK, map[string]any{"order": result.Success.Order})
}

// HandleRemoveSignup serves DELETE /api/signups/{signupID}.
func (h *QueueHandlers) HandleRemoveSignup(w http.ResponseWriter, r *http.Request) {
	signupID, err := uuid.Parse(chi.URLParam(r, "signupID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signup id")
		return
	}
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.service.RemoveSignup(r.Context(), hostID, signupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeFieldErrors(w, result.Failure.Reason, nil)
		return
	}

	h.notifier.QueueUpdated(r.Context(), queueevents.KindSignupRemoved, result.Success.EventID, signupID)

	w.WriteHeader(http.StatusNoContent)
}

// HandleActiveQueue serves GET /api/events/{eventID}/queue. Public;
// read-through cached.
func (h *QueueHandlers) HandleActiveQueue(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	key := activeQueueCacheKey(eventID)
	if data, ok, err := h.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	} else if err != nil {
		h.logger.WarnContext(r.Context(), "Queue cache read failed", attr.Error(err))
	}

	signups, err := h.service.ActiveQueue(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := json.Marshal(map[string]any{"queue": toSignupResponses(signups)})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	if err := h.cache.Set(r.Context(), key, body, h.cacheTTL); err != nil {
		h.logger.WarnContext(r.Context(), "Queue cache write failed", attr.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// HandleHistory serves GET /api/events/{eventID}/history.
func (h *QueueHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	signups, err := h.service.History(r.Context(), hostID, eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": toSignupResponses(signups)})
}

// HandleExportHistory serves GET /api/events/{eventID}/history/export.
func (h *QueueHandlers) HandleExportHistory(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	hostID, ok := authhandlers.HostID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	data, err := h.service.ExportHistory(r.Context(), hostID, eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="event-history.xlsx"`)
	_, _ = w.Write(data)
}
