package eventservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/cache"
	"github.com/open-mic-club/encore/internal/observability"
	"github.com/open-mic-club/encore/internal/results"
)

const serviceName = "EventService"

// maxJoinCodeAttempts bounds retries on join code collisions.
const maxJoinCodeAttempts = 5

// EventCreated is the success payload of CreateEvent.
type EventCreated struct {
	Event eventdomain.Event
}

// EventRejected is the validation failure payload of CreateEvent.
type EventRejected struct {
	Reason string
	Fields map[string]string
}

// EventService implements the Service interface.
type EventService struct {
	repo     eventdb.Repository
	db       *bun.DB
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  observability.Metrics
}

// NewEventService creates a new EventService.
func NewEventService(
	repo eventdb.Repository,
	db *bun.DB,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
	metrics observability.Metrics,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		c = cache.NoOp{}
	}
	if metrics == nil {
		metrics = &observability.NoOpMetrics{}
	}
	return &EventService{
		repo:     repo,
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

var _ Service = (*EventService)(nil)

func joinCodeCacheKey(code string) string {
	return "event:code:" + strings.ToUpper(strings.TrimSpace(code))
}

func (s *EventService) CreateEvent(ctx context.Context, hostID, name string) (results.OperationResult[EventCreated, EventRejected], error) {
	s.metrics.RecordOperationAttempt(ctx, "CreateEvent", serviceName)

	name = strings.TrimSpace(name)
	if name == "" {
		return results.FailureResult[EventCreated](EventRejected{
			Reason: "invalid event",
			Fields: map[string]string{"name": "event name is required"},
		}), nil
	}
	if hostID == "" {
		return results.OperationResult[EventCreated, EventRejected]{}, ErrPermissionDenied
	}

	now := time.Now().UTC()
	event := eventdomain.Event{
		ID:        uuid.New(),
		Name:      name,
		HostID:    hostID,
		Status:    eventdomain.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var lastErr error
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := generateJoinCode()
		if err != nil {
			return results.OperationResult[EventCreated, EventRejected]{}, fmt.Errorf("generating join code: %w", err)
		}
		event.JoinCode = code

		lastErr = s.repo.Insert(ctx, s.db, &event)
		if lastErr == nil {
			s.metrics.RecordOperationSuccess(ctx, "CreateEvent", serviceName)
			s.logger.InfoContext(ctx, "Event created",
				attr.ExtractCorrelationID(ctx),
				attr.String("event_id", event.ID.String()),
				attr.String("host_id", hostID),
			)
			return results.SuccessResult[EventCreated, EventRejected](EventCreated{Event: event}), nil
		}
		if !errors.Is(lastErr, eventdb.ErrJoinCodeTaken) {
			break
		}
	}

	s.metrics.RecordOperationFailure(ctx, "CreateEvent", serviceName)
	return results.OperationResult[EventCreated, EventRejected]{}, fmt.Errorf("creating event: %w", lastErr)
}

func (s *EventService) GetEvent(ctx context.Context, hostID string, eventID uuid.UUID) (*eventdomain.Event, error) {
	event, err := s.repo.GetByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(hostID) {
		return nil, ErrPermissionDenied
	}
	return event, nil
}

func (s *EventService) GetEventByCode(ctx context.Context, joinCode string) (*eventdomain.Event, error) {
	key := joinCodeCacheKey(joinCode)
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var event eventdomain.Event
		if json.Unmarshal(data, &event) == nil {
			return &event, nil
		}
	} else if err != nil {
		s.logger.WarnContext(ctx, "Join code cache read failed", attr.Error(err))
	}

	event, err := s.repo.GetByJoinCode(ctx, s.db, joinCode)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(event); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "Join code cache write failed", attr.Error(err))
		}
	}
	return event, nil
}

func (s *EventService) ListHostEvents(ctx context.Context, hostID string) ([]eventdomain.Event, error) {
	return s.repo.ListByHost(ctx, s.db, hostID)
}

func (s *EventService) CloseEvent(ctx context.Context, hostID string, eventID uuid.UUID) error {
	return s.setStatus(ctx, hostID, eventID, eventdomain.StatusClosed)
}

func (s *EventService) ReopenEvent(ctx context.Context, hostID string, eventID uuid.UUID) error {
	return s.setStatus(ctx, hostID, eventID, eventdomain.StatusOpen)
}

func (s *EventService) setStatus(ctx context.Context, hostID string, eventID uuid.UUID, status eventdomain.Status) error {
	event, err := s.repo.GetByID(ctx, s.db, eventID)
	if err != nil {
		return err
	}
	if !event.OwnedBy(hostID) {
		return ErrPermissionDenied
	}
	if event.Status == status {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, s.db, eventID, status); err != nil {
		return fmt.Errorf("updating event status: %w", err)
	}
	if err := s.cache.Delete(ctx, joinCodeCacheKey(event.JoinCode)); err != nil {
		s.logger.WarnContext(ctx, "Join code cache invalidation failed", attr.Error(err))
	}
	s.logger.InfoContext(ctx, "Event status changed",
		attr.ExtractCorrelationID(ctx),
		attr.String("event_id", eventID.String()),
		attr.String("status", string(status)),
	)
	return nil
}
