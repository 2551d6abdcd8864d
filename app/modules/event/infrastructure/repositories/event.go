package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
)

// EventRepository implements Repository on bun.
type EventRepository struct{}

// NewEventRepository returns the bun-backed event repository.
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

var _ Repository = (*EventRepository)(nil)

func (r *EventRepository) Insert(ctx context.Context, db bun.IDB, event *eventdomain.Event) error {
	model := toModel(event)
	if _, err := db.NewInsert().Model(model).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrJoinCodeTaken
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
	model := new(Event)
	err := db.NewSelect().Model(model).Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return toDomain(model), nil
}

func (r *EventRepository) GetByJoinCode(ctx context.Context, db bun.IDB, joinCode string) (*eventdomain.Event, error) {
	model := new(Event)
	err := db.NewSelect().
		Model(model).
		Where("e.join_code = ?", strings.ToUpper(strings.TrimSpace(joinCode))).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve join code: %w", err)
	}
	return toDomain(model), nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status eventdomain.Status) error {
	res, err := db.NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListByHost(ctx context.Context, db bun.IDB, hostID string) ([]eventdomain.Event, error) {
	var models []Event
	err := db.NewSelect().
		Model(&models).
		Where("e.host_id = ?", hostID).
		Order("e.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list host events: %w", err)
	}
	out := make([]eventdomain.Event, len(models))
	for i := range models {
		out[i] = *toDomain(&models[i])
	}
	return out, nil
}

// isUniqueViolation reports whether err is Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
