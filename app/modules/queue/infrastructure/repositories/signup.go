package queuedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

// SignupRepository implements Repository on bun.
type SignupRepository struct{}

// NewSignupRepository returns the bun-backed signup repository.
func NewSignupRepository() *SignupRepository {
	return &SignupRepository{}
}

var _ Repository = (*SignupRepository)(nil)

func (r *SignupRepository) Insert(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error {
	model := toModel(signup)
	if _, err := db.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}
	return nil
}

func (r *SignupRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*queuedomain.Signup, error) {
	model := new(Signup)
	err := db.NewSelect().Model(model).Where("s.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get signup: %w", err)
	}
	return toDomain(model), nil
}

func (r *SignupRepository) ListByEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	var models []Signup
	err := db.NewSelect().
		Model(&models).
		Where("s.event_id = ?", eventID).
		Order("s.created_at ASC").
		Order("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}
	return toDomainSlice(models), nil
}

func (r *SignupRepository) ListQueued(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	var models []Signup
	err := db.NewSelect().
		Model(&models).
		Where("s.event_id = ?", eventID).
		Where("s.status = ?", string(queuedomain.StatusQueued)).
		Order("s.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued signups: %w", err)
	}
	return toDomainSlice(models), nil
}

func (r *SignupRepository) ListActive(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	var models []Signup
	err := db.NewSelect().
		Model(&models).
		Where("s.event_id = ?", eventID).
		Where("s.status IN (?)", bun.In([]string{
			string(queuedomain.StatusQueued),
			string(queuedomain.StatusPerforming),
		})).
		Order("s.position ASC").
		Order("s.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active signups: %w", err)
	}
	return toDomainSlice(models), nil
}

func (r *SignupRepository) ListPerforming(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	var models []Signup
	err := db.NewSelect().
		Model(&models).
		Where("s.event_id = ?", eventID).
		Where("s.status = ?", string(queuedomain.StatusPerforming)).
		Order("s.performing_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list performing signups: %w", err)
	}
	return toDomainSlice(models), nil
}

func (r *SignupRepository) Update(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error {
	model := toModel(signup)
	res, err := db.NewUpdate().
		Model(model).
		Column("status", "position", "performing_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update signup: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ShiftQueuedPositions opens a slot at fromPosition. Phase one parks the
// shifted rows at negated target positions (never colliding with live
// positive positions under the partial unique index), phase two flips them
// positive.
func (r *SignupRepository) ShiftQueuedPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, fromPosition int) error {
	_, err := db.NewUpdate().
		Model((*Signup)(nil)).
		Set("position = -(position + 1)").
		Where("event_id = ?", eventID).
		Where("status = ?", string(queuedomain.StatusQueued)).
		Where("position >= ?", fromPosition).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to park shifted positions: %w", err)
	}
	return r.flipParkedPositions(ctx, db, eventID)
}

func (r *SignupRepository) ApplyPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		_, err := db.NewUpdate().
			Model((*Signup)(nil)).
			Set("position = ?", -u.Position).
			Where("id = ?", u.ID).
			Where("position != ?", u.Position).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to park position for signup %s: %w", u.ID, err)
		}
	}
	return r.flipParkedPositions(ctx, db, eventID)
}

func (r *SignupRepository) flipParkedPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID) error {
	_, err := db.NewUpdate().
		Model((*Signup)(nil)).
		Set("position = -position").
		Where("event_id = ?", eventID).
		Where("position < 0").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize positions: %w", err)
	}
	return nil
}

func (r *SignupRepository) ZeroPositions(ctx context.Context, db bun.IDB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.NewUpdate().
		Model((*Signup)(nil)).
		Set("position = 0").
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to zero positions: %w", err)
	}
	return nil
}

func (r *SignupRepository) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := db.NewDelete().
		Model((*Signup)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete signup: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SignupRepository) ListDriftedEventIDs(ctx context.Context, db bun.IDB, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 50
	}
	var ids []uuid.UUID
	err := db.NewSelect().
		ColumnExpr("event_id").
		Model((*Signup)(nil)).
		GroupExpr("event_id").
		Having(
			"bool_or(status != ? AND position != 0) OR "+
				"(count(*) FILTER (WHERE status = ?) > 0 AND ("+
				"min(position) FILTER (WHERE status = ?) != 1 OR "+
				"max(position) FILTER (WHERE status = ?) != count(*) FILTER (WHERE status = ?)))",
			string(queuedomain.StatusQueued),
			string(queuedomain.StatusQueued),
			string(queuedomain.StatusQueued),
			string(queuedomain.StatusQueued),
			string(queuedomain.StatusQueued),
		).
		Limit(limit).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list drifted events: %w", err)
	}
	return ids, nil
}
