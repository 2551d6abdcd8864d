package queueservice

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
)

// normalizePlan is the minimal set of position writes that restores the
// dense-sequence invariant for one event.
type normalizePlan struct {
	// Zero lists non-queued signups still carrying a stale nonzero position.
	Zero []uuid.UUID
	// Assign lists queued signups whose position must change.
	Assign []queuedb.PositionUpdate
}

func (p normalizePlan) isEmpty() bool {
	return len(p.Zero) == 0 && len(p.Assign) == 0
}

// buildNormalizePlan renumbers the event's QUEUED entries 1..N with no gaps
// and zeroes every other entry's position. Relative order among queued
// entries is preserved: current position first, creation time as the
// tiebreak (which also settles colliding positions from racing inserts),
// signup ID last so the plan is deterministic. Idempotent: a normalized
// input yields an empty plan.
func buildNormalizePlan(allSignups []queuedomain.Signup) normalizePlan {
	var plan normalizePlan

	queued := make([]queuedomain.Signup, 0, len(allSignups))
	for _, s := range allSignups {
		if s.Status == queuedomain.StatusQueued {
			queued = append(queued, s)
			continue
		}
		if s.Position != 0 {
			plan.Zero = append(plan.Zero, s.ID)
		}
	}

	sort.SliceStable(queued, func(i, j int) bool {
		if queued[i].Position != queued[j].Position {
			return queued[i].Position < queued[j].Position
		}
		if !queued[i].CreatedAt.Equal(queued[j].CreatedAt) {
			return queued[i].CreatedAt.Before(queued[j].CreatedAt)
		}
		return queued[i].ID.String() < queued[j].ID.String()
	})

	for i, s := range queued {
		if want := i + 1; s.Position != want {
			plan.Assign = append(plan.Assign, queuedb.PositionUpdate{ID: s.ID, Position: want})
		}
	}

	return plan
}

// normalizeTx recomputes and persists the dense-sequence invariant for the
// event inside the caller's transaction. It is the final step of every
// mutating operation. Reports whether any row changed.
func (s *QueueService) normalizeTx(ctx context.Context, db bun.IDB, eventID uuid.UUID) (bool, error) {
	all, err := s.repo.ListByEvent(ctx, db, eventID)
	if err != nil {
		return false, err
	}

	plan := buildNormalizePlan(all)
	if plan.isEmpty() {
		return false, nil
	}

	if err := s.repo.ZeroPositions(ctx, db, plan.Zero); err != nil {
		return false, err
	}
	if err := s.repo.ApplyPositions(ctx, db, eventID, plan.Assign); err != nil {
		return false, err
	}
	return true, nil
}
