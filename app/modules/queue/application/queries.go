package queueservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	"github.com/open-mic-club/encore/internal/results"
)

// ActiveQueue is the public projection: QUEUED and PERFORMING entries for
// the event, position ascending. No authorization; singers watch this view.
func (s *QueueService) ActiveQueue(ctx context.Context, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	signups, err := s.repo.ListActive(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing active queue: %w", err)
	}
	return signups, nil
}

// History is the host projection: every signup for the event regardless of
// status, ordered by creation time.
func (s *QueueService) History(ctx context.Context, hostID string, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	if err := s.authorizer.AuthorizeQueueWrite(ctx, hostID, eventID); err != nil {
		return nil, err
	}
	signups, err := s.repo.ListByEvent(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing event history: %w", err)
	}
	return signups, nil
}

// NormalizeEvent re-applies the dense-sequence invariant for one event in
// its own transaction. The integrity sweep calls this for events whose
// positions have drifted. Reports whether any row changed.
func (s *QueueService) NormalizeEvent(ctx context.Context, eventID uuid.UUID) (bool, error) {
	type noop struct{}
	var changed bool
	_, err := runInTx[noop, noop](s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[noop, noop], error) {
		var txErr error
		changed, txErr = s.normalizeTx(ctx, db, eventID)
		return results.OperationResult[noop, noop]{}, txErr
	})
	if err != nil {
		return false, fmt.Errorf("normalizing event %s: %w", eventID, err)
	}
	return changed, nil
}
