package queueservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/results"
)

// ReorderQueue replaces the queued ordering of an event with an explicit
// host-supplied one. The supplied IDs must be exactly the current QUEUED set
// of the event; anything else (a stale snapshot, a foreign signup, a
// duplicate) rejects the whole request so a concurrent insert never silently
// loses its entry.
func (s *QueueService) ReorderQueue(ctx context.Context, hostID string, eventID uuid.UUID, orderedIDs []uuid.UUID) (results.OperationResult[QueueReordered, ReorderRejected], error) {
	return withTelemetry(s, ctx, "ReorderQueue", eventID.String(),
		func(ctx context.Context) (results.OperationResult[QueueReordered, ReorderRejected], error) {
			if err := s.authorizer.AuthorizeQueueWrite(ctx, hostID, eventID); err != nil {
				return results.OperationResult[QueueReordered, ReorderRejected]{}, err
			}

			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[QueueReordered, ReorderRejected], error) {
				queued, err := s.repo.ListQueued(ctx, db, eventID)
				if err != nil {
					return results.OperationResult[QueueReordered, ReorderRejected]{}, fmt.Errorf("listing queued signups: %w", err)
				}

				if reason := validateOrdering(queued, orderedIDs); reason != "" {
					return results.FailureResult[QueueReordered](ReorderRejected{Reason: reason}), nil
				}

				updates := make([]queuedb.PositionUpdate, 0, len(orderedIDs))
				current := make(map[uuid.UUID]int, len(queued))
				for _, q := range queued {
					current[q.ID] = q.Position
				}
				for i, id := range orderedIDs {
					if want := i + 1; current[id] != want {
						updates = append(updates, queuedb.PositionUpdate{ID: id, Position: want})
					}
				}

				if err := s.repo.ApplyPositions(ctx, db, eventID, updates); err != nil {
					return results.OperationResult[QueueReordered, ReorderRejected]{}, fmt.Errorf("applying positions: %w", err)
				}
				if _, err := s.normalizeTx(ctx, db, eventID); err != nil {
					return results.OperationResult[QueueReordered, ReorderRejected]{}, fmt.Errorf("normalizing queue: %w", err)
				}

				s.logger.InfoContext(ctx, "Queue reordered",
					attr.ExtractCorrelationID(ctx),
					attr.String("event_id", eventID.String()),
					attr.Int("queue_size", len(orderedIDs)),
				)

				return results.SuccessResult[QueueReordered, ReorderRejected](QueueReordered{
					EventID: eventID,
					Order:   orderedIDs,
				}), nil
			})
		})
}

// validateOrdering checks that orderedIDs is a permutation of the queued
// set. Returns an empty string when valid.
func validateOrdering(queued []queuedomain.Signup, orderedIDs []uuid.UUID) string {
	if len(orderedIDs) != len(queued) {
		return fmt.Sprintf("ordering lists %d signups but the queue holds %d", len(orderedIDs), len(queued))
	}
	expected := make(map[uuid.UUID]bool, len(queued))
	for _, q := range queued {
		expected[q.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return fmt.Sprintf("signup %s appears more than once", id)
		}
		seen[id] = true
		if !expected[id] {
			return fmt.Sprintf("signup %s is not in the queue", id)
		}
	}
	return ""
}
