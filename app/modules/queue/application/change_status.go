package queueservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/results"
)

// ChangeStatus moves a signup through the status state machine and applies
// the transition's side effects in the same transaction:
//
//   - to PERFORMING: stamps performing_at and completes any other performer
//     still on stage for the event
//   - to QUEUED (restore): re-enters at the tail of the queue and clears
//     performing_at
//   - to COMPLETE or CANCELLED: leaves the active queue
//
// Every path ends with renormalization, so positions stay dense and
// non-active rows drop to position 0.
func (s *QueueService) ChangeStatus(ctx context.Context, hostID string, signupID uuid.UUID, target queuedomain.Status) (results.OperationResult[StatusChanged, StatusChangeRejected], error) {
	return withTelemetry(s, ctx, "ChangeStatus", signupID.String(),
		func(ctx context.Context) (results.OperationResult[StatusChanged, StatusChangeRejected], error) {
			if !target.IsValid() {
				return results.FailureResult[StatusChanged](StatusChangeRejected{
					Reason: fmt.Sprintf("unknown status %q", string(target)),
				}), nil
			}

			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[StatusChanged, StatusChangeRejected], error) {
				signup, err := s.repo.GetByID(ctx, db, signupID)
				if err != nil {
					return results.OperationResult[StatusChanged, StatusChangeRejected]{}, err
				}
				if err := s.authorizer.AuthorizeQueueWrite(ctx, hostID, signup.EventID); err != nil {
					return results.OperationResult[StatusChanged, StatusChangeRejected]{}, err
				}

				previous := signup.Status
				if previous == target {
					return results.FailureResult[StatusChanged](StatusChangeRejected{
						Reason: fmt.Sprintf("signup is already %s", string(target)),
					}), nil
				}
				if !previous.CanTransitionTo(target) {
					return results.FailureResult[StatusChanged](StatusChangeRejected{
						Reason: fmt.Sprintf("cannot transition from %s to %s", string(previous), string(target)),
					}), nil
				}

				switch target {
				case queuedomain.StatusPerforming:
					if err := s.completeOtherPerformers(ctx, db, signup.EventID, signup.ID); err != nil {
						return results.OperationResult[StatusChanged, StatusChangeRejected]{}, err
					}
					now := time.Now().UTC()
					signup.PerformingAt = &now

				case queuedomain.StatusQueued:
					queued, err := s.repo.ListQueued(ctx, db, signup.EventID)
					if err != nil {
						return results.OperationResult[StatusChanged, StatusChangeRejected]{}, fmt.Errorf("listing queued signups: %w", err)
					}
					signup.Position = maxQueuedPosition(queued) + 1
					signup.PerformingAt = nil
				}

				signup.Status = target
				if err := s.repo.Update(ctx, db, signup); err != nil {
					return results.OperationResult[StatusChanged, StatusChangeRejected]{}, fmt.Errorf("updating signup: %w", err)
				}

				if _, err := s.normalizeTx(ctx, db, signup.EventID); err != nil {
					return results.OperationResult[StatusChanged, StatusChangeRejected]{}, fmt.Errorf("normalizing queue: %w", err)
				}

				s.logger.InfoContext(ctx, "Signup status changed",
					attr.ExtractCorrelationID(ctx),
					attr.String("signup_id", signup.ID.String()),
					attr.String("event_id", signup.EventID.String()),
					attr.String("previous", string(previous)),
					attr.String("status", string(target)),
				)

				return results.SuccessResult[StatusChanged, StatusChangeRejected](StatusChanged{
					Signup:   *signup,
					Previous: previous,
				}), nil
			})
		})
}

// completeOtherPerformers finishes any performer other than keepID still
// marked PERFORMING for the event, so starting the next act implicitly ends
// the current one.
func (s *QueueService) completeOtherPerformers(ctx context.Context, db bun.IDB, eventID, keepID uuid.UUID) error {
	performing, err := s.repo.ListPerforming(ctx, db, eventID)
	if err != nil {
		return fmt.Errorf("listing performing signups: %w", err)
	}
	for i := range performing {
		if performing[i].ID == keepID {
			continue
		}
		performing[i].Status = queuedomain.StatusComplete
		if err := s.repo.Update(ctx, db, &performing[i]); err != nil {
			return fmt.Errorf("completing previous performer: %w", err)
		}
	}
	return nil
}
