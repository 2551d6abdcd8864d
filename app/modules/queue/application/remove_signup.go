package queueservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/results"
)

// RemoveSignup deletes a signup outright and renormalizes the event's queue
// so the remaining entries close the gap. Cancellation is the usual path;
// removal exists for spam and duplicate submissions the host wants gone from
// history too.
func (s *QueueService) RemoveSignup(ctx context.Context, hostID string, signupID uuid.UUID) (results.OperationResult[SignupRemoved, RemoveRejected], error) {
	return withTelemetry(s, ctx, "RemoveSignup", signupID.String(),
		func(ctx context.Context) (results.OperationResult[SignupRemoved, RemoveRejected], error) {
			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[SignupRemoved, RemoveRejected], error) {
				signup, err := s.repo.GetByID(ctx, db, signupID)
				if err != nil {
					return results.OperationResult[SignupRemoved, RemoveRejected]{}, err
				}
				if err := s.authorizer.AuthorizeQueueWrite(ctx, hostID, signup.EventID); err != nil {
					return results.OperationResult[SignupRemoved, RemoveRejected]{}, err
				}

				if err := s.repo.Delete(ctx, db, signupID); err != nil {
					return results.OperationResult[SignupRemoved, RemoveRejected]{}, fmt.Errorf("deleting signup: %w", err)
				}
				if _, err := s.normalizeTx(ctx, db, signup.EventID); err != nil {
					return results.OperationResult[SignupRemoved, RemoveRejected]{}, fmt.Errorf("normalizing queue: %w", err)
				}

				s.logger.InfoContext(ctx, "Signup removed",
					attr.ExtractCorrelationID(ctx),
					attr.String("signup_id", signupID.String()),
					attr.String("event_id", signup.EventID.String()),
				)

				return results.SuccessResult[SignupRemoved, RemoveRejected](SignupRemoved{
					SignupID: signupID,
					EventID:  signup.EventID,
				}), nil
			})
		})
}
