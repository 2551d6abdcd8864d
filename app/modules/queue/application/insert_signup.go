package queueservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/results"
)

// InsertSignup runs the insert protocol: validate the submission, check the
// event still accepts signups, compute the fairness position, open a slot if
// the insert lands mid-queue, persist, then renormalize. The whole protocol
// runs in one transaction so concurrent inserts serialize on the row locks.
func (s *QueueService) InsertSignup(ctx context.Context, input InsertSignupInput) (results.OperationResult[SignupCreated, SignupRejected], error) {
	return withTelemetry(s, ctx, "InsertSignup", input.EventID.String(),
		func(ctx context.Context) (results.OperationResult[SignupCreated, SignupRejected], error) {
			fields := queuedomain.ValidateInput(input.Performance)
			if strings.TrimSpace(input.SongTitle) == "" {
				fields["songTitle"] = "song title is required"
			}
			if strings.TrimSpace(input.Artist) == "" {
				fields["artist"] = "artist is required"
			}
			if len(fields) > 0 {
				return results.FailureResult[SignupCreated](SignupRejected{
					Reason: "invalid signup submission",
					Fields: fields,
				}), nil
			}
			if input.EventID == uuid.Nil {
				return results.FailureResult[SignupCreated](SignupRejected{
					Reason: "invalid signup submission",
					Fields: map[string]string{"eventId": "event id is required"},
				}), nil
			}

			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[SignupCreated, SignupRejected], error) {
				if err := s.events.SignupOpen(ctx, db, input.EventID); err != nil {
					if errors.Is(err, ErrEventClosed) {
						return results.FailureResult[SignupCreated](SignupRejected{
							Reason: "event is not accepting signups",
						}), nil
					}
					return results.OperationResult[SignupCreated, SignupRejected]{}, err
				}

				queued, err := s.repo.ListQueued(ctx, db, input.EventID)
				if err != nil {
					return results.OperationResult[SignupCreated, SignupRejected]{}, fmt.Errorf("listing queued signups: %w", err)
				}

				singerName := queuedomain.CombinedSingerName(input.Performance)
				position := computeInsertPosition(queued, singerName)

				if position <= maxQueuedPosition(queued) {
					if err := s.repo.ShiftQueuedPositions(ctx, db, input.EventID, position); err != nil {
						return results.OperationResult[SignupCreated, SignupRejected]{}, fmt.Errorf("opening queue slot: %w", err)
					}
				}

				signup := queuedomain.Signup{
					ID:              uuid.New(),
					EventID:         input.EventID,
					SingerName:      singerName,
					SongTitle:       strings.TrimSpace(input.SongTitle),
					Artist:          strings.TrimSpace(input.Artist),
					PerformanceType: input.Performance.Type(),
					Status:          queuedomain.StatusQueued,
					Position:        position,
					CreatedAt:       time.Now().UTC(),
				}
				if err := s.repo.Insert(ctx, db, &signup); err != nil {
					return results.OperationResult[SignupCreated, SignupRejected]{}, fmt.Errorf("inserting signup: %w", err)
				}

				if _, err := s.normalizeTx(ctx, db, input.EventID); err != nil {
					return results.OperationResult[SignupCreated, SignupRejected]{}, fmt.Errorf("normalizing queue: %w", err)
				}

				s.logger.InfoContext(ctx, "Signup inserted",
					attr.ExtractCorrelationID(ctx),
					attr.String("signup_id", signup.ID.String()),
					attr.String("event_id", signup.EventID.String()),
					attr.Int("position", position),
				)

				return results.SuccessResult[SignupCreated, SignupRejected](SignupCreated{
					Signup:   signup,
					Position: position,
				}), nil
			})
		})
}
