package queuehandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	queueevents "github.com/open-mic-club/encore/app/modules/queue/domain/events"
	"github.com/open-mic-club/encore/internal/attr"
	"github.com/open-mic-club/encore/internal/cache"
)

// activeQueueCacheKey is the redis key for an event's cached active queue.
func activeQueueCacheKey(eventID uuid.UUID) string {
	return "queue:active:" + eventID.String()
}

// Notifier publishes queue-updated events and invalidates cached
// projections after a mutation commits. Failures are logged, never
// propagated: the mutation itself already succeeded.
type Notifier struct {
	publisher message.Publisher
	cache     cache.Cache
	logger    *slog.Logger
}

// NewNotifier creates a Notifier. publisher may be nil, in which case only
// cache invalidation happens.
func NewNotifier(publisher message.Publisher, c cache.Cache, logger *slog.Logger) *Notifier {
	if c == nil {
		c = cache.NoOp{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{publisher: publisher, cache: c, logger: logger}
}

// QueueUpdated invalidates the event's cached projections and announces the
// change on queue.updated.<eventID>.
func (n *Notifier) QueueUpdated(ctx context.Context, kind string, eventID, signupID uuid.UUID) {
	if err := n.cache.Delete(ctx, activeQueueCacheKey(eventID)); err != nil {
		n.logger.WarnContext(ctx, "Queue cache invalidation failed",
			attr.String("event_id", eventID.String()),
			attr.Error(err),
		)
	}

	if n.publisher == nil {
		return
	}

	payload := queueevents.QueueUpdatedPayload{
		EventID:    eventID,
		SignupID:   signupID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to marshal queue update", attr.Error(err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("kind", kind)

	if err := n.publisher.Publish(queueevents.QueueUpdatedTopic(eventID), msg); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish queue update",
			attr.String("event_id", eventID.String()),
			attr.String("kind", kind),
			attr.Error(err),
		)
	}
}
