package queuehandlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	"github.com/open-mic-club/encore/internal/cache"
	"github.com/open-mic-club/encore/internal/results"
)

// FakeQueueService provides a programmable stub for the queueservice.Service interface.
type FakeQueueService struct {
	InsertSignupFunc   func(ctx context.Context, input queueservice.InsertSignupInput) (results.OperationResult[queueservice.SignupCreated, queueservice.SignupRejected], error)
	ChangeStatusFunc   func(ctx context.Context, hostID string, signupID uuid.UUID, target queuedomain.Status) (results.OperationResult[queueservice.StatusChanged, queueservice.StatusChangeRejected], error)
	ReorderQueueFunc   func(ctx context.Context, hostID string, eventID uuid.UUID, orderedIDs []uuid.UUID) (results.OperationResult[queueservice.QueueReordered, queueservice.ReorderRejected], error)
	RemoveSignupFunc   func(ctx context.Context, hostID string, signupID uuid.UUID) (results.OperationResult[queueservice.SignupRemoved, queueservice.RemoveRejected], error)
	ActiveQueueFunc    func(ctx context.Context, eventID uuid.UUID) ([]queuedomain.Signup, error)
	HistoryFunc        func(ctx context.Context, hostID string, eventID uuid.UUID) ([]queuedomain.Signup, error)
	ExportHistoryFunc  func(ctx context.Context, hostID string, eventID uuid.UUID) ([]byte, error)
	NormalizeEventFunc func(ctx context.Context, eventID uuid.UUID) (bool, error)
}

func (f *FakeQueueService) InsertSignup(ctx context.Context, input queueservice.InsertSignupInput) (results.OperationResult[queueservice.SignupCreated, queueservice.SignupRejected], error) {
	if f.InsertSignupFunc != nil {
		return f.InsertSignupFunc(ctx, input)
	}
	return results.OperationResult[queueservice.SignupCreated, queueservice.SignupRejected]{}, nil
}

func (f *FakeQueueService) ChangeStatus(ctx context.Context, hostID string, signupID uuid.UUID, target queuedomain.Status) (results.OperationResult[queueservice.StatusChanged, queueservice.StatusChangeRejected], error) {
	if f.ChangeStatusFunc != nil {
		return f.ChangeStatusFunc(ctx, hostID, signupID, target)
	}
	return results.OperationResult[queueservice.StatusChanged, queueservice.StatusChangeRejected]{}, nil
}

func (f *FakeQueueService) ReorderQueue(ctx context.Context, hostID string, eventID uuid.UUID, orderedIDs []uuid.UUID) (results.OperationResult[queueservice.QueueReordered, queueservice.ReorderRejected], error) {
	if f.ReorderQueueFunc != nil {
		return f.ReorderQueueFunc(ctx, hostID, eventID, orderedIDs)
	}
	return results.OperationResult[queueservice.QueueReordered, queueservice.ReorderRejected]{}, nil
}

func (f *FakeQueueService) RemoveSignup(ctx context.Context, hostID string, signupID uuid.UUID) (results.OperationResult[queueservice.SignupRemoved, queueservice.RemoveRejected], error) {
	if f.RemoveSignupFunc != nil {
		return f.RemoveSignupFunc(ctx, hostID, signupID)
	}
	return results.OperationResult[queueservice.SignupRemoved, queueservice.RemoveRejected]{}, nil
}

func (f *FakeQueueService) ActiveQueue(ctx context.Context, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	if f.ActiveQueueFunc != nil {
		return f.ActiveQueueFunc(ctx, eventID)
	}
	return nil, nil
}

func (f *FakeQueueService) History(ctx context.Context, hostID string, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	if f.HistoryFunc != nil {
		return f.HistoryFunc(ctx, hostID, eventID)
	}
	return nil, nil
}

func (f *FakeQueueService) ExportHistory(ctx context.Context, hostID string, eventID uuid.UUID) ([]byte, error) {
	if f.ExportHistoryFunc != nil {
		return f.ExportHistoryFunc(ctx, hostID, eventID)
	}
	return nil, nil
}

func (f *FakeQueueService) NormalizeEvent(ctx context.Context, eventID uuid.UUID) (bool, error) {
	if f.NormalizeEventFunc != nil {
		return f.NormalizeEventFunc(ctx, eventID)
	}
	return false, nil
}

var _ queueservice.Service = (*FakeQueueService)(nil)

// memoryCache is an in-process Cache for asserting read-through behavior.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

var _ cache.Cache = (*memoryCache)(nil)

// capturingPublisher records published topics.
type capturingPublisher struct {
	topics []string
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.topics = append(p.topics, topic)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

var _ message.Publisher = (*capturingPublisher)(nil)

func newTestQueueHandlers(service queueservice.Service, c cache.Cache) *QueueHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := NewNotifier(nil, c, logger)
	return NewQueueHandlers(service, notifier, c, 15*time.Second, logger)
}
