package eventservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/cache"
	"github.com/open-mic-club/encore/internal/observability"
)

// FakeEventRepository provides a programmable stub for the eventdb.Repository interface.
type FakeEventRepository struct {
	trace []string

	InsertFunc        func(ctx context.Context, db bun.IDB, event *eventdomain.Event) error
	GetByIDFunc       func(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error)
	GetByJoinCodeFunc func(ctx context.Context, db bun.IDB, joinCode string) (*eventdomain.Event, error)
	UpdateStatusFunc  func(ctx context.Context, db bun.IDB, id uuid.UUID, status eventdomain.Status) error
	ListByHostFunc    func(ctx context.Context, db bun.IDB, hostID string) ([]eventdomain.Event, error)
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeEventRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEventRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepository) Insert(ctx context.Context, db bun.IDB, event *eventdomain.Event) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, event)
	}
	return nil
}

func (f *FakeEventRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*eventdomain.Event, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) GetByJoinCode(ctx context.Context, db bun.IDB, joinCode string) (*eventdomain.Event, error) {
	f.record("GetByJoinCode")
	if f.GetByJoinCodeFunc != nil {
		return f.GetByJoinCodeFunc(ctx, db, joinCode)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status eventdomain.Status) error {
	f.record("UpdateStatus")
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, db, id, status)
	}
	return nil
}

func (f *FakeEventRepository) ListByHost(ctx context.Context, db bun.IDB, hostID string) ([]eventdomain.Event, error) {
	f.record("ListByHost")
	if f.ListByHostFunc != nil {
		return f.ListByHostFunc(ctx, db, hostID)
	}
	return nil, nil
}

var _ eventdb.Repository = (*FakeEventRepository)(nil)

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

func newTestEventService(repo *FakeEventRepository, c cache.Cache) *EventService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEventService(repo, nil, c, 15*time.Second, logger, &observability.NoOpMetrics{})
}
