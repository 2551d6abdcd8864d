package queueservice

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/observability"
)

// ------------------------
// Fake Signup Repo
// ------------------------

// FakeSignupRepository provides a programmable stub for the queuedb.Repository interface.
type FakeSignupRepository struct {
	trace []string

	InsertFunc               func(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error
	GetByIDFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*queuedomain.Signup, error)
	ListByEventFunc          func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)
	ListQueuedFunc           func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)
	ListActiveFunc           func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)
	ListPerformingFunc       func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error)
	UpdateFunc               func(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error
	ShiftQueuedPositionsFunc func(ctx context.Context, db bun.IDB, eventID uuid.UUID, fromPosition int) error
	ApplyPositionsFunc       func(ctx context.Context, db bun.IDB, eventID uuid.UUID, updates []queuedb.PositionUpdate) error
	ZeroPositionsFunc        func(ctx context.Context, db bun.IDB, ids []uuid.UUID) error
	DeleteFunc               func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListDriftedEventIDsFunc  func(ctx context.Context, db bun.IDB, limit int) ([]uuid.UUID, error)
}

// NewFakeSignupRepository initializes a new FakeSignupRepository with an empty trace.
func NewFakeSignupRepository() *FakeSignupRepository {
	return &FakeSignupRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSignupRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSignupRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSignupRepository) Insert(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, signup)
	}
	return nil
}

func (f *FakeSignupRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*queuedomain.Signup, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, queuedb.ErrNotFound
}

func (f *FakeSignupRepository) ListByEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	f.record("ListByEvent")
	if f.ListByEventFunc != nil {
		return f.ListByEventFunc(ctx, db, eventID)
	}
	return nil, nil
}

func (f *FakeSignupRepository) ListQueued(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	f.record("ListQueued")
	if f.ListQueuedFunc != nil {
		return f.ListQueuedFunc(ctx, db, eventID)
	}
	return nil, nil
}

func (f *FakeSignupRepository) ListActive(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	f.record("ListActive")
	if f.ListActiveFunc != nil {
		return f.ListActiveFunc(ctx, db, eventID)
	}
	return nil, nil
}

func (f *FakeSignupRepository) ListPerforming(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]queuedomain.Signup, error) {
	f.record("ListPerforming")
	if f.ListPerformingFunc != nil {
		return f.ListPerformingFunc(ctx, db, eventID)
	}
	return nil, nil
}

func (f *FakeSignupRepository) Update(ctx context.Context, db bun.IDB, signup *queuedomain.Signup) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, signup)
	}
	return nil
}

func (f *FakeSignupRepository) ShiftQueuedPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, fromPosition int) error {
	f.record("ShiftQueuedPositions")
	if f.ShiftQueuedPositionsFunc != nil {
		return f.ShiftQueuedPositionsFunc(ctx, db, eventID, fromPosition)
	}
	return nil
}

func (f *FakeSignupRepository) ApplyPositions(ctx context.Context, db bun.IDB, eventID uuid.UUID, updates []queuedb.PositionUpdate) error {
	f.record("ApplyPositions")
	if f.ApplyPositionsFunc != nil {
		return f.ApplyPositionsFunc(ctx, db, eventID, updates)
	}
	return nil
}

func (f *FakeSignupRepository) ZeroPositions(ctx context.Context, db bun.IDB, ids []uuid.UUID) error {
	f.record("ZeroPositions")
	if f.ZeroPositionsFunc != nil {
		return f.ZeroPositionsFunc(ctx, db, ids)
	}
	return nil
}

func (f *FakeSignupRepository) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeSignupRepository) ListDriftedEventIDs(ctx context.Context, db bun.IDB, limit int) ([]uuid.UUID, error) {
	f.record("ListDriftedEventIDs")
	if f.ListDriftedEventIDsFunc != nil {
		return f.ListDriftedEventIDsFunc(ctx, db, limit)
	}
	return nil, nil
}

var _ queuedb.Repository = (*FakeSignupRepository)(nil)

// ------------------------
// Fake Authorizer / Event Gate
// ------------------------

// FakeAuthorizer allows every write unless Err is set.
type FakeAuthorizer struct {
	Err error
}

func (f *FakeAuthorizer) AuthorizeQueueWrite(ctx context.Context, hostID string, eventID uuid.UUID) error {
	return f.Err
}

var _ Authorizer = (*FakeAuthorizer)(nil)

// FakeEventGate reports every event open unless Err is set.
type FakeEventGate struct {
	Err error
}

func (f *FakeEventGate) SignupOpen(ctx context.Context, db bun.IDB, eventID uuid.UUID) error {
	return f.Err
}

var _ EventGate = (*FakeEventGate)(nil)

// ------------------------
// Service construction
// ------------------------

// newTestService wires a QueueService around the fakes with no database, so
// runInTx passes straight through.
func newTestService(repo *FakeSignupRepository, authorizer *FakeAuthorizer, gate *FakeEventGate) *QueueService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewQueueService(repo, nil, authorizer, gate, logger, &observability.NoOpMetrics{}, tracer)
}
