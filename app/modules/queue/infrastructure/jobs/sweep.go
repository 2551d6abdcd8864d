// Package queuejobs runs the periodic queue integrity sweep on river.
package queuejobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
	"github.com/open-mic-club/encore/internal/attr"
)

// defaultSweepBatch bounds how many drifted events one sweep run repairs.
const defaultSweepBatch = 50

// SweepArgs is the job payload for the integrity sweep. The sweep is
// stateless; the payload is empty.
type SweepArgs struct{}

// Kind identifies the job type in the river jobs table.
func (SweepArgs) Kind() string { return "queue_integrity_sweep" }

// SweepWorker scans for events whose queued positions drifted from the
// dense 1..N sequence (or whose inactive rows carry stale positions) and
// renormalizes each one in its own transaction. It repairs anything the
// accepted weak consistency windows let slip.
type SweepWorker struct {
	river.WorkerDefaults[SweepArgs]

	service queueservice.Service
	repo    queuedb.Repository
	db      bun.IDB
	logger  *slog.Logger
	batch   int
}

// NewSweepWorker creates the integrity sweep worker.
func NewSweepWorker(service queueservice.Service, repo queuedb.Repository, db bun.IDB, logger *slog.Logger) *SweepWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SweepWorker{
		service: service,
		repo:    repo,
		db:      db,
		logger:  logger,
		batch:   defaultSweepBatch,
	}
}

// Work runs one sweep pass.
func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepArgs]) error {
	eventIDs, err := w.repo.ListDriftedEventIDs(ctx, w.db, w.batch)
	if err != nil {
		return err
	}
	if len(eventIDs) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Queue integrity sweep found drifted events",
		attr.Int("count", len(eventIDs)),
	)

	repaired := 0
	for _, eventID := range eventIDs {
		changed, err := w.service.NormalizeEvent(ctx, eventID)
		if err != nil {
			w.logger.ErrorContext(ctx, "Sweep normalization failed",
				attr.String("event_id", eventID.String()),
				attr.Error(err),
			)
			continue
		}
		if changed {
			repaired++
		}
	}

	w.logger.InfoContext(ctx, "Queue integrity sweep finished",
		attr.Int("repaired", repaired),
	)
	return nil
}

// NewSweepClient builds a river client that runs the sweep worker on a
// periodic schedule.
func NewSweepClient(pool *pgxpool.Pool, worker *SweepWorker, interval time.Duration) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, worker)

	return river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(interval),
				func() (river.JobArgs, *river.InsertOpts) {
					return SweepArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
}
