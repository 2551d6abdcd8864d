// Package app wires the modules together and runs the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/riverqueue/river"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	authhandlers "github.com/open-mic-club/encore/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/open-mic-club/encore/app/modules/auth/infrastructure/jwt"
	eventservice "github.com/open-mic-club/encore/app/modules/event/application"
	eventhandlers "github.com/open-mic-club/encore/app/modules/event/infrastructure/handlers"
	eventdb "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories"
	queueservice "github.com/open-mic-club/encore/app/modules/queue/application"
	queuehandlers "github.com/open-mic-club/encore/app/modules/queue/infrastructure/handlers"
	queuejobs "github.com/open-mic-club/encore/app/modules/queue/infrastructure/jobs"
	queuedb "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories"
	"github.com/open-mic-club/encore/config"
	"github.com/open-mic-club/encore/internal/cache"
	"github.com/open-mic-club/encore/internal/db/bundb"
	"github.com/open-mic-club/encore/internal/eventbus"
	"github.com/open-mic-club/encore/internal/observability"
)

// App holds the wired application.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger

	db        *bun.DB
	pool      *pgxpool.Pool
	redis     *redis.Client
	publisher message.Publisher

	QueueService queueservice.Service
	EventService eventservice.Service

	queueHandlers *queuehandlers.QueueHandlers
	eventHandlers *eventhandlers.EventHandlers
	authHandlers  *authhandlers.AuthHandlers
	jwtProvider   authjwt.Provider

	sweep *river.Client[pgx.Tx]
}

// NewApp initializes the application from the loaded configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.Environment)

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	metrics := observability.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	var projectionCache cache.Cache = cache.NoOp{}
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		projectionCache = cache.NewRedisCache(redisClient)
	}

	var publisher message.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = eventbus.NewPublisher(cfg.NATS.URL, watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
	}

	eventRepo := eventdb.NewEventRepository()
	signupRepo := queuedb.NewSignupRepository()

	eventSvc := eventservice.NewEventService(eventRepo, db, projectionCache, cfg.Redis.CacheTTL, logger, metrics)
	gate := eventservice.NewGate(eventRepo, db)
	queueSvc := queueservice.NewQueueService(
		signupRepo, db, gate, gate, logger, metrics, otel.Tracer("queueservice"),
	)

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)
	notifier := queuehandlers.NewNotifier(publisher, projectionCache, logger)

	app := &App{
		Cfg:           cfg,
		Logger:        logger,
		db:            db,
		redis:         redisClient,
		publisher:     publisher,
		QueueService:  queueSvc,
		EventService:  eventSvc,
		queueHandlers: queuehandlers.NewQueueHandlers(queueSvc, notifier, projectionCache, cfg.Redis.CacheTTL, logger),
		eventHandlers: eventhandlers.NewEventHandlers(eventSvc, logger),
		authHandlers:  authhandlers.NewAuthHandlers(jwtProvider, cfg.JWT.DefaultTTL, logger),
		jwtProvider:   jwtProvider,
	}

	if cfg.Sweep.Enabled {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool for the sweep: %w", err)
		}
		worker := queuejobs.NewSweepWorker(queueSvc, signupRepo, db, logger)
		sweep, err := queuejobs.NewSweepClient(pool, worker, cfg.Sweep.Interval)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create sweep client: %w", err)
		}
		app.pool = pool
		app.sweep = sweep
	}

	return app, nil
}

// DB returns the underlying database handle.
func (app *App) DB() *bun.DB {
	return app.db
}

// Close releases every external connection the app holds.
func (app *App) Close() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.Logger.Error("Failed to close publisher", slog.Any("error", err))
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis client", slog.Any("error", err))
		}
	}
	if app.pool != nil {
		app.pool.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.Logger.Error("Failed to close database", slog.Any("error", err))
		}
	}
}
