package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/open-mic-club/encore/internal/attr"
)

const shutdownTimeout = 15 * time.Second

// Start runs the HTTP server and, when enabled, the integrity sweep. It
// blocks until the context is cancelled or a termination signal arrives,
// then shuts both down gracefully.
func (app *App) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              app.Cfg.HTTP.Addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if app.sweep != nil {
		if err := app.sweep.Start(ctx); err != nil {
			return err
		}
		app.Logger.Info("Queue integrity sweep started",
			attr.String("interval", app.Cfg.Sweep.Interval.String()),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if app.sweep != nil {
		if err := app.sweep.Stop(shutdownCtx); err != nil {
			app.Logger.Error("Sweep shutdown failed", attr.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
