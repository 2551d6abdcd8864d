package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	authhandlers "github.com/open-mic-club/encore/app/modules/auth/infrastructure/handlers"
)

// Router builds the HTTP routing table. Public endpoints carry the per-IP
// rate limiter; everything that mutates on behalf of a host sits behind the
// bearer-token middleware.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CorrelationID)
	r.Use(authhandlers.CORSMiddleware(nil))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	limiter := authhandlers.NewIPRateLimiter(
		rate.Limit(app.Cfg.RateLimit.RequestsPerSecond),
		app.Cfg.RateLimit.Burst,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/host", app.authHandlers.HandleIssueHostToken)

		// Public guest surface.
		r.Group(func(r chi.Router) {
			r.Use(authhandlers.RateLimitMiddleware(limiter))
			r.Post("/events/{eventID}/signups", app.queueHandlers.HandleInsertSignup)
		})
		r.Get("/events/{eventID}/queue", app.queueHandlers.HandleActiveQueue)
		r.Get("/events/code/{joinCode}", app.eventHandlers.HandleGetEventByCode)

		// Host surface.
		r.Group(func(r chi.Router) {
			r.Use(authhandlers.RequireHost(app.jwtProvider))

			r.Post("/events", app.eventHandlers.HandleCreateEvent)
			r.Get("/events", app.eventHandlers.HandleListEvents)
			r.Get("/events/{eventID}", app.eventHandlers.HandleGetEvent)
			r.Post("/events/{eventID}/close", app.eventHandlers.HandleCloseEvent)
			r.Post("/events/{eventID}/reopen", app.eventHandlers.HandleReopenEvent)

			r.Patch("/signups/{signupID}/status", app.queueHandlers.HandleChangeStatus)
			r.Delete("/signups/{signupID}", app.queueHandlers.HandleRemoveSignup)
			r.Put("/events/{eventID}/queue/order", app.queueHandlers.HandleReorderQueue)
			r.Get("/events/{eventID}/history", app.queueHandlers.HandleHistory)
			r.Get("/events/{eventID}/history/export", app.queueHandlers.HandleExportHistory)
		})
	})

	return r
}
