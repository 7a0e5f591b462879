package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/middleware/metrics"
	"github.com/linkboard-dev/linkboard/internal/middleware/ratelimiter"
	"github.com/linkboard-dev/linkboard/internal/setup"
)

// New creates and configures the router with all routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		// Identity collaborator entry point; not session-authenticated.
		r.Post("/session", h.CreateSession)

		// Everything below resolves an identity and derives roles per
		// request; handlers do their own role gating.
		r.Group(func(r chi.Router) {
			r.Use(mw.Identity(deps.Sessions))
			r.Use(mw.RateLimit(ratelimiter.PerMinute100(), mw.EmailOrIP))
			r.Use(mw.Roles(deps.Roles))

			r.Get("/whoami", h.Whoami)

			r.Get("/posts", h.Feed)
			r.Post("/posts", h.SharePost)
			r.Delete("/posts/{id}", h.DeletePost)

			r.Post("/statistics", h.RecordStatistic)

			r.Get("/invites", h.MyInvites)
			r.Post("/invites/{id}/consume", h.ConsumeInvite)
		})
	})

	// Preflight requests for unknown paths should not 404.
	r.MethodFunc(http.MethodOptions, "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
