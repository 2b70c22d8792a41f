package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

const authRealm = "leads"

type Handlers struct {
	Lead   *handlers.LeadHandler
	Health *handlers.HealthHandler
}

// New builds the HTTP surface: public submission, operator-only list/advance,
// health and metrics.
func New(cfg *config.Config, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", h.Lead.Submit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth(authRealm, cfg.Operator))
			r.Get("/", h.Lead.List)
			r.Patch("/{id}", h.Lead.Advance)
		})
	})

	return r
}
