package server

import (
	"net/http"

	"github.com/filipexyz/folio/internal/audit"
	"github.com/filipexyz/folio/internal/handler"
	"github.com/filipexyz/folio/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(audit.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Retry-After", "X-Request-ID"},
		MaxAge:         300,
	}))

	healthHandler := handler.NewHealthHandler(s.deps.db, s.deps.events)
	projectHandler := handler.NewProjectHandler(s.deps.store, s.deps.publisher, s.deps.audit)
	contactHandler := handler.NewContactHandler(s.deps.store, s.deps.publisher, s.deps.audit)
	auditHandler := handler.NewAuditHandler(s.deps.store)

	adminOnly := middleware.AdminAuth(s.cfg.AdminToken)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ready", healthHandler.Ready)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.With(adminOnly).Post("/", projectHandler.Create)
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(middleware.RateLimit(s.rateLimiter)).Post("/", contactHandler.Submit)
			r.With(adminOnly).Get("/", contactHandler.List)
		})

		r.With(adminOnly).Get("/audit", auditHandler.List)
	})

	return r
}
