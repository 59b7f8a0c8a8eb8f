package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/filipexyz/folio/internal/audit"
	"github.com/filipexyz/folio/internal/config"
	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/events"
	"github.com/filipexyz/folio/internal/handler"
	"github.com/filipexyz/folio/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the storage the API serves from.
type Store interface {
	handler.ProjectStore
	handler.ContactStore
	handler.AuditStore
}

// deps are the collaborators behind the routes. Publisher and Events are
// nil when the server runs without NATS.
type deps struct {
	store     Store
	db        handler.Pinger
	publisher handler.EventPublisher
	events    handler.ConnChecker
	audit     *audit.Logger
}

// Server is the HTTP server.
type Server struct {
	cfg         *config.Config
	deps        deps
	rateLimiter *middleware.RateLimiter
	server      *http.Server
}

// New creates a new Server. ev may be nil to run without events.
func New(cfg *config.Config, pool *pgxpool.Pool, ev *events.Client) *Server {
	queries := db.New(pool)
	d := deps{
		store: queries,
		db:    pool,
		audit: audit.New(queries, 256),
	}
	if ev != nil {
		d.publisher = events.NewPublisher(ev.JetStream())
		d.events = ev
	} else {
		slog.Info("events disabled, running without NATS")
	}
	return newServer(cfg, d)
}

func newServer(cfg *config.Config, d deps) *Server {
	rlCfg := middleware.DefaultRateLimitConfig()
	if cfg.ContactRatePerSecond > 0 {
		rlCfg.RatePerSecond = cfg.ContactRatePerSecond
	}
	if cfg.ContactBurst > 0 {
		rlCfg.Burst = cfg.ContactBurst
	}

	if d.audit == nil {
		d.audit = audit.New(nil, 0)
	}

	s := &Server{
		cfg:         cfg,
		deps:        d,
		rateLimiter: middleware.NewRateLimiter(rlCfg),
	}

	s.server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}

	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set - project uploads and the contact inbox are open")
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Serve starts the HTTP server on the given listener.
func (s *Server) Serve(l net.Listener) error {
	return s.server.Serve(l)
}

// Shutdown drains in-flight requests, stops background work and flushes
// queued audit entries.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.rateLimiter.Stop()
	s.deps.audit.Close()
	return err
}
