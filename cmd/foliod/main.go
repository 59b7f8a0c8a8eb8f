package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/filipexyz/folio/internal/config"
	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/events"
	"github.com/filipexyz/folio/internal/mailer"
	"github.com/filipexyz/folio/internal/seed"
	"github.com/filipexyz/folio/internal/server"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logCloser := setupLogging(cfg)
	defer logCloser.Close()

	// Connect to Postgres
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed projects (optional)
	if cfg.SeedFile != "" {
		scfg, err := seed.LoadConfig(cfg.SeedFile)
		if err != nil {
			slog.Error("failed to load seed file", "error", err)
			os.Exit(1)
		}
		n, err := seed.Apply(ctx, db.New(pool), scfg)
		if err != nil {
			slog.Error("failed to seed projects", "error", err)
			os.Exit(1)
		}
		slog.Info("seed applied", "file", cfg.SeedFile, "inserted", n)
	}

	// Start NATS (optional)
	var embedded *events.EmbeddedServer
	var nc *events.Client
	if cfg.EventsEnabled() {
		natsURL := cfg.NatsURL
		if cfg.NatsEmbedded {
			embedded, err = events.StartEmbedded(events.EmbeddedConfig{StoreDir: cfg.NatsStoreDir})
			if err != nil {
				slog.Error("failed to start embedded NATS", "error", err)
				os.Exit(1)
			}
			defer embedded.Shutdown()
			natsURL = embedded.ClientURL()
		}

		nc, err = events.Connect(natsURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		slog.Info("connected to NATS")

		if err := nc.EnsureStream(ctx); err != nil {
			slog.Error("failed to setup JetStream stream", "error", err)
			os.Exit(1)
		}
	}

	// Start the contact mailer (optional)
	mailerCtx, mailerCancel := context.WithCancel(context.Background())
	defer mailerCancel()
	var mailerWG sync.WaitGroup
	switch {
	case nc == nil:
		slog.Info("contact mailer disabled: events are off")
	case !cfg.MailerEnabled():
		slog.Info("contact mailer disabled: SMTP_HOST or CONTACT_TO not set")
	default:
		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
		})
		worker := mailer.NewWorker(nc.Stream(), sender, cfg.MailFrom(), cfg.ContactTo)
		mailerWG.Add(1)
		go func() {
			defer mailerWG.Done()
			if err := worker.Start(mailerCtx); err != nil {
				slog.Error("mailer worker error", "error", err)
			}
		}()
	}

	// Create and start HTTP server
	srv := server.New(cfg, pool, nc)

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	// Graceful shutdown: HTTP first, then the mailer, then NATS and the database
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	mailerCancel()
	mailerWG.Wait()

	slog.Info("shutdown complete")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging installs the default logger. When LOG_FILE is set, logs are
// also written there with rotation.
func setupLogging(cfg *config.Config) io.Closer {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, lj)
		closer = lj
	}

	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
	return closer
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
