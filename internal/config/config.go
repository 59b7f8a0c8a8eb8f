package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	// Server
	Port            string        `env:"PORT" envDefault:"8001"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,required"`

	// NATS
	// Leave NATS_URL empty and NATS_EMBEDDED unset to run without events.
	NatsURL      string `env:"NATS_URL"`
	NatsEmbedded bool   `env:"NATS_EMBEDDED" envDefault:"false"`
	NatsStoreDir string `env:"NATS_STORE_DIR" envDefault:"./data/nats"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Admin token guarding project uploads and the contact inbox.
	// Empty leaves those routes open.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Seed file applied when the projects table is empty.
	SeedFile string `env:"SEED_FILE"`

	// SMTP notifications for contact messages
	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string `env:"SMTP_USER"`
	SMTPPass  string `env:"SMTP_PASS"`
	SMTPFrom  string `env:"SMTP_FROM"`
	ContactTo string `env:"CONTACT_TO"`

	// Contact form rate limiting, per client IP
	ContactRatePerSecond float64 `env:"CONTACT_RATE_PER_SECOND" envDefault:"0.2"`
	ContactBurst         int     `env:"CONTACT_BURST" envDefault:"3"`
}

// EventsEnabled reports whether the server should connect to NATS.
func (c *Config) EventsEnabled() bool {
	return c.NatsEmbedded || c.NatsURL != ""
}

// MailerEnabled reports whether contact notifications can be sent.
func (c *Config) MailerEnabled() bool {
	return c.SMTPHost != "" && c.ContactTo != ""
}

// MailFrom is the envelope sender for notifications. It falls back to the
// SMTP user, then to the recipient.
func (c *Config) MailFrom() string {
	switch {
	case c.SMTPFrom != "":
		return c.SMTPFrom
	case c.SMTPUser != "":
		return c.SMTPUser
	}
	return c.ContactTo
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
