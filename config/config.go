// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the minimum accepted length of JWT_SECRET.
const MinJWTSecretLength = 32

// knownWeakSecrets are example values that must never reach a running server.
var knownWeakSecrets = []string{
	"your-secret-key-change-this-in-production",
	"change-me-to-a-long-random-jwt-secret-value",
}

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	PageSize int `env:"PAGE_SIZE" envDefault:"10"`

	// Requests per second and burst allowed per client IP on /v1/auth/.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" envDefault:"1"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"5"`

	Database DatabaseConfig
	Mail     MailConfig

	// Optional superuser created at startup when the username is free.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type MailConfig struct {
	Backend  string `env:"MAIL_BACKEND" envDefault:"console"`
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"noreply@yamdb.local"`
	// TokenURL is quoted in the confirmation email.
	TokenURL string `env:"TOKEN_URL" envDefault:"http://127.0.0.1:8080/v1/auth/token/"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// BootstrapAdmin reports whether a superuser should be ensured at startup.
func (c Config) BootstrapAdmin() bool {
	return c.AdminUsername != "" && c.AdminEmail != ""
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	for _, weak := range knownWeakSecrets {
		if c.JWTSecret == weak {
			return errors.New("JWT_SECRET is a published example value")
		}
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}

	if c.AdminUsername != "" && (c.AdminEmail == "" || c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required with ADMIN_USERNAME")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.Database.Driver)
	}

	switch strings.ToLower(c.Mail.Backend) {
	case "console":
	case "smtp":
		if c.Mail.Host == "" {
			return errors.New("SMTP_HOST is required when MAIL_BACKEND=smtp")
		}
	default:
		return fmt.Errorf("MAIL_BACKEND: unsupported backend %q", c.Mail.Backend)
	}
	return nil
}
