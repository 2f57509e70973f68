// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/campaigns"
	"github.com/ragavan2104/mailblaster/pkg/db"
	"github.com/ragavan2104/mailblaster/pkg/logger"
	"github.com/ragavan2104/mailblaster/pkg/redis"
	"github.com/ragavan2104/mailblaster/relay"
)

// DefaultJWTSecret is the placeholder secret. Running outside development
// with it logs a warning.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// EnvDevelopment is the APP_ENV value that exposes error details.
const EnvDevelopment = "development"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full server configuration. Each package owns its section.
type Config struct {
	Port            int           `env:"PORT" envDefault:"3000"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"*"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Log        logger.SentryConfig
	Database   db.Config
	Redis      redis.Config
	Providers  relay.ProviderConfig
	Relay      relay.Config
	Store      campaigns.Config
	Dispatcher campaigns.DispatcherConfig
	Accounts   accounts.Config
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("load .env: %w", err))
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Development reports whether error details may be shown to clients.
func (c Config) Development() bool {
	return c.AppEnv == EnvDevelopment
}

// DefaultSecret reports whether the placeholder JWT secret is in use.
func (c Config) DefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.Dispatcher.Concurrency < 1 {
		return fmt.Errorf("MAILER_CONCURRENCY must be at least 1, got %d", c.Dispatcher.Concurrency)
	}
	return nil
}
