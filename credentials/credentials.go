// Package credentials reads the outbound mail account from the database.
package credentials

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ragavan2104/mailblaster/pkg/db"
)

// Config controls the startup load.
type Config struct {
	RetryAttempts int           `env:"CREDENTIALS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"CREDENTIALS_RETRY_INTERVAL" envDefault:"2s"`
}

// Credentials is the relay account. Username is always the sender address.
// Password is the SMTP password or the Resend API key; SES ignores it.
type Credentials struct {
	Username string
	Password string
}

// LogValue keeps the secret out of logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", c.Username))
}

// Loader returns the current credentials.
type Loader interface {
	Load(ctx context.Context) (Credentials, error)
}

// Store reads the mail_credentials table.
type Store struct {
	db db.Querier
}

// NewStore creates a Store.
func NewStore(q db.Querier) *Store {
	return &Store{db: q}
}

const loadQuery = `SELECT username, password FROM mail_credentials ORDER BY id LIMIT 1`

// Load returns the first row. An empty table is ErrNoCredentials.
func (s *Store) Load(ctx context.Context) (Credentials, error) {
	var c Credentials
	err := s.db.QueryRow(ctx, loadQuery).Scan(&c.Username, &c.Password)
	switch {
	case db.IsNotFound(err):
		return Credentials{}, ErrNoCredentials
	case err != nil:
		return Credentials{}, errors.Join(ErrLoadFailed, err)
	case c.Username == "" || c.Password == "":
		return Credentials{}, ErrIncomplete
	}
	return c, nil
}

// LoadWithRetry calls l.Load up to cfg.RetryAttempts times, doubling the wait
// after each failure. log may be nil.
func LoadWithRetry(ctx context.Context, l Loader, cfg Config, log *slog.Logger) (Credentials, error) {
	attempts := max(cfg.RetryAttempts, 1)
	wait := cfg.RetryInterval

	var lastErr error
	for i := range attempts {
		c, err := l.Load(ctx)
		if err == nil {
			return c, nil
		}
		lastErr = err

		if log != nil {
			log.WarnContext(ctx, "mail credentials load failed",
				slog.Int("attempt", i+1),
				slog.Int("max_attempts", attempts),
				slog.Any("error", err),
			)
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return Credentials{}, errors.Join(lastErr, ctx.Err())
		case <-time.After(wait):
		}
		wait *= 2
	}
	return Credentials{}, lastErr
}
