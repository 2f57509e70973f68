// Package relay owns the outbound mailer. The mailer exists only once mail
// credentials have been loaded; until then every send is refused.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ragavan2104/mailblaster/credentials"
	"github.com/ragavan2104/mailblaster/pkg/health"
	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

// Config holds relay settings.
type Config struct {
	Credentials      credentials.Config
	SuperviseSchedule string `env:"RELAY_SUPERVISE_SCHEDULE" envDefault:"@every 1m"`
}

// Relay is safe for concurrent use.
type Relay struct {
	current atomic.Pointer[mailer.Mailer]
	loader  credentials.Loader
	build   Factory
	logger  *slog.Logger
	cfg     Config

	mu   sync.Mutex
	cron *cron.Cron
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Relay that is not ready until Init or the supervisor
// loads credentials.
func New(loader credentials.Loader, build Factory, cfg Config, opts ...Option) *Relay {
	r := &Relay{
		loader: loader,
		build:  build,
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init loads credentials with backoff. Missing credentials are logged, not
// returned: the service starts and the supervisor keeps trying. Only a
// mailer that cannot be built from loaded credentials fails startup.
func (r *Relay) Init(ctx context.Context) error {
	creds, err := credentials.LoadWithRetry(ctx, r.loader, r.cfg.Credentials, r.logger)
	if err != nil {
		r.logger.WarnContext(ctx, "mail relay not ready, sends will be refused", slog.Any("error", err))
		return nil
	}
	return r.install(ctx, creds)
}

// Ready reports whether a mailer is installed.
func (r *Relay) Ready() bool {
	return r.current.Load() != nil
}

// Prepare composes an Email with the installed mailer.
func (r *Relay) Prepare(msg mailer.Message) (*mailer.Email, error) {
	m := r.current.Load()
	if m == nil {
		return nil, ErrNotReady
	}
	return m.Prepare(msg)
}

// Deliver sends a copy of email to one address.
func (r *Relay) Deliver(ctx context.Context, email *mailer.Email, to string) (string, error) {
	m := r.current.Load()
	if m == nil {
		return "", ErrNotReady
	}
	return m.Deliver(ctx, email, to)
}

// Healthcheck reports unhealthy until credentials are loaded.
func (r *Relay) Healthcheck() health.CheckFunc {
	return func(context.Context) error {
		if !r.Ready() {
			return ErrNotReady
		}
		return nil
	}
}

// Supervise starts a cron job that retries the credential load on the
// configured schedule until it succeeds. It is a no-op once ready.
func (r *Relay) Supervise(ctx context.Context) error {
	if r.Ready() {
		return nil
	}

	log := cronLogger{r.logger}
	c := cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		cron.WithLogger(log),
	)

	base := context.WithoutCancel(ctx)
	var entry cron.EntryID
	entry, err := c.AddFunc(r.cfg.SuperviseSchedule, func() {
		if r.Ready() || r.retry(base) {
			c.Remove(entry)
		}
	})
	if err != nil {
		return errors.Join(ErrBadSchedule, err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	r.logger.InfoContext(ctx, "mail relay supervisor started", slog.String("schedule", r.cfg.SuperviseSchedule))
	return nil
}

// Shutdown returns a hook that stops the supervisor and waits for a running
// attempt to finish.
func (r *Relay) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		r.mu.Lock()
		c := r.cron
		r.cron = nil
		r.mu.Unlock()
		if c == nil {
			return nil
		}

		select {
		case <-c.Stop().Done():
			return nil
		case <-ctx.Done():
			return errors.Join(ErrStopTimedOut, ctx.Err())
		}
	}
}

// retry makes a single load attempt and reports whether the relay is ready.
func (r *Relay) retry(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	creds, err := r.loader.Load(ctx)
	if err != nil {
		r.logger.DebugContext(ctx, "mail credentials still unavailable", slog.Any("error", err))
		return false
	}
	if err := r.install(ctx, creds); err != nil {
		r.logger.ErrorContext(ctx, "mail relay install failed", slog.Any("error", err))
		return false
	}
	return true
}

func (r *Relay) install(ctx context.Context, creds credentials.Credentials) error {
	m, err := r.build(ctx, creds)
	if err != nil {
		return err
	}
	r.current.Store(m)
	r.logger.InfoContext(ctx, "mail relay ready", slog.Any("account", creds))
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, append([]any{slog.String("component", "relay-supervisor")}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{slog.String("component", "relay-supervisor"), slog.Any("error", err)}, keysAndValues...)...)
}
