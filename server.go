package mailblaster

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/handlers"
	"github.com/ragavan2104/mailblaster/middlewares"
	"github.com/ragavan2104/mailblaster/pkg/health"
	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

// Paths the access log skips.
var quietPaths = []string{"/health/live", "/health/ready", "/metrics"}

// APIConfig holds the presentation settings of the HTTP API.
type APIConfig struct {
	Started     time.Time
	Logger      *slog.Logger
	Environment string
	CORSOrigin  string
	Development bool
}

// Services are the domain dependencies behind the routes.
// Metrics and Checks are optional.
type Services struct {
	Accounts   handlers.AccountService
	Dispatcher handlers.Dispatcher
	History    handlers.HistoryStore
	Tokens     *jwt.Service
	Metrics    http.Handler
	Checks     health.Checks
}

// NewAPI assembles the MailBlaster HTTP API.
//
// Every protected route shares one JWT middleware parsing accounts.Claims.
func NewAPI(cfg APIConfig, svc Services) *App {
	protect := middlewares.JWT[accounts.Claims](svc.Tokens)

	started := cfg.Started
	if started.IsZero() {
		started = time.Now()
	}

	opts := []Option{
		WithCustomLogger(cfg.Logger),
		WithMiddleware(
			middlewares.CORS(middlewares.CORSFromOrigins(cfg.CORSOrigin)...),
			middlewares.RequestID(),
			middlewares.AccessLog(quietPaths...),
			middlewares.Recover(),
		),
		WithErrorHandler(handlers.ErrorHandler(cfg.Development)),
		WithNotFoundHandler(handlers.NotFound),
		WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		WithHandlers(
			handlers.NewInfo(cfg.Environment, started),
			handlers.NewAuth(svc.Accounts, protect),
			handlers.NewSendMail(svc.Dispatcher, protect),
			handlers.NewHistory(svc.History, protect),
		),
	}

	checks := make([]HealthOption, 0, len(svc.Checks))
	for name, check := range svc.Checks {
		checks = append(checks, WithReadinessCheck(name, check))
	}
	opts = append(opts, WithHealthChecks(checks...))

	if svc.Metrics != nil {
		opts = append(opts, WithMount("/metrics", svc.Metrics))
	}

	return New(opts...)
}
