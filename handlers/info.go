package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ragavan2104/mailblaster/internal"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

const documentationURL = "https://github.com/ragavan2104/mail-sender"

// AvailableEndpoints is listed in 404 and 405 responses.
var AvailableEndpoints = []string{
	"GET /",
	"GET /health",
	"POST /register",
	"POST /login",
	"GET /me",
	"POST /sendmail",
	"POST /sendmail/single",
	"GET /email-history",
	"GET /email-history/{id}",
	"GET /dashboard-stats",
}

// Info serves the API description and the status probe.
type Info struct {
	started     time.Time
	now         func() time.Time
	environment string
}

// NewInfo creates an Info handler. Uptime counts from started.
func NewInfo(environment string, started time.Time) *Info {
	return &Info{environment: environment, started: started, now: time.Now}
}

func (h *Info) Routes(r internal.Router) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
}

func (h *Info) root(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "MailBlaster Pro API Server",
		"version":   Version,
		"status":    "Running",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
		"endpoints": map[string]any{
			"health": "/health",
			"auth": map[string]string{
				"register": "POST /register",
				"login":    "POST /login",
				"me":       "GET /me",
			},
			"email": map[string]string{
				"sendBulk":   "POST /sendmail",
				"sendSingle": "POST /sendmail/single",
				"history":    "GET /email-history",
				"stats":      "GET /dashboard-stats",
			},
		},
		"documentation": documentationURL,
	})
}

func (h *Info) health(c internal.Context) error {
	now := h.now()
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "OK",
		"timestamp":   now.UTC().Format(time.RFC3339Nano),
		"uptime":      now.Sub(h.started).Seconds(),
		"environment": h.environment,
	})
}

// NotFound answers unknown routes.
func NotFound(c internal.Context) error {
	return routeError(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(c internal.Context) error {
	return routeError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func routeError(c internal.Context, code int, title string) error {
	return internal.NewHTTPError(code, title,
		internal.WithDetail(fmt.Sprintf("Route %s not found", c.Request().URL.RequestURI())),
		internal.WithField("availableEndpoints", AvailableEndpoints),
	)
}
