package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/campaigns"
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
	"github.com/ragavan2104/mailblaster/pkg/db"
	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/relay"
)

// Client-facing messages.
const (
	msgInternal           = "Internal server error"
	msgDatabaseDown       = "Database connection failed"
	msgDatabaseDownDetail = "Unable to connect to the database. Please try again later."
	msgRelayDown          = "Email service not available"
	msgRelayDownDetail    = "Mail credentials could not be loaded. Please check the database connection."
)

// errorMapping turns a domain sentinel into an HTTP status and message.
type errorMapping struct {
	target  error
	code    int
	message string
	detail  string
}

// Order matters: the first match wins.
var errorMappings = []errorMapping{
	{accounts.ErrMissingFields, http.StatusBadRequest, "Username, password, and email are required", ""},
	{accounts.ErrMissingLogin, http.StatusBadRequest, "Username and password are required", ""},
	{accounts.ErrUsernameTaken, http.StatusBadRequest, "Admin already exists", ""},
	{accounts.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials", ""},
	{accounts.ErrAdminNotFound, http.StatusNotFound, "Admin not found", ""},
	{campaigns.ErrMessageRequired, http.StatusBadRequest, "Message is required", ""},
	{campaigns.ErrRecipientsRequired, http.StatusBadRequest, "Email list is required", ""},
	{campaigns.ErrSingleFieldsMissing, http.StatusBadRequest, "Message and email are required", ""},
	{campaigns.ErrRecordNotFound, http.StatusNotFound, "Email record not found", ""},
	{campaigns.ErrRelayUnavailable, http.StatusServiceUnavailable, msgRelayDown, msgRelayDownDetail},
	{relay.ErrNotReady, http.StatusServiceUnavailable, msgRelayDown, msgRelayDownDetail},
	{campaigns.ErrStorageUnavailable, http.StatusServiceUnavailable, msgDatabaseDown, msgDatabaseDownDetail},
	{accounts.ErrStorageUnavailable, http.StatusServiceUnavailable, msgDatabaseDown, msgDatabaseDownDetail},
	{mailer.ErrSendFailed, http.StatusInternalServerError, "Failed to send email", ""},
}

// toHTTPError maps err onto an *internal.HTTPError. Unknown errors become 500.
func toHTTPError(err error) *internal.HTTPError {
	if he := internal.AsHTTPError(err); he != nil {
		return he
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return internal.NewHTTPError(m.code, m.message, internal.WithDetail(m.detail), internal.WithError(err))
		}
	}
	if _, ok := middlewares.AsTimeoutError(err); ok {
		return internal.NewHTTPError(http.StatusGatewayTimeout, "Request timeout", internal.WithError(err))
	}
	if db.IsUnavailable(err) {
		return internal.NewHTTPError(http.StatusServiceUnavailable, msgDatabaseDown,
			internal.WithDetail(msgDatabaseDownDetail), internal.WithError(err))
	}
	return internal.ErrInternal(msgInternal, internal.WithError(err))
}

// ErrorHandler renders every error as {error, message?, details?, requestId?}.
// details carries the underlying cause and is only included when
// development is true.
func ErrorHandler(development bool) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		he := toHTTPError(err)

		if he.Code >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", he.Code),
				slog.Any("error", err),
			)
		} else {
			c.LogDebug("request rejected",
				slog.Int("status", he.Code),
				slog.Any("error", err),
			)
		}

		body := map[string]any{"error": he.Message}
		for k, v := range he.Extra {
			body[k] = v
		}
		if he.Detail != "" {
			body["message"] = he.Detail
		}
		if development && he.Err != nil {
			body["details"] = he.Err.Error()
		}
		if id := middlewares.GetRequestID(c); id != "" {
			body["requestId"] = id
		} else if he.RequestID != "" {
			body["requestId"] = he.RequestID
		}
		return c.JSON(he.Code, body)
	}
}
