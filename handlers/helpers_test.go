package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/handlers"
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

const testSecret = "handlers-test-secret-at-least-32-bytes"

func newTokens(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)
	return svc
}

func bearer(t *testing.T, tokens *jwt.Service, id, username string) string {
	t.Helper()
	claims := &accounts.Claims{ID: id, Username: username}
	tokens.Stamp(&claims.StandardClaims)
	token, err := tokens.Generate(claims)
	require.NoError(t, err)
	return "Bearer " + token
}

func protect(tokens *jwt.Service) internal.Middleware {
	return middlewares.JWT[accounts.Claims](tokens)
}

// newApp wires h into a kernel app configured the way the server is.
func newApp(h ...internal.Handler) *internal.App {
	return internal.New(
		internal.WithMiddleware(middlewares.RequestID()),
		internal.WithErrorHandler(handlers.ErrorHandler(false)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHandlers(h...),
	)
}

func do(t *testing.T, app http.Handler, method, target string, payload any, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}
