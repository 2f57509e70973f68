package middlewares_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/internal"
)

// routes adapts a plain function to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func okHandler(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}

// serve runs req through a kernel app built from opts.
func serve(t *testing.T, req *http.Request, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()
	app := internal.New(opts...)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	b, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(b)
}
