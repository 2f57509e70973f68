package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()
		var got error
		opts := []internal.Option{
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.String(http.StatusInternalServerError, "Internal server error")
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(internal.Context) error { panic("boom") })
			})),
		}

		w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), opts...)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		assert.Equal(t, "boom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
		assert.Equal(t, "panic: boom", pe.Error())
	})

	t.Run("stack capture disabled", func(t *testing.T) {
		t.Parallel()
		var got error
		opts := []internal.Option{
			internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverDisablePrintStack())),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(internal.Context) error { panic(errors.New("db gone")) })
			})),
		}

		serve(t, httptest.NewRequest(http.MethodGet, "/", nil), opts...)
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		assert.Nil(t, pe.Stack)
	})

	t.Run("no panic", func(t *testing.T) {
		t.Parallel()
		opts := []internal.Option{
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithHandlers(routes(func(r internal.Router) { r.GET("/", okHandler) })),
		}
		w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), opts...)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
