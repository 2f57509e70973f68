package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/ragavan2104/mailblaster/internal"
)

// DefaultTimeout bounds short API requests. Campaign routes are not wrapped.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that fails a request with *TimeoutError when
// the handler has not returned within d.
//
// The handler keeps running in its goroutine after the deadline; store and
// relay calls observe cancellation through c.Context().
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}

type timeoutContextKey struct{}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when the route has no timeout.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
