package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ragavan2104/mailblaster/internal"
)

// AccessLog logs one record per request after the response is written.
// 5xx responses log at error level, 4xx at warn.
func AccessLog(skipPaths ...string) internal.Middleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, ok := skip[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = http.StatusInternalServerError
				if he := internal.AsHTTPError(err); he != nil {
					status = he.Code
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("elapsed", time.Since(start)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request completed", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request completed", attrs...)
			default:
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
