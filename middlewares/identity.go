package middlewares

import (
	"context"
	"log/slog"

	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/pkg/logger"
)

// Identity is implemented by claims that name the caller.
type Identity interface {
	Identity() string
}

// AdminExtractor adds "admin" to log records of authenticated requests.
func AdminExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(internal.JWTClaimsKey{}).(Identity); ok && v.Identity() != "" {
			return slog.String("admin", v.Identity()), true
		}
		return slog.Attr{}, false
	}
}
