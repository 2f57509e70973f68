package middlewares

import (
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

// Messages returned by the JWT middleware.
const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid token"
)

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor sets a custom token extractor chain.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// JWT returns middleware that requires a valid bearer token and stores the
// parsed claims in the request context.
//
// A missing token is 401. A malformed, forged, or expired token is 403.
//
//	r.GET("/me", h.me, middlewares.JWT[accounts.Claims](tokens))
func JWT[T any, PT interface {
	*T
	jwt.Claims
}](svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(internal.FromBearerToken())
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok || token == "" {
				return internal.ErrUnauthorized(MsgTokenRequired)
			}

			claims := PT(new(T))
			if err := svc.Parse(token, claims); err != nil {
				return internal.ErrForbidden(MsgTokenInvalid, internal.WithError(err))
			}

			c.Set(internal.JWTClaimsKey{}, claims)
			return next(c)
		}
	}
}

// GetJWTClaims returns the claims stored by JWT, or nil when the route is
// not protected or T does not match.
func GetJWTClaims[T any](c internal.Context) *T {
	v, _ := c.Get(internal.JWTClaimsKey{}).(*T)
	return v
}
