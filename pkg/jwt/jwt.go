package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// StandardClaims are the registered claims (exp, iat, sub, ...).
// Embed them in custom claim structs.
type StandardClaims = jwt.RegisteredClaims

// Claims is implemented by every claim struct that embeds StandardClaims.
type Claims = jwt.Claims

// NewNumericDate converts t into a claim timestamp.
func NewNumericDate(t time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(t)
}

// Service signs and verifies HS256 tokens with a shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the lifetime applied by Expiry. Defaults to 24 hours.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock overrides the time source. Tests use it to mint expired tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewFromString creates a Service from a secret string.
func NewFromString(secret string, opts ...Option) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	s := &Service{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Stamp fills the issued-at and expiry claims relative to the service clock.
func (s *Service) Stamp(c *StandardClaims) {
	now := s.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
}

// Generate signs claims with HS256.
func (s *Service) Generate(claims Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}
	return token, nil
}

// Parse verifies token and decodes it into claims.
// Only HMAC signing methods are accepted.
func (s *Service) Parse(token string, claims Claims) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	parser.SkipClaimsValidation = true

	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return errors.Join(ErrInvalidSignature, err)
		}
		return errors.Join(ErrInvalidToken, err)
	}

	return s.validate(claims)
}

// validate checks exp and nbf against the service clock instead of time.Now.
func (s *Service) validate(claims Claims) error {
	now := s.now()
	if v, ok := claims.(interface{ VerifyExpiresAt(time.Time, bool) bool }); ok && !v.VerifyExpiresAt(now, false) {
		return ErrExpiredToken
	}
	if v, ok := claims.(interface{ VerifyNotBefore(time.Time, bool) bool }); ok && !v.VerifyNotBefore(now, false) {
		return ErrInvalidToken
	}
	return nil
}
