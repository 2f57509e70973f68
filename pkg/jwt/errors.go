package jwt

import "errors"

var (
	ErrMissingSecret    = errors.New("jwt: secret is empty")
	ErrSigningFailed    = errors.New("jwt: failed to sign token")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrExpiredToken     = errors.New("jwt: token expired")
)
