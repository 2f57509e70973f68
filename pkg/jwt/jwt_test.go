package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

type testClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

func TestNewFromString(t *testing.T) {
	t.Parallel()
	_, err := jwt.NewFromString("  ")
	require.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestGenerateParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc, err := jwt.NewFromString("secret", jwt.WithClock(clock))
	require.NoError(t, err)

	mint := func(t *testing.T, s *jwt.Service) string {
		t.Helper()
		c := testClaims{ID: "a1", Username: "alice"}
		s.Stamp(&c.StandardClaims)
		tok, err := s.Generate(&c)
		require.NoError(t, err)
		return tok
	}

	t.Run("roundtrip", func(t *testing.T) {
		t.Parallel()
		var got testClaims
		require.NoError(t, svc.Parse(mint(t, svc), &got))
		require.Equal(t, "a1", got.ID)
		require.Equal(t, "alice", got.Username)
		require.Equal(t, now.Add(24*time.Hour).Unix(), got.ExpiresAt.Unix())
		require.Equal(t, now.Unix(), got.IssuedAt.Unix())
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		later, err := jwt.NewFromString("secret", jwt.WithClock(func() time.Time { return now.Add(25 * time.Hour) }))
		require.NoError(t, err)

		var got testClaims
		require.ErrorIs(t, later.Parse(mint(t, svc), &got), jwt.ErrExpiredToken)
	})

	t.Run("custom ttl", func(t *testing.T) {
		t.Parallel()
		short, err := jwt.NewFromString("secret", jwt.WithClock(clock), jwt.WithTTL(time.Minute))
		require.NoError(t, err)

		var got testClaims
		require.NoError(t, short.Parse(mint(t, short), &got))
		require.Equal(t, now.Add(time.Minute).Unix(), got.ExpiresAt.Unix())
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		other, err := jwt.NewFromString("other", jwt.WithClock(clock))
		require.NoError(t, err)

		var got testClaims
		require.ErrorIs(t, other.Parse(mint(t, svc), &got), jwt.ErrInvalidSignature)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		var got testClaims
		require.ErrorIs(t, svc.Parse("not-a-token", &got), jwt.ErrInvalidToken)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		t.Parallel()
		// {"alg":"none","typ":"JWT"}.{"id":"a1"}.
		none := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJpZCI6ImExIn0."
		var got testClaims
		require.Error(t, svc.Parse(none, &got))
	})
}
