package relay_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/credentials"
	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/relay"
)

// flakyLoader fails until ok is set.
type flakyLoader struct {
	ok    atomic.Bool
	calls atomic.Int32
}

func (l *flakyLoader) Load(context.Context) (credentials.Credentials, error) {
	l.calls.Add(1)
	if !l.ok.Load() {
		return credentials.Credentials{}, credentials.ErrNoCredentials
	}
	return credentials.Credentials{Username: "sender@example.com", Password: "pw"}, nil
}

func testFactory(t *testing.T, send mailer.SenderFunc) relay.Factory {
	t.Helper()
	renderer, err := mailer.NewRenderer()
	require.NoError(t, err)
	return func(_ context.Context, creds credentials.Credentials) (*mailer.Mailer, error) {
		return mailer.New(send, renderer, mailer.Config{FallbackSubject: "Newsletter"}, creds.Username), nil
	}
}

func okSender(_ context.Context, e *mailer.Email) (string, error) {
	return "<id@" + e.To[0] + ">", nil
}

func fastConfig() relay.Config {
	return relay.Config{
		Credentials:       credentials.Config{RetryAttempts: 2, RetryInterval: time.Millisecond},
		SuperviseSchedule: "@every 1s",
	}
}

func TestRelay_Init(t *testing.T) {
	t.Parallel()

	t.Run("ready after load", func(t *testing.T) {
		t.Parallel()
		l := &flakyLoader{}
		l.ok.Store(true)
		r := relay.New(l, testFactory(t, okSender), fastConfig())

		require.NoError(t, r.Init(context.Background()))
		assert.True(t, r.Ready())
		require.NoError(t, r.Healthcheck()(context.Background()))

		email, err := r.Prepare(mailer.Message{Body: "# Hello"})
		require.NoError(t, err)
		assert.Equal(t, "Newsletter", email.Subject)
		assert.Contains(t, email.From, "sender@example.com")

		id, err := r.Deliver(context.Background(), email, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "<id@a@x.com>", id)
	})

	t.Run("missing credentials do not fail startup", func(t *testing.T) {
		t.Parallel()
		l := &flakyLoader{}
		r := relay.New(l, testFactory(t, okSender), fastConfig())

		require.NoError(t, r.Init(context.Background()))
		assert.False(t, r.Ready())
		assert.EqualValues(t, 2, l.calls.Load())
		require.ErrorIs(t, r.Healthcheck()(context.Background()), relay.ErrNotReady)

		_, err := r.Prepare(mailer.Message{Body: "hi"})
		require.ErrorIs(t, err, relay.ErrNotReady)
		_, err = r.Deliver(context.Background(), &mailer.Email{}, "a@x.com")
		require.ErrorIs(t, err, relay.ErrNotReady)
	})

	t.Run("factory failure fails startup", func(t *testing.T) {
		t.Parallel()
		l := &flakyLoader{}
		l.ok.Store(true)
		boom := errors.New("boom")
		r := relay.New(l, func(context.Context, credentials.Credentials) (*mailer.Mailer, error) {
			return nil, boom
		}, fastConfig())

		require.ErrorIs(t, r.Init(context.Background()), boom)
		assert.False(t, r.Ready())
	})
}

func TestRelay_DeliverError(t *testing.T) {
	t.Parallel()

	l := &flakyLoader{}
	l.ok.Store(true)
	r := relay.New(l, testFactory(t, func(context.Context, *mailer.Email) (string, error) {
		return "", errors.New("invalid recipient")
	}), fastConfig())
	require.NoError(t, r.Init(context.Background()))

	email, err := r.Prepare(mailer.Message{Subject: "s", Body: "b"})
	require.NoError(t, err)

	_, err = r.Deliver(context.Background(), email, "bad-address")
	require.EqualError(t, err, "invalid recipient")
	require.ErrorIs(t, err, mailer.ErrSendFailed)
}

func TestRelay_Supervise(t *testing.T) {
	t.Parallel()

	l := &flakyLoader{}
	r := relay.New(l, testFactory(t, okSender), fastConfig())
	require.NoError(t, r.Init(context.Background()))
	require.False(t, r.Ready())

	require.NoError(t, r.Supervise(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, r.Shutdown()(ctx))
	})

	l.ok.Store(true)
	require.Eventually(t, r.Ready, 5*time.Second, 50*time.Millisecond)
}

func TestRelay_SuperviseBadSchedule(t *testing.T) {
	t.Parallel()

	cfg := fastConfig()
	cfg.SuperviseSchedule = "every minute please"
	r := relay.New(&flakyLoader{}, testFactory(t, okSender), cfg)
	require.ErrorIs(t, r.Supervise(context.Background()), relay.ErrBadSchedule)
	require.NoError(t, r.Shutdown()(context.Background()))
}

func TestNewFactory(t *testing.T) {
	t.Parallel()

	renderer, err := mailer.NewRenderer()
	require.NoError(t, err)

	_, err = relay.NewFactory(relay.ProviderConfig{Mailer: mailer.Config{Provider: "pigeon"}}, renderer)
	require.ErrorIs(t, err, mailer.ErrUnknownProvider)

	for _, p := range []string{mailer.ProviderSMTP, mailer.ProviderResend} {
		f, err := relay.NewFactory(relay.ProviderConfig{Mailer: mailer.Config{Provider: p}}, renderer)
		require.NoError(t, err, p)
		m, err := f(context.Background(), credentials.Credentials{Username: "u@x.com", Password: "pw"})
		require.NoError(t, err, p)
		require.NotNil(t, m, p)
	}
}
