package smtp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

type captured struct {
	from string
	to   []string
	raw  string
}

type fakeSession struct {
	sent    []captured
	sendErr error
	closed  bool
}

func (f *fakeSession) Send(from string, to []string, msg io.WriterTo) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return err
	}
	f.sent = append(f.sent, captured{from: from, to: to, raw: buf.String()})
	return nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

type fakeDialer struct {
	session *fakeSession
	err     error
}

func (d *fakeDialer) Dial() (gomail.SendCloser, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.session, nil
}

func testEmail() *mailer.Email {
	return &mailer.Email{
		From:    `"MailBlaster Pro" <news@example.com>`,
		To:      []string{"a@x.com"},
		Subject: "Spring sale",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	}
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("delivers and returns message id", func(t *testing.T) {
		t.Parallel()
		sess := &fakeSession{}
		s := NewWithDialer(&fakeDialer{session: sess})

		msgID, err := s.Send(context.Background(), testEmail())
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(msgID, "@example.com>"))

		require.Len(t, sess.sent, 1)
		require.Equal(t, "news@example.com", sess.sent[0].from)
		require.Equal(t, []string{"a@x.com"}, sess.sent[0].to)
		require.Contains(t, sess.sent[0].raw, "Message-ID: "+msgID)
		require.Contains(t, sess.sent[0].raw, "Subject: Spring sale")
		require.Contains(t, sess.sent[0].raw, "text/html")
		require.True(t, sess.closed)
	})

	t.Run("relay rejection", func(t *testing.T) {
		t.Parallel()
		s := NewWithDialer(&fakeDialer{session: &fakeSession{sendErr: errors.New("550 invalid recipient")}})
		_, err := s.Send(context.Background(), testEmail())
		require.ErrorContains(t, err, "550 invalid recipient")
	})

	t.Run("dial failure", func(t *testing.T) {
		t.Parallel()
		s := NewWithDialer(&fakeDialer{err: errors.New("connection refused")})
		_, err := s.Send(context.Background(), testEmail())
		require.ErrorContains(t, err, "smtp: dial")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := NewWithDialer(&fakeDialer{session: &fakeSession{}})
		_, err := s.Send(ctx, testEmail())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Host: "smtp.gmail.com", Port: 587}, "", "")
	require.ErrorIs(t, err, ErrMissingCredentials)

	s, err := New(Config{Host: "smtp.gmail.com", Port: 587}, "user@gmail.com", "app-password")
	require.NoError(t, err)
	d, ok := s.dialer.(*gomail.Dialer)
	require.True(t, ok)
	require.Equal(t, "smtp.gmail.com", d.TLSConfig.ServerName)
}

func TestDomainOf(t *testing.T) {
	t.Parallel()
	require.Equal(t, "gmail.com", domainOf("user@gmail.com"))
	require.Equal(t, "example.com", domainOf(`"Name" <n@example.com>`))
	require.Empty(t, domainOf("not an address"))
}
