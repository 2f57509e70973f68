package mailer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func newMailer(t *testing.T, s mailer.Sender, from string) *mailer.Mailer {
	t.Helper()
	r, err := mailer.NewRenderer()
	require.NoError(t, err)
	return mailer.New(s, r, mailer.Config{FallbackSubject: "Newsletter", SenderName: "MailBlaster Pro"}, from)
}

func TestMailer_Prepare(t *testing.T) {
	t.Parallel()

	m := newMailer(t, &mockSender{}, "news@example.com")

	t.Run("explicit subject wins", func(t *testing.T) {
		t.Parallel()
		email, err := m.Prepare(mailer.Message{Subject: "Hello", Body: "---\nSubject: Ignored\n---\nBody"})
		require.NoError(t, err)
		require.Equal(t, "Hello", email.Subject)
	})

	t.Run("front matter subject", func(t *testing.T) {
		t.Parallel()
		email, err := m.Prepare(mailer.Message{Body: "---\nSubject: Spring sale\n---\n**Big** news"})
		require.NoError(t, err)
		require.Equal(t, "Spring sale", email.Subject)
		require.Contains(t, email.HTML, "<strong>Big</strong>")
		require.Equal(t, "**Big** news", email.Text)
	})

	t.Run("fallback subject", func(t *testing.T) {
		t.Parallel()
		email, err := m.Prepare(mailer.Message{Body: "plain text"})
		require.NoError(t, err)
		require.Equal(t, "Newsletter", email.Subject)
		require.Equal(t, `"MailBlaster Pro" <news@example.com>`, email.From)
	})

	t.Run("subject markup is stripped", func(t *testing.T) {
		t.Parallel()
		email, err := m.Prepare(mailer.Message{Subject: "<b>Hi</b>", Body: "x"})
		require.NoError(t, err)
		require.Equal(t, "Hi", email.Subject)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		_, err := m.Prepare(mailer.Message{Subject: "x", Body: ""})
		require.ErrorIs(t, err, mailer.ErrNoContent)
	})

	t.Run("whitespace body is composed", func(t *testing.T) {
		t.Parallel()
		email, err := m.Prepare(mailer.Message{Subject: "x", Body: "  "})
		require.NoError(t, err)
		require.Equal(t, "x", email.Subject)
		require.NotEmpty(t, email.HTML)
	})
}

func TestMailer_Deliver(t *testing.T) {
	t.Parallel()

	t.Run("sends a per-recipient copy", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		m := newMailer(t, s, "news@example.com")

		s.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return len(e.To) == 1 && e.To[0] == "a@x.com" && e.Subject == "Newsletter"
		})).Return("msg-1", nil).Once()

		email, err := m.Prepare(mailer.Message{Body: "hi"})
		require.NoError(t, err)

		id, err := m.Deliver(context.Background(), email, " a@x.com ")
		require.NoError(t, err)
		require.Equal(t, "msg-1", id)
		require.Empty(t, email.To, "prepared email must not be mutated")
		s.AssertExpectations(t)
	})

	t.Run("provider error keeps its text", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		m := newMailer(t, s, "news@example.com")
		s.On("Send", mock.Anything, mock.Anything).Return("", errors.New("invalid recipient"))

		id, err := m.Send(context.Background(), "bad-address", mailer.Message{Body: "hi"})
		require.Empty(t, id)
		require.ErrorIs(t, err, mailer.ErrSendFailed)
		require.EqualError(t, err, "invalid recipient")

		var sendErr *mailer.SendError
		require.ErrorAs(t, err, &sendErr)
	})

	t.Run("missing sender address", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		m := newMailer(t, s, "")

		_, err := m.Send(context.Background(), "a@x.com", mailer.Message{Body: "hi"})
		require.ErrorIs(t, err, mailer.ErrNoSender)
		s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("empty recipient", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		m := newMailer(t, s, "news@example.com")

		_, err := m.Send(context.Background(), "", mailer.Message{Body: "hi"})
		require.ErrorIs(t, err, mailer.ErrNoRecipient)
	})
}

func TestRecipient(t *testing.T) {
	t.Parallel()
	require.Equal(t, "a@x.com", mailer.Recipient("", "a@x.com"))
	require.Equal(t, `"Jane Doe" <a@x.com>`, mailer.Recipient("Jane Doe", "a@x.com"))
}

func TestSenderFunc(t *testing.T) {
	t.Parallel()
	var s mailer.Sender = mailer.SenderFunc(func(context.Context, *mailer.Email) (string, error) {
		return "id", nil
	})
	id, err := s.Send(context.Background(), &mailer.Email{})
	require.NoError(t, err)
	require.Equal(t, "id", id)
}
