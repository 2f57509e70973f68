package resend_test

import (
	"context"
	"errors"
	"testing"

	resendapi "github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/pkg/mailer/resend"
)

type mockEmails struct {
	mock.Mock
}

func (m *mockEmails) SendWithContext(ctx context.Context, req *resendapi.SendEmailRequest) (*resendapi.SendEmailResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*resendapi.SendEmailResponse)
	return resp, args.Error(1)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	email := &mailer.Email{
		From:    "news@example.com",
		To:      []string{"a@x.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Tags:    mailer.SimpleTags("campaign"),
	}

	t.Run("returns provider id", func(t *testing.T) {
		t.Parallel()
		api := &mockEmails{}
		api.On("SendWithContext", mock.Anything, mock.MatchedBy(func(r *resendapi.SendEmailRequest) bool {
			return r.From == `"Acme" <hello@acme.io>` &&
				r.To[0] == "a@x.com" &&
				len(r.Tags) == 1 && r.Tags[0].Value == "true"
		})).Return(&resendapi.SendEmailResponse{Id: "re_123"}, nil)

		s := resend.NewWithClient(api, resend.Config{FromEmail: "hello@acme.io", FromName: "Acme"})
		id, err := s.Send(context.Background(), email)
		require.NoError(t, err)
		require.Equal(t, "re_123", id)
		api.AssertExpectations(t)
	})

	t.Run("keeps composed from without override", func(t *testing.T) {
		t.Parallel()
		api := &mockEmails{}
		api.On("SendWithContext", mock.Anything, mock.MatchedBy(func(r *resendapi.SendEmailRequest) bool {
			return r.From == "news@example.com"
		})).Return(&resendapi.SendEmailResponse{Id: "re_1"}, nil)

		_, err := resend.NewWithClient(api, resend.Config{}).Send(context.Background(), email)
		require.NoError(t, err)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		api := &mockEmails{}
		api.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("422 invalid `to` field"))

		_, err := resend.NewWithClient(api, resend.Config{}).Send(context.Background(), email)
		require.EqualError(t, err, "422 invalid `to` field")
	})
}
