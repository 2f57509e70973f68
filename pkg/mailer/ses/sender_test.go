package ses_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsses "github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/pkg/mailer/ses"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) SendEmail(ctx context.Context, in *awsses.SendEmailInput, _ ...func(*awsses.Options)) (*awsses.SendEmailOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*awsses.SendEmailOutput)
	return out, args.Error(1)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	email := &mailer.Email{
		From:    "news@example.com",
		To:      []string{"a@x.com"},
		Subject: "Hello",
		Text:    "plain body",
		ReplyTo: "reply@example.com",
	}

	t.Run("returns message id", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *awsses.SendEmailInput) bool {
			return aws.ToString(in.Source) == "news@example.com" &&
				in.Destination.ToAddresses[0] == "a@x.com" &&
				aws.ToString(in.Message.Subject.Data) == "Hello" &&
				in.Message.Body.Html == nil &&
				aws.ToString(in.Message.Body.Text.Data) == "plain body" &&
				in.ReplyToAddresses[0] == "reply@example.com"
		})).Return(&awsses.SendEmailOutput{MessageId: aws.String("0100-abc")}, nil)

		id, err := ses.NewWithClient(c).Send(context.Background(), email)
		require.NoError(t, err)
		require.Equal(t, "0100-abc", id)
		c.AssertExpectations(t)
	})

	t.Run("api error is reduced to code and message", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		apiErr := &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."}
		c.On("SendEmail", mock.Anything, mock.Anything).Return(nil, apiErr)

		_, err := ses.NewWithClient(c).Send(context.Background(), email)
		require.EqualError(t, err, "MessageRejected: Email address is not verified.")
	})

	t.Run("transport error passes through", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))

		_, err := ses.NewWithClient(c).Send(context.Background(), email)
		require.EqualError(t, err, "dial tcp: timeout")
	})

	t.Run("tags", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *awsses.SendEmailInput) bool {
			return len(in.Tags) == 1 &&
				aws.ToString(in.Tags[0].Name) == "campaign" &&
				aws.ToString(in.Tags[0].Value) == "true"
		})).Return(&awsses.SendEmailOutput{MessageId: aws.String("id")}, nil)

		tagged := email.For("b@x.com")
		tagged.Tags = mailer.SimpleTags("campaign")
		_, err := ses.NewWithClient(c).Send(context.Background(), tagged)
		require.NoError(t, err)
	})
}


func TestNew_StaticKeys(t *testing.T) {
	t.Parallel()

	s, err := ses.New(context.Background(), ses.Config{
		Region:          "eu-west-1",
		MaxAttempts:     2,
		MaxBackoffDelay: time.Second,
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, s)
}
