// Package ses delivers mail through Amazon SES.
package ses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

// Config holds SES client settings.
type Config struct {
	Region          string        `env:"SES_REGION" envDefault:"us-east-1"`
	MaxAttempts     int           `env:"SES_MAX_ATTEMPTS" envDefault:"3"`
	MaxBackoffDelay time.Duration `env:"SES_MAX_BACKOFF_DELAY" envDefault:"5s"`

	// Static keys. When empty the default AWS credential chain is used.
	AccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
}

// Client is the subset of the SES API used here.
type Client interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender implements mailer.Sender over SES.
type Sender struct {
	client Client
}

// New loads AWS configuration and returns a Sender.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	withBackoff := retry.AddWithMaxBackoffDelay(retry.NewStandard(), cfg.MaxBackoffDelay)
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(withBackoff, cfg.MaxAttempts)
		}),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	return &Sender{client: ses.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates a Sender over an existing client.
func NewWithClient(c Client) *Sender {
	return &Sender{client: c}
}

// Send implements mailer.Sender and returns the SES message id.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	body := &types.Body{}
	if email.HTML != "" {
		body.Html = &types.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")}
	}
	if email.Text != "" {
		body.Text = &types.Content{Data: aws.String(email.Text), Charset: aws.String("UTF-8")}
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(email.From),
		Destination: &types.Destination{ToAddresses: email.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}
	for name, value := range email.Tags {
		input.Tags = append(input.Tags, types.MessageTag{Name: aws.String(name), Value: aws.String(tagValue(value))})
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", describe(err)
	}
	return aws.ToString(out.MessageId), nil
}

// describe reduces an SES API error to its code and message.
func describe(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}

// tagValue renders tag values for SES, which rejects empty values.
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		if val == "" {
			return "true"
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
