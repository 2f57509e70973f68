// Package resend delivers mail through the Resend HTTP API.
package resend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

// Config holds Resend settings.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
	// FromEmail overrides the composed From address when set.
	FromEmail string `env:"RESEND_FROM_EMAIL"`
	FromName  string `env:"RESEND_FROM_NAME"`
}

// EmailsAPI is the subset of the Resend client used here.
type EmailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails EmailsAPI
	config Config
}

// New creates a Sender. An empty cfg.APIKey falls back to apiKey, which
// lets the credential store supply it.
func New(cfg Config, apiKey string) *Sender {
	if cfg.APIKey != "" {
		apiKey = cfg.APIKey
	}
	return &Sender{emails: resend.NewClient(apiKey).Emails, config: cfg}
}

// NewWithClient creates a Sender over a custom Emails implementation.
func NewWithClient(emails EmailsAPI, cfg Config) *Sender {
	return &Sender{emails: emails, config: cfg}
}

// Send implements mailer.Sender and returns Resend's email id.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	from := email.From
	if s.config.FromEmail != "" {
		from = mailer.Recipient(s.config.FromName, s.config.FromEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}
	for name, value := range email.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: tagValue(value)})
	}

	resp, err := s.emails.SendWithContext(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}

// tagValue renders presence-only tags as "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
