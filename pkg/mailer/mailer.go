package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/ragavan2104/mailblaster/pkg/sanitizer"
)

// Mailer composes messages and hands them to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
	from     string
}

// New creates a Mailer. from is the envelope sender, usually the relay account.
func New(sender Sender, renderer *Renderer, cfg Config, from string) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
		from:     from,
	}
}

// Message is the input for Prepare.
type Message struct {
	Subject string
	Body    string
	ReplyTo string
	Tags    Tags
}

// Prepare composes an Email without recipients.
// Subject resolution: msg.Subject, then the body's front matter Subject, then the configured fallback.
func (m *Mailer) Prepare(msg Message) (*Email, error) {
	if msg.Body == "" {
		return nil, ErrNoContent
	}

	subject := sanitizer.StripTags(msg.Subject)
	result, err := m.renderer.Render(msg.Body, subject)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok {
			subject = sanitizer.StripTags(s)
		}
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	email := &Email{
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: msg.ReplyTo,
		Tags:    msg.Tags,
	}
	if m.from != "" {
		email.From = Recipient(m.config.SenderName, m.from)
	}
	return email, nil
}

// Deliver sends a copy of email to one address and returns the provider message id.
func (m *Mailer) Deliver(ctx context.Context, email *Email, to string) (string, error) {
	out := email.For(strings.TrimSpace(to))
	if err := out.validate(); err != nil {
		return "", err
	}

	id, err := m.sender.Send(ctx, out)
	if err != nil {
		return "", &SendError{Err: err}
	}
	return id, nil
}

// Send is Prepare followed by Deliver for a single address.
func (m *Mailer) Send(ctx context.Context, to string, msg Message) (string, error) {
	email, err := m.Prepare(msg)
	if err != nil {
		return "", err
	}
	return m.Deliver(ctx, email, to)
}
