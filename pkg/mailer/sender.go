package mailer

import "context"

// Sender is the contract every mail provider implements.
// Send delivers a fully composed Email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, email *Email) (messageID string, err error)
}

// SenderFunc adapts a plain function to Sender.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
