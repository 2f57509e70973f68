package mailer

import "errors"

var (
	ErrNoRecipient        = errors.New("email must have at least one recipient")
	ErrNoSubject          = errors.New("email must have a subject")
	ErrNoContent          = errors.New("email must have content")
	ErrNoSender           = errors.New("email must have a sender address")
	ErrRenderFailed       = errors.New("failed to render email")
	ErrSendFailed         = errors.New("failed to send email")
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
	ErrUnknownProvider    = errors.New("unknown mail provider")
)

// SendError wraps a provider failure. Its message is the provider's own text,
// which is what gets recorded per recipient; errors.Is matches ErrSendFailed.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return e.Err.Error() }

func (e *SendError) Unwrap() error { return e.Err }

func (e *SendError) Is(target error) bool { return target == ErrSendFailed }
