package relay

import (
	"context"
	"errors"

	"github.com/ragavan2104/mailblaster/credentials"
	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/pkg/mailer/resend"
	"github.com/ragavan2104/mailblaster/pkg/mailer/ses"
	"github.com/ragavan2104/mailblaster/pkg/mailer/smtp"
)

// Factory builds a Mailer from freshly loaded credentials.
type Factory func(ctx context.Context, creds credentials.Credentials) (*mailer.Mailer, error)

// ProviderConfig selects and configures the outbound provider.
type ProviderConfig struct {
	Mailer mailer.Config
	SMTP   smtp.Config
	Resend resend.Config
	SES    ses.Config
}

// NewFactory returns a Factory for cfg.Mailer.Provider. The renderer is
// shared by every Mailer it builds.
func NewFactory(cfg ProviderConfig, renderer *mailer.Renderer) (Factory, error) {
	var build func(ctx context.Context, creds credentials.Credentials) (mailer.Sender, error)

	switch cfg.Mailer.Provider {
	case mailer.ProviderSMTP, "":
		build = func(_ context.Context, creds credentials.Credentials) (mailer.Sender, error) {
			return smtp.New(cfg.SMTP, creds.Username, creds.Password)
		}
	case mailer.ProviderResend:
		build = func(_ context.Context, creds credentials.Credentials) (mailer.Sender, error) {
			return resend.New(cfg.Resend, creds.Password), nil
		}
	case mailer.ProviderSES:
		build = func(ctx context.Context, _ credentials.Credentials) (mailer.Sender, error) {
			return ses.New(ctx, cfg.SES)
		}
	default:
		return nil, errors.Join(mailer.ErrUnknownProvider, errors.New(cfg.Mailer.Provider))
	}

	return func(ctx context.Context, creds credentials.Credentials) (*mailer.Mailer, error) {
		sender, err := build(ctx, creds)
		if err != nil {
			return nil, errors.Join(ErrBuildMailer, err)
		}
		return mailer.New(sender, renderer, cfg.Mailer, creds.Username), nil
	}, nil
}
