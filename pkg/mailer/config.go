package mailer

// Config holds the provider-independent mail settings.
type Config struct {
	Provider        string `env:"MAILER_PROVIDER" envDefault:"smtp"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Newsletter"`
	// SenderName is shown in the From header and the layout footer.
	SenderName string `env:"MAILER_SENDER_NAME" envDefault:"MailBlaster Pro"`
}

// Supported providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderSES    = "ses"
)
