package smtp

// Config holds the SMTP relay endpoint. The account credentials are loaded
// from the credential store at startup, not from the environment.
type Config struct {
	Host          string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port          int    `env:"SMTP_PORT" envDefault:"587"`
	SkipTLSVerify bool   `env:"SMTP_SKIP_TLS_VERIFY" envDefault:"false"`
}
