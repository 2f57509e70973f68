// Package smtp delivers mail through an authenticated SMTP relay using gomail.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/ragavan2104/mailblaster/pkg/id"
	mailer "github.com/ragavan2104/mailblaster/pkg/mailer"
)

// ErrMissingCredentials is returned by New when username or password is empty.
var ErrMissingCredentials = errors.New("smtp: username and password are required")

// Dialer opens an SMTP session. *gomail.Dialer implements it.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	dialer Dialer
}

// New creates a Sender authenticating as username.
func New(cfg Config, username, password string) (*Sender, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, username, password)
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify, //nolint:gosec // opt-in for self-hosted relays
	}
	return &Sender{dialer: d}, nil
}

// NewWithDialer creates a Sender on top of an existing dialer.
func NewWithDialer(d Dialer) *Sender {
	return &Sender{dialer: d}
}

// Send dials the relay, sends one message and returns its Message-ID.
// SMTP has no provider-side id, so the Message-ID header is generated here.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := id.MessageID(domainOf(email.From))

	m := gomail.NewMessage()
	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", messageID)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	for k, v := range email.Headers {
		m.SetHeader(k, v)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", email.Text)
	}

	sc, err := s.dialer.Dial()
	if err != nil {
		return "", fmt.Errorf("smtp: dial: %w", err)
	}
	defer sc.Close()

	if err := gomail.Send(sc, m); err != nil {
		return "", err
	}
	return messageID, nil
}

func domainOf(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return ""
	}
	if at := strings.LastIndexByte(addr.Address, '@'); at >= 0 {
		return addr.Address[at+1:]
	}
	return ""
}
