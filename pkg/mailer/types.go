package mailer

import (
	"maps"
	"net/mail"
	"slices"
)

// Tags are provider-side labels. Presence-only tags use struct{}{} as the value.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a display name and address per RFC 5322.
// Returns the bare address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Email is a fully composed message.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	From    string
	ReplyTo string
	To      []string
}

// For returns a copy of e addressed to a single recipient.
// Campaigns compose one Email and deliver a copy per address.
func (e *Email) For(to string) *Email {
	c := *e
	c.To = []string{to}
	c.Headers = maps.Clone(e.Headers)
	c.Tags = maps.Clone(e.Tags)
	return &c
}

func (e *Email) validate() error {
	switch {
	case len(e.To) == 0 || slices.Contains(e.To, ""):
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	case e.From == "":
		return ErrNoSender
	}
	return nil
}
