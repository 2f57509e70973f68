// Package mailer composes campaign emails and delivers them through a
// pluggable [Sender].
//
// A campaign body is markdown, optionally led by YAML front matter:
//
//	---
//	Subject: Spring sale
//	Preheader: Everything 20% off this week
//	---
//	Hi there,
//
//	[!button|Shop now](https://example.com/sale)
//
// [Mailer.Prepare] renders the body once (goldmark, sanitized with
// bluemonday, wrapped in the embedded newsletter layout) and resolves the
// subject. [Mailer.Deliver] then sends a per-recipient copy and returns the
// provider's message id. Provider failures come back as [*SendError], whose
// text is the provider's own message.
//
// Providers live in sub-packages: smtp (gomail), resend and ses.
package mailer
