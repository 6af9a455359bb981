// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mail sends contact notifications over SMTP.

# Mailer

Handlers depend on the Mailer interface so tests can swap in a fake:

	type Mailer interface {
		Send(msg Message) error
	}

# SMTP Transport

SMTPMailer speaks plain SMTP through net/smtp:

	mailer := mail.NewSMTPMailer("smtp.example.com:587", user, pass, from)
	err := mailer.Send(mail.Message{To: ..., Subject: ..., Body: ...})

PLAIN auth is used when a username is configured. Sending with no
configured address or sender returns ErrNotConfigured. Subject lines
are sanitized so user input cannot inject headers.
*/
package mail
