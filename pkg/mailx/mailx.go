// Package mailx sends transactional email: password reset links and admin
// broadcasts. SMTPMailer talks to a real relay, LogMailer is for local dev.
package mailx

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var ErrInvalidMessage = errors.New("mailx: invalid message")

// Message is a single plain text (and optionally HTML) email to one recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the recipient parses as an address and that there is
// something to send.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: recipient: %v", ErrInvalidMessage, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	// Header injection guard, mailyak does not reject these itself.
	if strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("%w: subject contains line breaks", ErrInvalidMessage)
	}
	return nil
}

// Mailer delivers a message or returns why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
