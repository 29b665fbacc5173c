package mailx

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// LogMailer writes messages to the request logger instead of sending them.
// It also keeps them in memory so tests can assert on what was "sent".
type LogMailer struct {
	mu   sync.Mutex
	sent []Message
}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	slogx.FromContext(ctx).Info("mail not sent, log mailer in use",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

// Sent returns a copy of every message accepted so far.
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
