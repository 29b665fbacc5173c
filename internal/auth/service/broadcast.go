package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/mailx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBroadcastConcurrency = 4
	DefaultBroadcastTimeout     = 10 * time.Minute
)

// BroadcastService mails every registered user, a few at a time.
type BroadcastService struct {
	Store       store.Store
	Mailer      mailx.Mailer
	Concurrency int
	// Timeout bounds the whole fan-out. It replaces the request deadline,
	// which is sized for store calls rather than SMTP round trips.
	Timeout time.Duration
}

// BroadcastResult counts deliveries. Recipients is Sent plus Failed.
type BroadcastResult struct {
	Recipients int
	Sent       int
	Failed     int
}

// Send mails subject/body to all users. A failed recipient does not stop
// the others; the error then wraps ErrBroadcastIncomplete and the first
// delivery failure.
func (s *BroadcastService) Send(ctx context.Context, subject, body string) (BroadcastResult, error) {
	if strings.TrimSpace(subject) == "" {
		return BroadcastResult{}, invalid("subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return BroadcastResult{}, invalid("email body is required")
	}

	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("list recipients: %w", err)
	}
	if len(users) == 0 {
		return BroadcastResult{}, ErrNoRecipients
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultBroadcastConcurrency
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultBroadcastTimeout
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var sent, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(limit)

	for _, u := range users {
		g.Go(func() error {
			msg := mailx.Message{To: u.Email, Subject: subject, Text: body}
			if err := s.Mailer.Send(sendCtx, msg); err != nil {
				failed.Add(1)
				return fmt.Errorf("mail %s: %w", u.ID, err)
			}
			sent.Add(1)
			return nil
		})
	}

	err = g.Wait()
	res := BroadcastResult{
		Recipients: len(users),
		Sent:       int(sent.Load()),
		Failed:     int(failed.Load()),
	}
	slogx.FromContext(ctx).Info("broadcast finished",
		"recipients", res.Recipients, "sent", res.Sent, "failed", res.Failed, "err", err)

	if err != nil {
		return res, fmt.Errorf("%w: %d of %d failed: %w", ErrBroadcastIncomplete, res.Failed, res.Recipients, err)
	}
	return res, nil
}
