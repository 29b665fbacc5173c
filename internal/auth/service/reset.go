package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/mailx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const DefaultPasswordResetTTL = time.Hour

// PasswordResetService mails a one-time link and later swaps the password
// for whoever presents it.
type PasswordResetService struct {
	Store    store.Store
	Sessions *SessionService
	Mailer   mailx.Mailer
	ResetURL string // the raw token is appended as a path segment
	TTL      time.Duration
	Clock    Clock
}

// Request sends a reset link to email if it belongs to an account. Unknown
// addresses succeed silently so the endpoint can't be used to probe accounts.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return invalid("email is required")
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		l.Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultPasswordResetTTL
	}
	expires := s.Clock.now().Add(ttl)
	if err := s.Store.Users().SetPasswordReset(ctx, u.ID, cryptox.FingerprintToken(raw), expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link, err := url.JoinPath(s.ResetURL, raw)
	if err != nil {
		return fmt.Errorf("build reset link: %w", err)
	}

	msg := mailx.Message{
		To:      u.Email,
		Subject: "Password Reset",
		Text:    fmt.Sprintf("Click the link to reset your password: %s\n\nThe link expires in %s.", link, humanDuration(ttl)),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	l.Info("password reset requested", "user_id", u.ID)
	return nil
}

// Complete sets a new password for the holder of token. It also bumps the
// token version and drops every session, so all other logins end.
func (s *PasswordResetService) Complete(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}
	if err := domain.ValidatePassword(password); err != nil {
		return invalidDomain(err)
	}

	u, err := s.Store.Users().GetUserByResetTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if !u.ResetTokenValid(s.Clock.now()) {
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(password)
	if errors.Is(err, cryptox.ErrPasswordTooLong) {
		return invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.Sessions.DestroyAllForUser(ctx, u.ID); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed", "user_id", u.ID)
	return nil
}

func humanDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}
