package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
)

const DefaultSessionTTL = 24 * time.Hour

// SessionService manages server side sessions. Clients only ever hold the
// raw id; the store is keyed by its fingerprint so a leaked table can't be
// replayed.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
	Clock Clock
}

// Create stores a new session for u and returns the raw id for the cookie.
func (s *SessionService) Create(ctx context.Context, u domain.User) (string, domain.Session, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	now := s.Clock.now()
	sess := domain.Session{
		ID:        cryptox.FingerprintToken(raw),
		UserID:    u.ID,
		User:      domain.SnapshotOf(u),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return raw, sess, nil
}

// Read returns the live session for raw, or ErrSessionNotFound when it is
// missing or past its expiry.
func (s *SessionService) Read(ctx context.Context, raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, ErrSessionNotFound
	}

	sess, err := s.Store.Sessions().GetSession(ctx, cryptox.FingerprintToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	if sess.Expired(s.Clock.now()) {
		return domain.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) Destroy(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	if err := s.Store.Sessions().DeleteSession(ctx, cryptox.FingerprintToken(raw)); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionService) DestroyAllForUser(ctx context.Context, userID string) error {
	if err := s.Store.Sessions().DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("destroy user sessions: %w", err)
	}
	return nil
}
