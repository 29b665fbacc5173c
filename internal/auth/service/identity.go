package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	SourceSession = "session"
	SourceToken   = "token"
)

// Credentials are whatever the client presented. Either may be empty.
type Credentials struct {
	SessionID string
	Token     string
}

// Identity is the resolved caller of a request.
type Identity struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
	Source  string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IdentityResolver turns request credentials into an Identity. A live
// session wins; a token is only consulted when there is no session.
type IdentityResolver struct {
	Sessions *SessionService
	Tokens   *TokenService
	Store    store.Store
}

func (r *IdentityResolver) Resolve(ctx context.Context, c Credentials) (Identity, error) {
	l := slogx.FromContext(ctx)

	if c.SessionID != "" {
		sess, err := r.Sessions.Read(ctx, c.SessionID)
		switch {
		case err == nil:
			return Identity{
				UserID:  sess.User.ID,
				Name:    sess.User.Name,
				Email:   sess.User.Email,
				IsAdmin: sess.User.IsAdmin,
				Source:  SourceSession,
			}, nil
		case !errors.Is(err, ErrSessionNotFound):
			return Identity{}, err
		}
	}

	if c.Token == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims, err := r.Tokens.Verify(c.Token)
	if err != nil {
		l.Debug("token rejected", "err", err)
		return Identity{}, err
	}

	u, err := r.Store.Users().GetUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		l.Debug("token for unknown user", "user_id", claims.UserID)
		return Identity{}, fmt.Errorf("%w: user no longer exists", ErrTokenInvalid)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("load token user: %w", err)
	}

	if claims.TokenVersion != u.TokenVersion {
		l.Debug("stale token version", "user_id", u.ID, "token_ver", claims.TokenVersion, "user_ver", u.TokenVersion)
		return Identity{}, fmt.Errorf("%w: token version superseded", ErrTokenInvalid)
	}

	return Identity{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Source:  SourceToken,
	}, nil
}
