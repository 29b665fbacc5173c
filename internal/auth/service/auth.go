package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// verifyDummy is swapped in tests to observe the no-hash branches.
var verifyDummy = cryptox.VerifyDummy

// AuthService covers local accounts: register, login, logout and "who am I".
type AuthService struct {
	Store    store.Store
	Sessions *SessionService
	Tokens   *TokenService
	Admins   domain.AdminList
	Clock    Clock

	DefaultProfilePicture string
	DefaultBannerImage    string
}

// LoginResult holds both credentials handed to the client after a login.
type LoginResult struct {
	User           domain.User
	SessionID      string
	Session        domain.Session
	Token          string
	TokenExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if err := reg.Validate(); err != nil {
		return domain.User{}, invalidDomain(err)
	}

	email := domain.NormalizeEmail(reg.Email)
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, ErrUserExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword(reg.Password)
	if errors.Is(err, cryptox.ErrPasswordTooLong) {
		return domain.User{}, invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Clock.now()
	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Name:           reg.Name,
		Email:          email,
		PasswordHash:   hash,
		IsAdmin:        s.Admins.Contains(email),
		ProfilePicture: s.DefaultProfilePicture,
		BannerImage:    s.DefaultBannerImage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the password and hands out a session and a token. The steps
// are not atomic; a failure part way leaves state the next login overwrites.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		verifyDummy(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	// OAuth-only accounts have no password to check.
	if u.PasswordHash == "" {
		verifyDummy(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", "user_id", u.ID, "err", err)
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	if cryptox.NeedsRehash(u.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
				l.Warn("password rehash failed", "user_id", u.ID, "err", err)
			} else {
				u.PasswordHash = hash
			}
		}
	}

	now := s.Clock.now()
	u.IsAdmin = s.Admins.Contains(u.Email)
	if err := s.Store.Users().UpdateLogin(ctx, u.ID, now, u.IsAdmin); err != nil {
		return LoginResult{}, fmt.Errorf("record login: %w", err)
	}
	u.IsLoggedIn = true
	u.LastLoginAt = &now

	raw, sess, err := s.Sessions.Create(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	token, exp, err := s.Tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("user logged in", "user_id", u.ID)
	return LoginResult{
		User:           u,
		SessionID:      raw,
		Session:        sess,
		Token:          token,
		TokenExpiresAt: exp,
	}, nil
}

// Logout is best effort: each step logs its own failure and the rest still
// run. userID may be empty when the caller could not be resolved.
func (s *AuthService) Logout(ctx context.Context, userID, rawSessionID string) {
	l := slogx.FromContext(ctx)

	if userID != "" {
		err := s.Store.Users().MarkLoggedOut(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			l.Error("mark logged out failed", "user_id", userID, "err", err)
		}
	}

	if err := s.Sessions.Destroy(ctx, rawSessionID); err != nil {
		l.Error("session destroy failed", "err", err)
	}

	if userID != "" {
		l.Info("user logged out", "user_id", userID)
	}
}

// Me returns the current record for userID.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
