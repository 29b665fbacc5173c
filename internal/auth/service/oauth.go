package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// Assertion is what an external identity provider vouches for.
type Assertion struct {
	ExternalID    string
	Email         string
	Name          string
	EmailVerified bool
	Picture       string
}

// OAuthBridge maps a provider assertion onto a local account and starts a
// session for it. No token is issued on this path.
type OAuthBridge struct {
	Store    store.Store
	Sessions *SessionService
	Admins   domain.AdminList
	Clock    Clock

	DefaultProfilePicture string
	DefaultBannerImage    string
}

func (b *OAuthBridge) CompleteLogin(ctx context.Context, a Assertion) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(a.Email)
	if a.ExternalID == "" || email == "" {
		return domain.User{}, "", ErrInvalidAssertion
	}
	if !a.EmailVerified {
		return domain.User{}, "", ErrEmailNotVerified
	}

	u, err := b.findOrLink(ctx, a.ExternalID, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", err
	}

	now := b.Clock.now()
	isAdmin := b.Admins.Contains(email)

	if errors.Is(err, store.ErrNotFound) {
		u = domain.User{
			ID:             idx.NewAt(now).String(),
			Name:           displayName(a.Name, email),
			Email:          email,
			OAuthID:        a.ExternalID,
			IsAdmin:        isAdmin,
			IsLoggedIn:     true,
			LastLoginAt:    &now,
			ProfilePicture: firstNonEmpty(a.Picture, b.DefaultProfilePicture),
			BannerImage:    b.DefaultBannerImage,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := b.Store.Users().CreateUser(ctx, u); err != nil {
			return domain.User{}, "", fmt.Errorf("create oauth user: %w", err)
		}
		l.Info("user registered via oauth", "user_id", u.ID)
	} else {
		if err := b.Store.Users().UpdateLogin(ctx, u.ID, now, isAdmin); err != nil {
			return domain.User{}, "", fmt.Errorf("record oauth login: %w", err)
		}
		u.IsAdmin = isAdmin
		u.IsLoggedIn = true
		u.LastLoginAt = &now
	}

	raw, _, err := b.Sessions.Create(ctx, u)
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("user logged in via oauth", "user_id", u.ID)
	return u, raw, nil
}

// findOrLink looks up by external id, then by email. An email match gets the
// external id attached unless it already carries a different one.
func (b *OAuthBridge) findOrLink(ctx context.Context, externalID, email string) (domain.User, error) {
	u, err := b.Store.Users().GetUserByOAuthID(ctx, externalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup oauth id: %w", err)
	}

	u, err = b.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}

	if u.OAuthID != "" && u.OAuthID != externalID {
		return domain.User{}, ErrOAuthConflict
	}
	if u.OAuthID == "" {
		if err := b.Store.Users().LinkOAuthID(ctx, u.ID, externalID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.User{}, ErrOAuthConflict
			}
			return domain.User{}, fmt.Errorf("link oauth id: %w", err)
		}
		u.OAuthID = externalID
		slogx.FromContext(ctx).Info("oauth identity linked", "user_id", u.ID)
	}
	return u, nil
}

func displayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
