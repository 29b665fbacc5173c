package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// AuthorizationGate decides admin access. The allow-list is the source of
// truth; the stored flag is brought in line when a listed user comes through.
type AuthorizationGate struct {
	Store  store.Store
	Admins domain.AdminList
}

func (g *AuthorizationGate) Authorize(ctx context.Context, id Identity) error {
	if !g.Admins.Contains(id.Email) {
		return ErrForbidden
	}

	u, err := g.Store.Users().GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("load admin candidate: %w", err)
	}

	if !u.IsAdmin {
		if err := g.Store.Users().SetAdmin(ctx, u.ID, true); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		slogx.FromContext(ctx).Info("admin flag restored from allow-list", "user_id", u.ID)
	}
	return nil
}
