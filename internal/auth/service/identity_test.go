package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"

	"github.com/stretchr/testify/require"
)

func TestIdentityResolver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ana", "ana@example.com", "correcthorse")

	login, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)

	t.Run("session wins", func(t *testing.T) {
		id, err := f.resolver.Resolve(ctx, Credentials{SessionID: login.SessionID, Token: login.Token})
		require.NoError(t, err)
		require.Equal(t, SourceSession, id.Source)
		require.Equal(t, login.User.ID, id.UserID)
	})

	t.Run("valid session with broken token", func(t *testing.T) {
		id, err := f.resolver.Resolve(ctx, Credentials{SessionID: login.SessionID, Token: "garbage"})
		require.NoError(t, err)
		require.Equal(t, SourceSession, id.Source)
	})

	t.Run("token alone", func(t *testing.T) {
		id, err := f.resolver.Resolve(ctx, Credentials{Token: login.Token})
		require.NoError(t, err)
		require.Equal(t, SourceToken, id.Source)
		require.Equal(t, "Ana", id.Name)
	})

	t.Run("unknown session falls back to token", func(t *testing.T) {
		id, err := f.resolver.Resolve(ctx, Credentials{SessionID: "unknown", Token: login.Token})
		require.NoError(t, err)
		require.Equal(t, SourceToken, id.Source)
	})

	t.Run("invalid token without session", func(t *testing.T) {
		_, err := f.resolver.Resolve(ctx, Credentials{Token: "garbage"})
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("nothing presented", func(t *testing.T) {
		_, err := f.resolver.Resolve(ctx, Credentials{})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("logout kills both credentials", func(t *testing.T) {
		f.auth.Logout(ctx, login.User.ID, login.SessionID)

		_, err := f.resolver.Resolve(ctx, Credentials{Token: login.Token})
		require.ErrorIs(t, err, ErrTokenInvalid)

		_, err = f.resolver.Resolve(ctx, Credentials{SessionID: login.SessionID})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestIdentityResolver_DeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ana", "ana@example.com", "correcthorse")

	login, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)
	require.NoError(t, f.users.DeleteUser(ctx, login.User.ID))

	_, err = f.resolver.Resolve(ctx, Credentials{SessionID: login.SessionID})
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.resolver.Resolve(ctx, Credentials{Token: login.Token})
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	require.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: "u1"})
	id, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", id.UserID)
}

var errStoreDown = errors.New("store unreachable")

// outageStore wraps a real store and fails the repos that are switched off.
type outageStore struct {
	store.Store
	usersDown    bool
	sessionsDown bool
}

func (s *outageStore) Users() store.Users {
	if s.usersDown {
		return downUsers{s.Store.Users()}
	}
	return s.Store.Users()
}

func (s *outageStore) Sessions() store.Sessions {
	if s.sessionsDown {
		return downSessions{s.Store.Sessions()}
	}
	return s.Store.Sessions()
}

type downUsers struct{ store.Users }

func (downUsers) GetUserByID(context.Context, string) (domain.User, error) {
	return domain.User{}, errStoreDown
}

type downSessions struct{ store.Sessions }

func (downSessions) GetSession(context.Context, string) (domain.Session, error) {
	return domain.Session{}, errStoreDown
}

func TestIdentityResolver_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ana", "ana@example.com", "correcthorse")

	login, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)

	resolverOn := func(st store.Store) *IdentityResolver {
		sessions := &SessionService{Store: st, TTL: f.sessions.TTL, Clock: f.sessions.Clock}
		return &IdentityResolver{Sessions: sessions, Tokens: f.tokens, Store: st}
	}

	t.Run("session lookup fails", func(t *testing.T) {
		r := resolverOn(&outageStore{Store: f.store, sessionsDown: true})

		// The token is valid, but a store failure must not fall through to it.
		_, err := r.Resolve(ctx, Credentials{SessionID: login.SessionID, Token: login.Token})
		require.ErrorIs(t, err, errStoreDown)
		require.NotErrorIs(t, err, ErrUnauthenticated)
		require.NotErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("token user lookup fails", func(t *testing.T) {
		r := resolverOn(&outageStore{Store: f.store, usersDown: true})

		_, err := r.Resolve(ctx, Credentials{Token: login.Token})
		require.ErrorIs(t, err, errStoreDown)
		require.NotErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("gate lookup fails", func(t *testing.T) {
		gate := &AuthorizationGate{Store: &outageStore{Store: f.store, usersDown: true}, Admins: domain.NewAdminList("ana@example.com")}

		err := gate.Authorize(ctx, Identity{UserID: login.User.ID, Email: login.User.Email})
		require.ErrorIs(t, err, errStoreDown)
		require.NotErrorIs(t, err, ErrForbidden)
		require.NotErrorIs(t, err, ErrUnauthenticated)
	})
}
