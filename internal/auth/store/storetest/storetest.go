// Package storetest is a conformance suite every store driver runs against
// itself, so sqlite and postgres behave the same for the services.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/idx"

	"github.com/stretchr/testify/require"
)

// Factory returns a freshly migrated, empty store.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("UserConstraints", func(t *testing.T) { testUserConstraints(t, newStore(t)) })
	t.Run("PasswordReset", func(t *testing.T) { testPasswordReset(t, newStore(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newStore(t)) })
	t.Run("Follows", func(t *testing.T) { testFollows(t, newStore(t)) })
	t.Run("FollowStorm", func(t *testing.T) { testFollowStorm(t, newStore(t)) })
	t.Run("Cascade", func(t *testing.T) { testCascade(t, newStore(t)) })
	t.Run("WithTx", func(t *testing.T) { testWithTx(t, newStore(t)) })
}

// NewUser builds a local account with a unique id and email.
func NewUser(name string) domain.User {
	id := idx.New().String()
	return domain.User{
		ID:           id,
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, strings.ToLower(id)),
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol",
	}
}

func mustCreate(t *testing.T, s store.Store, name string) domain.User {
	t.Helper()
	u := NewUser(name)
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := NewUser("ana")
	u.Bio = "hello"
	u.ProfilePicture = "https://cdn.example.com/default.png"
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Name, got.Name)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.Equal(t, "hello", got.Bio)
	require.Empty(t, got.OAuthID)
	require.False(t, got.IsAdmin)
	require.Zero(t, got.TokenVersion)
	require.Nil(t, got.LastLoginAt)
	require.False(t, got.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.Users().UpdateLogin(ctx, u.ID, at, true))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsLoggedIn)
	require.True(t, got.IsAdmin)
	require.NotNil(t, got.LastLoginAt)
	require.True(t, at.Equal(*got.LastLoginAt))

	require.NoError(t, s.Users().MarkLoggedOut(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsLoggedIn)
	require.Equal(t, 1, got.TokenVersion)

	require.NoError(t, s.Users().SetAdmin(ctx, u.ID, false))
	require.ErrorIs(t, s.Users().SetAdmin(ctx, "missing", true), store.ErrNotFound)

	require.NoError(t, s.Users().LinkOAuthID(ctx, u.ID, "google-123"))
	byOAuth, err := s.Users().GetUserByOAuthID(ctx, "google-123")
	require.NoError(t, err)
	require.Equal(t, u.ID, byOAuth.ID)
	require.False(t, byOAuth.IsAdmin)

	require.NoError(t, s.Users().UpdateProfile(ctx, u.ID, domain.ProfileUpdate{DribbbleProfile: "https://dribbble.com/ana"}))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Bio, "empty field keeps stored value")
	require.Equal(t, "https://dribbble.com/ana", got.DribbbleProfile)

	second := mustCreate(t, s, "ben")
	all, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, s.Users().DeleteUser(ctx, second.ID))
	require.ErrorIs(t, s.Users().DeleteUser(ctx, second.ID), store.ErrNotFound)
}

func testUserConstraints(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreate(t, s, "ana")

	dup := NewUser("ana2")
	dup.Email = u.Email
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	oauthOnly := NewUser("cat")
	oauthOnly.PasswordHash = ""
	oauthOnly.OAuthID = "google-1"
	require.NoError(t, s.Users().CreateUser(ctx, oauthOnly))

	clash := NewUser("dan")
	clash.OAuthID = "google-1"
	require.ErrorIs(t, s.Users().CreateUser(ctx, clash), store.ErrAlreadyExists)

	require.ErrorIs(t, s.Users().LinkOAuthID(ctx, u.ID, "google-1"), store.ErrAlreadyExists)

	noAuth := NewUser("eve")
	noAuth.PasswordHash = ""
	require.Error(t, s.Users().CreateUser(ctx, noAuth), "a user needs a password or an oauth id")
}

func testPasswordReset(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreate(t, s, "ana")
	now := time.Now()

	require.NoError(t, s.Users().SetPasswordReset(ctx, u.ID, "reset-hash", now.Add(time.Hour)))
	got, err := s.Users().GetUserByResetTokenHash(ctx, "reset-hash")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.ResetTokenValid(now))

	n, err := s.Users().ClearExpiredPasswordResets(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$2a$04$rehashed"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$04$rehashed", got.PasswordHash)
	require.Zero(t, got.TokenVersion, "a rehash keeps tokens alive")
	require.Equal(t, "reset-hash", got.PasswordResetTokenHash)

	require.NoError(t, s.Users().UpdatePassword(ctx, u.ID, "$2a$04$newhash"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$04$newhash", got.PasswordHash)
	require.Empty(t, got.PasswordResetTokenHash)
	require.Nil(t, got.PasswordResetExpiresAt)
	require.Equal(t, 1, got.TokenVersion)

	_, err = s.Users().GetUserByResetTokenHash(ctx, "reset-hash")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().SetPasswordReset(ctx, u.ID, "stale", now.Add(-time.Minute)))
	n, err = s.Users().ClearExpiredPasswordResets(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func testSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreate(t, s, "ana")
	now := time.Now().UTC().Truncate(time.Millisecond)

	sess := domain.Session{
		ID:        "fingerprint-1",
		UserID:    u.ID,
		User:      domain.SnapshotOf(u),
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	got, err := s.Sessions().GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.User, got.User)
	require.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	_, err = s.Sessions().GetSession(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)

	expired := sess
	expired.ID = "fingerprint-2"
	expired.ExpiresAt = now.Add(-time.Minute)
	require.NoError(t, s.Sessions().CreateSession(ctx, expired))

	n, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, s.Sessions().DeleteSession(ctx, sess.ID))
	_, err = s.Sessions().GetSession(ctx, sess.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.Sessions().DeleteSession(ctx, sess.ID), "deleting twice is fine")

	for i := range 3 {
		extra := sess
		extra.ID = fmt.Sprintf("fp-%d", i)
		require.NoError(t, s.Sessions().CreateSession(ctx, extra))
	}
	require.NoError(t, s.Sessions().DeleteUserSessions(ctx, u.ID))
	_, err = s.Sessions().GetSession(ctx, "fp-0")
	require.ErrorIs(t, err, store.ErrNotFound)

	orphan := sess
	orphan.ID = "fp-orphan"
	orphan.UserID = "missing"
	require.Error(t, s.Sessions().CreateSession(ctx, orphan))
}

func testFollows(t *testing.T, s store.Store) {
	ctx := context.Background()
	ana := mustCreate(t, s, "ana")
	ben := mustCreate(t, s, "ben")
	cat := mustCreate(t, s, "cat")
	now := time.Now()

	require.NoError(t, s.Follows().Follow(ctx, ana.ID, ben.ID, now))
	require.ErrorIs(t, s.Follows().Follow(ctx, ana.ID, ben.ID, now), store.ErrAlreadyExists)
	require.NoError(t, s.Follows().Follow(ctx, cat.ID, ben.ID, now.Add(time.Second)))
	require.ErrorIs(t, s.Follows().Follow(ctx, ana.ID, "missing", now), store.ErrNotFound)

	ok, err := s.Follows().IsFollowing(ctx, ana.ID, ben.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Follows().IsFollowing(ctx, ben.ID, ana.ID)
	require.NoError(t, err)
	require.False(t, ok)

	followers, err := s.Follows().Followers(ctx, ben.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.UserSummary{ana.Summary(), cat.Summary()}, followers)

	following, err := s.Follows().Following(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.UserSummary{ben.Summary()}, following)

	none, err := s.Follows().Following(ctx, ben.ID)
	require.NoError(t, err)
	require.Empty(t, none)

	require.NoError(t, s.Follows().Unfollow(ctx, ana.ID, ben.ID))
	require.ErrorIs(t, s.Follows().Unfollow(ctx, ana.ID, ben.ID), store.ErrNotFound)
}

// testFollowStorm races follow and unfollow on one pair. Whatever the
// interleaving, the edge exists at most once.
func testFollowStorm(t *testing.T, s store.Store) {
	ctx := context.Background()
	ana := mustCreate(t, s, "ana")
	ben := mustCreate(t, s, "ben")

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				err = s.Follows().Follow(ctx, ana.ID, ben.ID, time.Now())
			} else {
				err = s.Follows().Unfollow(ctx, ana.ID, ben.ID)
			}
			if err != nil && !errors.Is(err, store.ErrAlreadyExists) && !errors.Is(err, store.ErrNotFound) {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	followers, err := s.Follows().Followers(ctx, ben.ID)
	require.NoError(t, err)
	following, err := s.Follows().Following(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, len(followers), len(following))
	require.LessOrEqual(t, len(followers), 1)

	// Sequential ops reflect the last one.
	_ = s.Follows().Unfollow(ctx, ana.ID, ben.ID)
	require.NoError(t, s.Follows().Follow(ctx, ana.ID, ben.ID, time.Now()))
	ok, err := s.Follows().IsFollowing(ctx, ana.ID, ben.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

func testCascade(t *testing.T, s store.Store) {
	ctx := context.Background()
	ana := mustCreate(t, s, "ana")
	ben := mustCreate(t, s, "ben")

	require.NoError(t, s.Follows().Follow(ctx, ana.ID, ben.ID, time.Now()))
	require.NoError(t, s.Follows().Follow(ctx, ben.ID, ana.ID, time.Now()))
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		ID:        "fp-ana",
		UserID:    ana.ID,
		User:      domain.SnapshotOf(ana),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, s.Users().DeleteUser(ctx, ana.ID))

	_, err := s.Sessions().GetSession(ctx, "fp-ana")
	require.ErrorIs(t, err, store.ErrNotFound)

	followers, err := s.Follows().Followers(ctx, ben.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
	following, err := s.Follows().Following(ctx, ben.ID)
	require.NoError(t, err)
	require.Empty(t, following)
}

func testWithTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := NewUser("ana")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "rolled back")

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
}
