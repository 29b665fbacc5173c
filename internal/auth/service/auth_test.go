package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/pkg/cryptox"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t, "Ana", "  Ana@Example.com", "correcthorse")
	require.Equal(t, "ana@example.com", u.Email)
	require.False(t, u.IsAdmin)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "correcthorse", u.PasswordHash)
	require.Equal(t, "https://cdn.example.com/avatar.png", u.ProfilePicture)

	_, err := f.auth.Register(ctx, domain.Registration{Name: "Ana 2", Email: "ANA@example.com", Password: "correcthorse"})
	require.ErrorIs(t, err, ErrUserExists)

	_, err = f.auth.Register(ctx, domain.Registration{Name: "", Email: "ben@example.com", Password: "correcthorse"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.auth.Register(ctx, domain.Registration{Name: "Ben", Email: "ben@example.com", Password: "short"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "password must be at least 8 characters", verr.Msg)

	_, err = f.auth.Register(ctx, domain.Registration{Name: "Ben", Email: "ben@example.com", Password: strings.Repeat("x", 73)})
	require.ErrorIs(t, err, ErrValidation)

	root := f.register(t, "Root", adminEmail, "correcthorse")
	require.True(t, root.IsAdmin)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ana", "ana@example.com", "correcthorse")

	res, err := f.auth.Login(ctx, "ANA@example.com ", "correcthorse")
	require.NoError(t, err)
	require.Equal(t, u.ID, res.User.ID)
	require.NotEmpty(t, res.SessionID)
	require.NotEmpty(t, res.Token)
	require.True(t, res.User.IsLoggedIn)
	require.NotNil(t, res.User.LastLoginAt)
	require.Equal(t, domain.RoleUser, res.User.Role())

	stored, err := f.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.IsLoggedIn)
	require.True(t, f.clock.Now().Equal(*stored.LastLoginAt))

	_, err = f.auth.Login(ctx, "nobody@example.com", "correcthorse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Every single-bit corruption of the password must fail with the same error
// as an unknown email.
func TestAuthService_LoginBitFlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	password := "Tr0ub4dor&3"
	f.register(t, "Ana", "ana@example.com", password)

	_, err := f.auth.Login(ctx, "ana@example.com", password)
	require.NoError(t, err)

	raw := []byte(password)
	for i := range raw {
		for bit := range 8 {
			flipped := make([]byte, len(raw))
			copy(flipped, raw)
			flipped[i] ^= 1 << bit

			_, err := f.auth.Login(ctx, "ana@example.com", string(flipped))
			require.ErrorIs(t, err, ErrInvalidCredentials, "byte %d bit %d", i, bit)
		}
	}
}

func TestAuthService_LoginReconcilesAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.register(t, "Root", adminEmail, "correcthorse")
	require.NoError(t, f.store.Users().SetAdmin(ctx, root.ID, false))
	res, err := f.auth.Login(ctx, adminEmail, "correcthorse")
	require.NoError(t, err)
	require.True(t, res.User.IsAdmin)

	ana := f.register(t, "Ana", "ana@example.com", "correcthorse")
	require.NoError(t, f.store.Users().SetAdmin(ctx, ana.ID, true))
	res, err = f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)
	require.False(t, res.User.IsAdmin)

	stored, err := f.store.Users().GetUserByID(ctx, ana.ID)
	require.NoError(t, err)
	require.False(t, stored.IsAdmin)
}

func TestAuthService_LoginOAuthOnlyAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com", Name: "Ana", EmailVerified: true})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "ana@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "ana@example.com", "anything-at-all")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginWithoutHashStillPaysBcrypt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "oauth@example.com", Name: "Ana", EmailVerified: true})
	require.NoError(t, err)
	f.register(t, "Bob", "bob@example.com", "correcthorse")

	var burned []string
	orig := verifyDummy
	verifyDummy = func(password string) { burned = append(burned, password) }
	t.Cleanup(func() { verifyDummy = orig })

	_, err = f.auth.Login(ctx, "nobody@example.com", "guess-1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "oauth@example.com", "guess-2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "bob@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Equal(t, []string{"guess-1", "guess-2"}, burned)
}

func TestAuthService_LoginRehashes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ana", "ana@example.com", "correcthorse")

	cryptox.SetCost(bcrypt.MinCost + 1)
	t.Cleanup(func() { cryptox.SetCost(bcrypt.MinCost) })

	_, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)

	stored, err := f.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, u.PasswordHash, stored.PasswordHash)
	require.False(t, cryptox.NeedsRehash(stored.PasswordHash))
	require.Zero(t, stored.TokenVersion)
}

func TestAuthService_LogoutAndMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ana", "ana@example.com", "correcthorse")

	res, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)

	me, err := f.auth.Me(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", me.Name)
	require.Equal(t, "ana@example.com", me.Email)

	f.auth.Logout(ctx, u.ID, res.SessionID)

	stored, err := f.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, stored.IsLoggedIn)
	require.Equal(t, 1, stored.TokenVersion)

	// Anonymous logout and logout of a vanished user are harmless.
	f.auth.Logout(ctx, "", "")
	f.auth.Logout(ctx, "missing", "missing")

	_, err = f.auth.Me(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_LogoutEndsEveryToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ana", "ana@example.com", "correcthorse")

	first, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	second, err := f.auth.Login(ctx, "ana@example.com", "correcthorse")
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, second.SessionID)

	// Both logins stay valid until one of them logs out.
	_, err = f.resolver.Resolve(ctx, Credentials{Token: first.Token})
	require.NoError(t, err)

	f.auth.Logout(ctx, second.User.ID, second.SessionID)
	_, err = f.resolver.Resolve(ctx, Credentials{Token: first.Token})
	require.ErrorIs(t, err, ErrTokenInvalid)
}
