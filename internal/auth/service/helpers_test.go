package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/mailx"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "folio-auth"
	adminEmail = "root@example.com"
)

func TestMain(m *testing.M) {
	cryptox.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

// testClock is a settable clock shared by every service in a fixture.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store    store.Store
	clock    *testClock
	mailer   *mailx.LogMailer
	tokens   *TokenService
	sessions *SessionService
	resolver *IdentityResolver
	gate     *AuthorizationGate
	auth     *AuthService
	oauth    *OAuthBridge
	reset    *PasswordResetService
	follows  *FollowService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	clock := &testClock{now: time.Now().UTC().Truncate(time.Millisecond)}
	admins := domain.NewAdminList(adminEmail)

	signer, err := jwtx.NewSignerHS256("", []byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), jwtx.VerifyOptions{
		Issuer: testIssuer,
		Now:    clock.Now,
	})
	require.NoError(t, err)

	f := &fixture{store: s, clock: clock, mailer: mailx.NewLogMailer()}
	f.tokens = &TokenService{Signer: signer, Verifier: verifier, Issuer: testIssuer, TTL: 24 * time.Hour, Clock: clock.Now}
	f.sessions = &SessionService{Store: s, TTL: 24 * time.Hour, Clock: clock.Now}
	f.resolver = &IdentityResolver{Sessions: f.sessions, Tokens: f.tokens, Store: s}
	f.gate = &AuthorizationGate{Store: s, Admins: admins}
	f.auth = &AuthService{
		Store:                 s,
		Sessions:              f.sessions,
		Tokens:                f.tokens,
		Admins:                admins,
		Clock:                 clock.Now,
		DefaultProfilePicture: "https://cdn.example.com/avatar.png",
	}
	f.oauth = &OAuthBridge{Store: s, Sessions: f.sessions, Admins: admins, Clock: clock.Now}
	f.reset = &PasswordResetService{
		Store:    s,
		Sessions: f.sessions,
		Mailer:   f.mailer,
		ResetURL: "https://folio.example.com/changepasswordwithtoken",
		TTL:      time.Hour,
		Clock:    clock.Now,
	}
	f.follows = &FollowService{Store: s, Clock: clock.Now}
	f.users = &UserService{Store: s}
	return f
}

func (f *fixture) register(t *testing.T, name, email, password string) domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), domain.Registration{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return u
}
