package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	f := newFixture(t)
	u := domain.User{ID: "01HZXTESTUSER", TokenVersion: 3}

	token, exp, err := f.tokens.Issue(u)
	require.NoError(t, err)
	require.Equal(t, f.clock.Now().Add(24*time.Hour).Unix(), exp.Unix())

	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, 3, claims.TokenVersion)
}

func TestTokenService_IssuedTooLongAgo(t *testing.T) {
	f := newFixture(t)

	// Issue with a clock 25h behind the verifier.
	past := f.clock.Now().Add(-25 * time.Hour)
	issuer := *f.tokens
	issuer.Clock = func() time.Time { return past }

	token, _, err := issuer.Issue(domain.User{ID: "01HZXTESTUSER"})
	require.NoError(t, err)

	_, err = f.tokens.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestTokenService_Garbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.tokens.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = f.tokens.Verify("")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
