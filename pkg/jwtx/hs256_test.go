package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "folio-auth"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newPair(t *testing.T, now func() time.Time) (jwtx.Signer, *jwtx.HS256Verifier) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("", testSecret)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	verifier, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{
		Issuer: exampleIssuer,
		Now:    now,
	})
	require.NoError(t, err)
	return signer, verifier
}

func TestHS256SignAndVerify(t *testing.T) {
	signer, verifier := newPair(t, nil)
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewUserClaims("user-123", 2, time.Hour, exampleIssuer, now))
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, 2, claims.TokenVersion)
}

func TestHS256PayloadShape(t *testing.T) {
	signer, _ := newPair(t, nil)

	token, err := signer.Sign(jwtx.NewUserClaims("user-123", 0, time.Hour, exampleIssuer, time.Now()))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "user-123", payload["id"])
	require.Contains(t, payload, "exp")
}

func TestHS256Expired(t *testing.T) {
	issuedAt := time.Now().UTC().Add(-25 * time.Hour)

	signer, verifier := newPair(t, nil)
	token, err := signer.Sign(jwtx.NewUserClaims("user-123", 0, jwtx.DefaultUserTokenTTL, exampleIssuer, issuedAt))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256ClockOverride(t *testing.T) {
	now := time.Now().UTC()
	later := func() time.Time { return now.Add(jwtx.DefaultUserTokenTTL + time.Second) }

	signer, verifier := newPair(t, later)
	token, err := signer.Sign(jwtx.NewUserClaims("user-123", 0, jwtx.DefaultUserTokenTTL, exampleIssuer, now))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256Rejections(t *testing.T) {
	signer, verifier := newPair(t, nil)
	now := time.Now().UTC()

	good, err := signer.Sign(jwtx.NewUserClaims("user-123", 0, time.Hour, exampleIssuer, now))
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(good, ".")
		forged, err := json.Marshal(map[string]any{"id": "admin", "exp": now.Add(time.Hour).Unix()})
		require.NoError(t, err)
		parts[1] = base64.RawURLEncoding.EncodeToString(forged)

		_, err = verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("different secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256("", []byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewUserClaims("user-123", 0, time.Hour, exampleIssuer, now))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("none algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwtx.NewUserClaims("user-123", 0, time.Hour, exampleIssuer, now))
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewUserClaims("user-123", 0, time.Hour, "elsewhere", now))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestHS256WeakSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256("", []byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewVerifierHS256([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
