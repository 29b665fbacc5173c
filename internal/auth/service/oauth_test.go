package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestOAuthBridge_CompleteLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new account", func(t *testing.T) {
		f := newFixture(t)
		u, raw, err := f.oauth.CompleteLogin(ctx, Assertion{
			ExternalID:    "g-1",
			Email:         "Ana@Example.com",
			Name:          "Ana",
			EmailVerified: true,
			Picture:       "https://lh3.example.com/ana.png",
		})
		require.NoError(t, err)
		require.NotEmpty(t, raw)
		require.Equal(t, "ana@example.com", u.Email)
		require.Equal(t, "g-1", u.OAuthID)
		require.Empty(t, u.PasswordHash)
		require.True(t, u.IsLoggedIn)
		require.Equal(t, "https://lh3.example.com/ana.png", u.ProfilePicture)

		id, err := f.resolver.Resolve(ctx, Credentials{SessionID: raw})
		require.NoError(t, err)
		require.Equal(t, u.ID, id.UserID)
	})

	t.Run("links an existing local account by email", func(t *testing.T) {
		f := newFixture(t)
		local := f.register(t, "Ana", "ana@example.com", "correcthorse")

		u, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com", EmailVerified: true})
		require.NoError(t, err)
		require.Equal(t, local.ID, u.ID)

		stored, err := f.store.Users().GetUserByOAuthID(ctx, "g-1")
		require.NoError(t, err)
		require.Equal(t, local.ID, stored.ID)
		require.NotEmpty(t, stored.PasswordHash, "password login keeps working")

		_, err = f.auth.Login(ctx, "ana@example.com", "correcthorse")
		require.NoError(t, err)
	})

	t.Run("returning user is found by external id", func(t *testing.T) {
		f := newFixture(t)
		first, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com", EmailVerified: true})
		require.NoError(t, err)
		require.Equal(t, "ana", first.Name, "falls back to the email local part")

		again, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com", EmailVerified: true})
		require.NoError(t, err)
		require.Equal(t, first.ID, again.ID)
	})

	t.Run("email bound to another external id", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com", EmailVerified: true})
		require.NoError(t, err)

		_, _, err = f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-2", Email: "ana@example.com", EmailVerified: true})
		require.ErrorIs(t, err, ErrOAuthConflict)
	})

	t.Run("admin derived from allow-list", func(t *testing.T) {
		f := newFixture(t)
		u, _, err := f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-root", Email: adminEmail, EmailVerified: true})
		require.NoError(t, err)
		require.True(t, u.IsAdmin)
	})

	t.Run("rejects incomplete or unverified assertions", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.oauth.CompleteLogin(ctx, Assertion{Email: "ana@example.com", EmailVerified: true})
		require.ErrorIs(t, err, ErrInvalidAssertion)

		_, _, err = f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", EmailVerified: true})
		require.ErrorIs(t, err, ErrInvalidAssertion)

		_, _, err = f.oauth.CompleteLogin(ctx, Assertion{ExternalID: "g-1", Email: "ana@example.com"})
		require.ErrorIs(t, err, ErrEmailNotVerified)
	})
}

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T, info map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleProvider(t *testing.T) {
	srv := fakeGoogle(t, map[string]any{
		"sub":            "g-42",
		"email":          "ana@example.com",
		"email_verified": true,
		"name":           "Ana",
		"picture":        "https://lh3.example.com/ana.png",
	})

	p := NewGoogleProvider("client-id", "client-secret", "https://folio.example.com/auth/google/callback").
		WithEndpoints(oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}, srv.URL+"/userinfo")

	t.Run("auth code url", func(t *testing.T) {
		u, err := url.Parse(p.AuthCodeURL("state-xyz"))
		require.NoError(t, err)
		q := u.Query()
		require.Equal(t, "state-xyz", q.Get("state"))
		require.Equal(t, "select_account", q.Get("prompt"))
		require.Equal(t, "openid email profile", q.Get("scope"))
		require.Equal(t, "client-id", q.Get("client_id"))
	})

	t.Run("exchange", func(t *testing.T) {
		a, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		require.Equal(t, Assertion{
			ExternalID:    "g-42",
			Email:         "ana@example.com",
			Name:          "Ana",
			EmailVerified: true,
			Picture:       "https://lh3.example.com/ana.png",
		}, a)
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := p.Exchange(context.Background(), "bad-code")
		require.Error(t, err)
	})
}
