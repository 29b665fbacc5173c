package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret-pass" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "raw-session", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: TokenCookie, Value: "jwt", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{
			Message: "Login successful",
			User:    AuthUser{ID: "u1", Name: "Ada", Email: req.Email, Role: "user"},
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value != "raw-session" {
			ErrUnauthenticated.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "u1", Name: "Ada"})
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCookieFlow(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	client := NewSDKClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthenticated)

	resp, err := client.Login(ctx, "ada@example.com", "secret-pass")
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User.ID)
	require.Equal(t, "raw-session", client.Cookie(SessionCookie))
	require.Equal(t, "jwt", client.Cookie(TokenCookie))

	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)

	client.SetCookie(SessionCookie, "stale")
	_, err = client.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClientErrorParsing(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	client := NewSDKClient(srv.URL)
	ctx := context.Background()

	t.Run("typed error", func(t *testing.T) {
		_, err := client.Login(ctx, "ada@example.com", "wrong")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
		require.Equal(t, "Invalid credentials", apiErr.Message)
	})

	t.Run("non json body", func(t *testing.T) {
		_, err := client.GetLiveness(ctx)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Equal(t, ErrorCodeServerError, apiErr.Code)
	})
}

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrForbidden.WithMessage("admins only").WriteError(rec)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]string{"error": "forbidden", "message": "admins only"}, body)
}
