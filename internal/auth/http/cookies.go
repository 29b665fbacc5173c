package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
)

const stateCookieTTL = 10 * time.Minute

// CookieConfig controls the credential cookies handed to browsers.
type CookieConfig struct {
	Secure     bool
	SessionTTL time.Duration
	TokenTTL   time.Duration
}

func (c CookieConfig) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) setSession(w http.ResponseWriter, raw string) {
	http.SetCookie(w, c.cookie(authsdk.SessionCookie, raw, orDefault(c.SessionTTL, service.DefaultSessionTTL)))
}

func (c CookieConfig) setToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(authsdk.TokenCookie, token, orDefault(c.TokenTTL, service.DefaultSessionTTL)))
}

func (c CookieConfig) setState(w http.ResponseWriter, state string) {
	http.SetCookie(w, c.cookie(authsdk.StateCookie, state, stateCookieTTL))
}

func (c CookieConfig) clear(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		ck := c.cookie(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		http.SetCookie(w, ck)
	}
}

func (c CookieConfig) clearAuth(w http.ResponseWriter) {
	c.clear(w, authsdk.SessionCookie, authsdk.TokenCookie)
}

// credentialsFrom reads whatever credentials the request carries.
func credentialsFrom(r *http.Request) service.Credentials {
	return service.Credentials{
		SessionID: cookieValue(r, authsdk.SessionCookie),
		Token:     cookieValue(r, authsdk.TokenCookie),
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
