package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// GoogleHandler drives the browser through Google sign-in. Every failure on
// the callback lands back on the login page.
type GoogleHandler struct {
	Provider  *service.GoogleProvider
	Bridge    *service.OAuthBridge
	Cookies   CookieConfig
	Redirects Redirects
}

// HandleRedirect godoc
//
//	@Summary	Start Google sign-in
//	@Tags		OAuth
//	@Success	302
//	@Failure	404	{object}	authsdk.APIError	"Google login is not configured"
//	@Router		/auth/google [get].
func (h *GoogleHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		authsdk.ErrNotFound.WithMessage("Google login is not configured").WriteError(w)
		return
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookies.setState(w, state)
	http.Redirect(w, r, h.Provider.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		Google sign-in callback
//	@Description	Redirects to the dashboard (or the admin dashboard) with a
//	@Description	session cookie set, or to the login page on failure.
//	@Tags			OAuth
//	@Param			state	query	string	true	"state echoed by Google"
//	@Param			code	query	string	true	"authorization code"
//	@Success		302
//	@Router			/auth/google/callback [get].
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Provider == nil {
		authsdk.ErrNotFound.WithMessage("Google login is not configured").WriteError(w)
		return
	}

	expected := cookieValue(r, authsdk.StateCookie)
	h.Cookies.clear(w, authsdk.StateCookie)

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		log.Info("google sign-in declined", "reason", e)
		h.fail(w, r)
		return
	}
	if expected == "" || !cryptox.EqualTokens(expected, q.Get("state")) {
		log.Warn("google callback state mismatch")
		h.fail(w, r)
		return
	}
	code := q.Get("code")
	if code == "" {
		log.Warn("google callback without code")
		h.fail(w, r)
		return
	}

	assertion, err := h.Provider.Exchange(ctx, code)
	if err != nil {
		log.Error("google exchange failed", "err", err)
		h.fail(w, r)
		return
	}

	u, raw, err := h.Bridge.CompleteLogin(ctx, assertion)
	if err != nil {
		log.Warn("google login rejected", "err", err)
		h.fail(w, r)
		return
	}

	h.Cookies.setSession(w, raw)
	target := h.Redirects.Dashboard
	if u.IsAdmin {
		target = h.Redirects.AdminDashboard
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *GoogleHandler) fail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Redirects.Login, http.StatusFound)
}
