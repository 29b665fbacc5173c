package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Resolver *service.IdentityResolver
	Cookies  CookieConfig
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a local account. Does not log in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"name, email, password"
//	@Success		201		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.APIError	"validation failure or email already registered"
//	@Failure		500		{object}	authsdk.APIError
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Auth.Register(r.Context(), domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.AuthResponse{
		Message: "User registered successfully",
		User:    toAuthUser(u),
	})
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Check email and password; sets the sid and token cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.APIError	"invalid_credentials"
//	@Failure		500		{object}	authsdk.APIError
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, service.ErrInvalidCredentials)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookies.setSession(w, res.SessionID)
	h.Cookies.setToken(w, res.Token)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		Message: "Login successful",
		User:    toAuthUser(res.User),
	})
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		404	{object}	authsdk.APIError	"account no longer exists"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id := mustIdentity(r)

	u, err := h.Auth.Me(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Always succeeds. Clears both cookies, destroys the session
//	@Description	and invalidates outstanding tokens for the resolved user.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := credentialsFrom(r)

	id, ok := service.IdentityFromContext(ctx)
	if !ok {
		resolved, err := h.Resolver.Resolve(ctx, creds)
		if err != nil {
			slogx.FromContext(ctx).Debug("logout without identity", "err", err)
		} else {
			id = resolved
		}
	}

	h.Auth.Logout(ctx, id.UserID, creds.SessionID)
	h.Cookies.clearAuth(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Logged out successfully"})
}
