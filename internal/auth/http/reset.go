package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type ResetHandler struct {
	Reset *service.PasswordResetService
}

// HandleRequest godoc
//
//	@Summary		Request a password reset link
//	@Description	The reply does not reveal whether the address is registered.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ResetPasswordRequest	true	"email"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	authsdk.APIError	"email missing"
//	@Failure		500		{object}	authsdk.APIError	"mail could not be sent"
//	@Router			/auth/resetpassword [post].
func (h *ResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		authsdk.ErrValidation.WithMessage("Email is required").WriteError(w)
		return
	}

	if err := h.Reset.Request(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "If an account exists for that email, a reset link has been sent",
	})
}

// HandleComplete godoc
//
//	@Summary	Change password with a reset token
//	@Tags		Password
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.ChangePasswordRequest	true	"token, password"
//	@Success	200		{object}	authsdk.MessageResponse
//	@Failure	400		{object}	authsdk.APIError	"Invalid or expired token"
//	@Router		/auth/changepasswordwithtoken [post].
func (h *ResetHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Reset.Complete(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Password has been reset successfully"})
}
