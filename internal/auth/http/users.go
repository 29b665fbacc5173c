package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type ProfileHandler struct {
	Users *service.UserService
}

// HandleUpdate godoc
//
//	@Summary		Update profile text
//	@Description	Empty fields keep their stored values.
//	@Tags			Users
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ProfileUpdateRequest	true	"bio, dribbbleProfile, behanceProfile"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		401		{object}	authsdk.APIError
//	@Router			/users/profile [put].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Users.UpdateProfile(r.Context(), mustIdentity(r).UserID, domain.ProfileUpdate{
		Bio:             req.Bio,
		DribbbleProfile: req.DribbbleProfile,
		BehanceProfile:  req.BehanceProfile,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
