package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// AdminHandler serves /admin/*. Every route sits behind the gate.
type AdminHandler struct {
	Users     *service.UserService
	Broadcast *service.BroadcastService
}

// HandleDashboard godoc
//
//	@Summary	Admin access probe
//	@Tags		Admin
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	authsdk.AdminDashboardResponse
//	@Failure	401	{object}	authsdk.APIError
//	@Failure	403	{object}	authsdk.APIError
//	@Router		/admin/admin-dashboard [get].
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.AdminDashboardResponse{Message: "Welcome Admin!", IsAdmin: true})
}

// HandleListUsers godoc
//
//	@Summary	List all users
//	@Tags		Admin
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{array}		authsdk.AdminUser
//	@Failure	403	{object}	authsdk.APIError
//	@Router		/admin/all-users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]authsdk.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteUser godoc
//
//	@Summary	Delete a user
//	@Tags		Admin
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"user id"
//	@Success	200	{object}	authsdk.MessageResponse
//	@Failure	404	{object}	authsdk.APIError
//	@Router		/admin/delete-user/{id} [delete].
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Users.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "User deleted successfully"})
}

// HandleSendEmail godoc
//
//	@Summary		Email every user
//	@Description	The "email" field is the message body.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.SendEmailRequest	true	"subject, email"
//	@Success		200		{object}	authsdk.SendEmailResponse	"success is false when some deliveries failed"
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		404		{object}	authsdk.APIError	"no users"
//	@Failure		500		{object}	authsdk.APIError	"mail delivery failed"
//	@Router			/admin/send-email [post].
func (h *AdminHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SendEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Email) == "" {
		authsdk.ErrValidation.WithMessage("Subject and email content are required").WriteError(w)
		return
	}

	res, err := h.Broadcast.Send(r.Context(), req.Subject, req.Email)
	if err != nil && !(errors.Is(err, service.ErrBroadcastIncomplete) && res.Sent > 0) {
		writeError(w, r, err)
		return
	}

	// Some recipients were mailed: report the counts, not an error.
	if err != nil {
		slogx.FromContext(r.Context()).Warn("broadcast partially delivered", "err", err)
		httpx.WriteJSON(w, http.StatusOK, authsdk.SendEmailResponse{
			Success: false,
			Message: fmt.Sprintf("Email sent to %d of %d users", res.Sent, res.Recipients),
			Sent:    res.Sent,
			Failed:  res.Failed,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SendEmailResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent to %d users", res.Sent),
		Sent:    res.Sent,
	})
}
