package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// toAPIError maps a service error onto the response the client sees.
// Anything unrecognised becomes a 500 and the cause stays in the log.
func toAPIError(err error) *authsdk.APIError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return authsdk.ErrValidation.WithMessage(verr.Msg)
	case errors.Is(err, httpx.ErrBadJSON):
		return authsdk.ErrInvalidRequest.WithMessage("request body must be a single JSON object")
	case errors.Is(err, service.ErrInvalidCredentials):
		return authsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrUserExists):
		return authsdk.ErrUserExists
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrSessionNotFound):
		return authsdk.ErrUnauthenticated
	case errors.Is(err, service.ErrForbidden):
		return authsdk.ErrForbidden
	case errors.Is(err, service.ErrNotFound):
		return authsdk.ErrNotFound
	case errors.Is(err, service.ErrNoRecipients):
		return authsdk.ErrNotFound.WithMessage("No users found")
	case errors.Is(err, service.ErrSelfFollow):
		return authsdk.ErrConflict.WithMessage("You cannot follow yourself")
	case errors.Is(err, service.ErrAlreadyFollowing):
		return authsdk.ErrConflict.WithMessage("Already following this user")
	case errors.Is(err, service.ErrNotFollowing):
		return authsdk.ErrConflict.WithMessage("Not following this user")
	case errors.Is(err, service.ErrInvalidResetToken):
		return authsdk.ErrInvalidResetToken
	default:
		return authsdk.ErrServerError
	}
}

// writeError logs err at a level matching its class and writes the mapped
// response. It doubles as the httpx.ErrorWriter for the auth middlewares.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	log := slogx.FromContext(r.Context())

	switch {
	case apiErr.StatusCode >= http.StatusInternalServerError:
		log.Error("request failed", "err", err)
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		log.Info("request denied", "status", apiErr.StatusCode, "err", err)
	default:
		log.Debug("request rejected", "status", apiErr.StatusCode, "err", err)
	}

	apiErr.WriteError(w)
}
