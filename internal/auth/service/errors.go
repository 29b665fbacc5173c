package service

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
)

var (
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrTokenInvalid        = errors.New("token_invalid")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation_failed")
	ErrUserExists          = errors.New("user_exists")
	ErrNotFound            = errors.New("not_found")
	ErrAlreadyFollowing    = errors.New("already_following")
	ErrNotFollowing        = errors.New("not_following")
	ErrSelfFollow          = errors.New("self_follow")
	ErrInvalidResetToken   = errors.New("invalid_reset_token")
	ErrSessionNotFound     = errors.New("session_not_found")
	ErrInvalidAssertion    = errors.New("invalid_assertion")
	ErrEmailNotVerified    = errors.New("email_not_verified")
	ErrOAuthConflict       = errors.New("oauth_conflict")
	ErrNoRecipients        = errors.New("no_recipients")
	ErrBroadcastIncomplete = errors.New("broadcast_incomplete")
)

// ValidationError carries a message that is safe to show to the client.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// invalidDomain converts a domain validation error, dropping the package prefix.
func invalidDomain(err error) error {
	msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidUser.Error()+": ")
	return &ValidationError{Msg: msg}
}
