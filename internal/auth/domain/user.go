package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	MinPasswordLength = 8
	MaxNameLength     = 100
	MaxBioLength      = 500
)

var ErrInvalidUser = errors.New("domain: invalid user")

type User struct {
	ID           string
	Name         string
	Email        string // always normalized, see NormalizeEmail
	PasswordHash string // bcrypt, empty for OAuth-only accounts
	OAuthID      string // Google sub, empty for local accounts
	IsAdmin      bool
	IsLoggedIn   bool // display only, never used to authenticate
	LastLoginAt  *time.Time
	TokenVersion int

	PasswordResetTokenHash string
	PasswordResetExpiresAt *time.Time

	Bio             string
	DribbbleProfile string
	BehanceProfile  string
	ProfilePicture  string
	BannerImage     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAuthMethod reports whether the user can log in at all.
func (u User) HasAuthMethod() bool {
	return u.PasswordHash != "" || u.OAuthID != ""
}

func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ResetTokenValid reports whether a pending password reset is still usable at now.
func (u User) ResetTokenValid(now time.Time) bool {
	return u.PasswordResetTokenHash != "" &&
		u.PasswordResetExpiresAt != nil &&
		now.Before(*u.PasswordResetExpiresAt)
}

// Summary is the public projection used by follower listings.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
}

// NormalizeEmail lowercases and trims an address. Every write and lookup
// goes through it so "Ana@X.com" and "ana@x.com " are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Registration is the input to local sign up.
type Registration struct {
	Name     string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidUser, MaxNameLength)
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidUser)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUser, MinPasswordLength)
	}
	return nil
}

// UserSummary is what other users get to see in follow listings.
type UserSummary struct {
	ID             string
	Name           string
	ProfilePicture string
}

// ProfileUpdate carries the editable text fields. Empty fields keep the
// stored value.
type ProfileUpdate struct {
	Bio             string
	DribbbleProfile string
	BehanceProfile  string
}

func (p ProfileUpdate) Validate() error {
	if utf8.RuneCountInString(p.Bio) > MaxBioLength {
		return fmt.Errorf("%w: bio must be at most %d characters", ErrInvalidUser, MaxBioLength)
	}
	return nil
}

// Apply returns u with the non-empty fields of p copied over.
func (p ProfileUpdate) Apply(u User) User {
	if p.Bio != "" {
		u.Bio = p.Bio
	}
	if p.DribbbleProfile != "" {
		u.DribbbleProfile = p.DribbbleProfile
	}
	if p.BehanceProfile != "" {
		u.BehanceProfile = p.BehanceProfile
	}
	return u
}
