package domain

import "time"

// SessionUser is the identity snapshot taken when a session is created.
// It is not refreshed; handlers needing current data re-read the user.
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func SnapshotOf(u User) SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// Session is a server side login record. ID is the fingerprint of the
// raw value held in the client's cookie, never the raw value itself.
type Session struct {
	ID        string
	UserID    string
	User      SessionUser
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
