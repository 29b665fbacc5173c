package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can't start another transaction by accident.
type Store interface {
	Users() Users
	Sessions() Sessions
	Follows() Follows

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByOAuthID(ctx context.Context, oauthID string) (domain.User, error)

	// GetUserByResetTokenHash finds the user holding a pending password reset.
	// Expiry is the caller's concern.
	GetUserByResetTokenHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists on a duplicate email or oauth id.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateLogin records a successful login: is_logged_in=1, last_login_at
	// and the reconciled admin flag.
	UpdateLogin(ctx context.Context, userID string, at time.Time, isAdmin bool) error

	// MarkLoggedOut clears is_logged_in and bumps token_version so tokens
	// issued before the logout stop resolving.
	MarkLoggedOut(ctx context.Context, userID string) error

	SetAdmin(ctx context.Context, userID string, isAdmin bool) error

	// LinkOAuthID attaches an external identity to an existing account.
	LinkOAuthID(ctx context.Context, userID, oauthID string) error

	UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) error

	SetPasswordReset(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// UpdatePasswordHash swaps the hash only. Used for cost upgrades at login.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	// UpdatePassword stores a new hash, clears any pending reset and bumps
	// token_version.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// DeleteUser cascades to sessions and follows (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns every user, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ClearExpiredPasswordResets is housekeeping. Returns rows touched.
	ClearExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error)
}

type Sessions interface {
	// CreateSession stores a session keyed by the fingerprint in s.ID.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns the session by fingerprint. Expired rows are still
	// returned; the caller decides.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping. Returns rows removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Follows interface {
	// Follow inserts the edge. Returns ErrAlreadyExists when it is present
	// and ErrNotFound when either user is missing.
	Follow(ctx context.Context, followerID, followeeID string, at time.Time) error

	// Unfollow removes the edge, ErrNotFound if it was not there.
	Unfollow(ctx context.Context, followerID, followeeID string) error

	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)

	// Followers lists users following userID, oldest edge first.
	Followers(ctx context.Context, userID string) ([]domain.UserSummary, error)

	// Following lists users that userID follows, oldest edge first.
	Following(ctx context.Context, userID string) ([]domain.UserSummary, error)
}
