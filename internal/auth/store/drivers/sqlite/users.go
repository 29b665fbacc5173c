package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
)

const userColumns = `id, name, email, password_hash, oauth_id, is_admin, is_logged_in,
	last_login_at, token_version, password_reset_token_hash, password_reset_expires_at,
	bio, dribbble_profile, behance_profile, profile_picture, banner_image,
	created_at, updated_at`

type usersRepo struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		passwordHash         sql.NullString
		oauthID              sql.NullString
		resetHash            sql.NullString
		lastLogin, resetExp  sql.NullInt64
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &oauthID, &u.IsAdmin, &u.IsLoggedIn,
		&lastLogin, &u.TokenVersion, &resetHash, &resetExp,
		&u.Bio, &u.DribbbleProfile, &u.BehanceProfile, &u.ProfilePicture, &u.BannerImage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = mapNullString(passwordHash)
	u.OAuthID = mapNullString(oauthID)
	u.PasswordResetTokenHash = mapNullString(resetHash)
	u.LastLoginAt = mapNullMillisPtr(lastLogin)
	u.PasswordResetExpiresAt = mapNullMillisPtr(resetExp)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *usersRepo) GetUserByOAuthID(ctx context.Context, oauthID string) (domain.User, error) {
	return r.getOne(ctx, `oauth_id = ?`, oauthID)
}

func (r *usersRepo) GetUserByResetTokenHash(ctx context.Context, hash string) (domain.User, error) {
	return r.getOne(ctx, `password_reset_token_hash = ?`, hash)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, mapStringNull(u.PasswordHash), mapStringNull(u.OAuthID),
		u.IsAdmin, u.IsLoggedIn, mapOptionalMillis(u.LastLoginAt), u.TokenVersion,
		mapStringNull(u.PasswordResetTokenHash), mapOptionalMillis(u.PasswordResetExpiresAt),
		u.Bio, u.DribbbleProfile, u.BehanceProfile, u.ProfilePicture, u.BannerImage,
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateLogin(ctx context.Context, userID string, at time.Time, isAdmin bool) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET is_logged_in = 1, last_login_at = ?, is_admin = ?, updated_at = ?
		WHERE id = ?`,
		toMillis(at), isAdmin, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) MarkLoggedOut(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET is_logged_in = 0, token_version = token_version + 1, updated_at = ?
		WHERE id = ?`,
		toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET is_admin = ?, updated_at = ? WHERE id = ?`,
		isAdmin, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) LinkOAuthID(ctx context.Context, userID, oauthID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET oauth_id = ?, updated_at = ? WHERE id = ?`,
		oauthID, toMillis(time.Now()), userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res, nil)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) error {
	// Empty inputs keep the stored value.
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET bio = COALESCE(NULLIF(?, ''), bio),
		    dribbble_profile = COALESCE(NULLIF(?, ''), dribbble_profile),
		    behance_profile = COALESCE(NULLIF(?, ''), behance_profile),
		    updated_at = ?
		WHERE id = ?`,
		p.Bio, p.DribbbleProfile, p.BehanceProfile, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) SetPasswordReset(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET password_reset_token_hash = ?, password_reset_expires_at = ?, updated_at = ?
		WHERE id = ?`,
		tokenHash, toMillis(expiresAt), toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?,
		    password_reset_token_hash = NULL,
		    password_reset_expires_at = NULL,
		    token_version = token_version + 1,
		    updated_at = ?
		WHERE id = ?`,
		passwordHash, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) ClearExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_reset_token_hash = NULL, password_reset_expires_at = NULL
		WHERE password_reset_expires_at IS NOT NULL AND password_reset_expires_at <= ?`,
		toMillis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
