package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, oauth_id, is_admin, is_logged_in,
	last_login_at, token_version, password_reset_token_hash, password_reset_expires_at,
	bio, dribbble_profile, behance_profile, profile_picture, banner_image,
	created_at, updated_at`

type usersRepo struct {
	db querier
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u                                domain.User
		passwordHash, oauthID, resetHash *string
		lastLogin, resetExp              *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &oauthID, &u.IsAdmin, &u.IsLoggedIn,
		&lastLogin, &u.TokenVersion, &resetHash, &resetExp,
		&u.Bio, &u.DribbbleProfile, &u.BehanceProfile, &u.ProfilePicture, &u.BannerImage,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = derefString(passwordHash)
	u.OAuthID = derefString(oauthID)
	u.PasswordResetTokenHash = derefString(resetHash)
	u.LastLoginAt = utcPtr(lastLogin)
	u.PasswordResetExpiresAt = utcPtr(resetExp)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = $1`, email)
}

func (r *usersRepo) GetUserByOAuthID(ctx context.Context, oauthID string) (domain.User, error) {
	return r.getOne(ctx, `oauth_id = $1`, oauthID)
}

func (r *usersRepo) GetUserByResetTokenHash(ctx context.Context, hash string) (domain.User, error) {
	return r.getOne(ctx, `password_reset_token_hash = $1`, hash)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		u.ID, u.Name, u.Email, nullString(u.PasswordHash), nullString(u.OAuthID),
		u.IsAdmin, u.IsLoggedIn, u.LastLoginAt, u.TokenVersion,
		nullString(u.PasswordResetTokenHash), u.PasswordResetExpiresAt,
		u.Bio, u.DribbbleProfile, u.BehanceProfile, u.ProfilePicture, u.BannerImage,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateLogin(ctx context.Context, userID string, at time.Time, isAdmin bool) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users
		SET is_logged_in = TRUE, last_login_at = $1, is_admin = $2, updated_at = NOW()
		WHERE id = $3`,
		at.UTC(), isAdmin, userID,
	))
}

func (r *usersRepo) MarkLoggedOut(ctx context.Context, userID string) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users
		SET is_logged_in = FALSE, token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`,
		userID,
	))
}

func (r *usersRepo) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE users SET is_admin = $1, updated_at = NOW() WHERE id = $2`,
		isAdmin, userID,
	))
}

func (r *usersRepo) LinkOAuthID(ctx context.Context, userID, oauthID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET oauth_id = $1, updated_at = NOW() WHERE id = $2`,
		oauthID, userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(tag, nil)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users
		SET bio = COALESCE(NULLIF($1, ''), bio),
		    dribbble_profile = COALESCE(NULLIF($2, ''), dribbble_profile),
		    behance_profile = COALESCE(NULLIF($3, ''), behance_profile),
		    updated_at = NOW()
		WHERE id = $4`,
		p.Bio, p.DribbbleProfile, p.BehanceProfile, userID,
	))
}

func (r *usersRepo) SetPasswordReset(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users
		SET password_reset_token_hash = $1, password_reset_expires_at = $2, updated_at = NOW()
		WHERE id = $3`,
		tokenHash, expiresAt.UTC(), userID,
	))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	))
}

func (r *usersRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $1,
		    password_reset_token_hash = NULL,
		    password_reset_expires_at = NULL,
		    token_version = token_version + 1,
		    updated_at = NOW()
		WHERE id = $2`,
		passwordHash, userID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
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
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_reset_token_hash = NULL, password_reset_expires_at = NULL
		WHERE password_reset_expires_at IS NOT NULL AND password_reset_expires_at <= $1`,
		now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
