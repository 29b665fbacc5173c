package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
)

type followsRepo struct {
	db dbtx
}

func (r *followsRepo) Follow(ctx context.Context, followerID, followeeID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID, toMillis(at),
	)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *followsRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID,
	))
}

func (r *followsRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`,
		followerID, followeeID,
	).Scan(&exists)
	return exists, err
}

func (r *followsRepo) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return r.list(ctx, `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY f.created_at, u.id`, userID)
}

func (r *followsRepo) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return r.list(ctx, `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at, u.id`, userID)
}

func (r *followsRepo) list(ctx context.Context, query, userID string) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UserSummary{}
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.ProfilePicture); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
