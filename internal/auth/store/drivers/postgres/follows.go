package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"

	"github.com/jackc/pgx/v5"
)

type followsRepo struct {
	db querier
}

func (r *followsRepo) Follow(ctx context.Context, followerID, followeeID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID, at.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *followsRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return requireAffected(r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	))
}

func (r *followsRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	).Scan(&exists)
	return exists, err
}

func (r *followsRepo) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return r.list(ctx, `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at, u.id`, userID)
}

func (r *followsRepo) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return r.list(ctx, `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at, u.id`, userID)
}

func (r *followsRepo) list(ctx context.Context, query, userID string) ([]domain.UserSummary, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserSummary, error) {
		var s domain.UserSummary
		err := row.Scan(&s.ID, &s.Name, &s.ProfilePicture)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.UserSummary{}
	}
	return out, nil
}
