package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/internal/auth/store"
)

// FollowService maintains the follow graph. Each mutation is one statement
// on a primary-keyed edge table, so racing follow/unfollow can't duplicate
// or lose an edge.
type FollowService struct {
	Store store.Store
	Clock Clock
}

func (s *FollowService) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	if err := s.requireUser(ctx, targetID); err != nil {
		return err
	}

	err := s.Store.Follows().Follow(ctx, followerID, targetID, s.Clock.now())
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrAlreadyFollowing
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	if err := s.requireUser(ctx, targetID); err != nil {
		return err
	}

	err := s.Store.Follows().Unfollow(ctx, followerID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFollowing
	}
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	ok, err := s.Store.Follows().IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return ok, nil
}

func (s *FollowService) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.Store.Follows().Followers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return out, nil
}

func (s *FollowService) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.Store.Follows().Following(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return out, nil
}

func (s *FollowService) requireUser(ctx context.Context, id string) error {
	_, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	return nil
}
