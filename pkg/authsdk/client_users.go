package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// UpdateProfile changes the caller's profile text.
func (c *SDKClient) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodPut, "/users/profile", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) Follow(ctx context.Context, userID string) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPut, "/users/follow/"+url.PathEscape(userID), nil, &out, http.StatusOK)
}

func (c *SDKClient) Unfollow(ctx context.Context, userID string) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPut, "/users/unfollow/"+url.PathEscape(userID), nil, &out, http.StatusOK)
}

func (c *SDKClient) Followers(ctx context.Context, userID string) ([]UserSummary, error) {
	var out []UserSummary
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/followers", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SDKClient) Following(ctx context.Context, userID string) ([]UserSummary, error) {
	var out []UserSummary
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/following", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// IsFollowing reports whether the caller follows userID.
func (c *SDKClient) IsFollowing(ctx context.Context, userID string) (bool, error) {
	var out IsFollowingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/is-following", nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.IsFollowing, nil
}
