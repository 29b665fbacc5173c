package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/idx"
)

type FollowHandler struct {
	Follows *service.FollowService
}

// HandleFollow godoc
//
//	@Summary	Follow a user
//	@Tags		Follows
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"user to follow"
//	@Success	200	{object}	authsdk.MessageResponse
//	@Failure	400	{object}	authsdk.APIError	"self follow or already following"
//	@Failure	404	{object}	authsdk.APIError
//	@Router		/users/follow/{id} [put].
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	target, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Follows.Follow(r.Context(), mustIdentity(r).UserID, target); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Followed successfully"})
}

// HandleUnfollow godoc
//
//	@Summary	Unfollow a user
//	@Tags		Follows
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"user to unfollow"
//	@Success	200	{object}	authsdk.MessageResponse
//	@Failure	400	{object}	authsdk.APIError	"not following"
//	@Failure	404	{object}	authsdk.APIError
//	@Router		/users/unfollow/{id} [put].
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	target, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Follows.Unfollow(r.Context(), mustIdentity(r).UserID, target); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Unfollowed successfully"})
}

// HandleFollowers godoc
//
//	@Summary	List followers
//	@Tags		Follows
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path	string	true	"user id"
//	@Success	200	{array}	authsdk.UserSummary
//	@Router		/users/{id}/followers [get].
func (h *FollowHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Follows.Followers(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummaries(out))
}

// HandleFollowing godoc
//
//	@Summary	List followed users
//	@Tags		Follows
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path	string	true	"user id"
//	@Success	200	{array}	authsdk.UserSummary
//	@Router		/users/{id}/following [get].
func (h *FollowHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Follows.Following(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummaries(out))
}

// HandleIsFollowing godoc
//
//	@Summary	Does the caller follow this user
//	@Tags		Follows
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"user id"
//	@Success	200	{object}	authsdk.IsFollowingResponse
//	@Router		/users/{id}/is-following [get].
func (h *FollowHandler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	target, err := pathUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, err := h.Follows.IsFollowing(r.Context(), mustIdentity(r).UserID, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.IsFollowingResponse{IsFollowing: ok})
}

// pathUserID reads the {id} path value. Anything that is not a ULID cannot
// name a user, so it is reported as not found without a store lookup.
func pathUserID(r *http.Request) (string, error) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		return "", service.ErrNotFound
	}
	return id.String(), nil
}
