package http

import (
	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
)

// Conversions from domain records to wire types. Password and reset
// material never leave through here.

func toAuthUser(u domain.User) authsdk.AuthUser {
	return authsdk.AuthUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Role:      u.Role(),
		LastLogin: u.LastLoginAt,
	}
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		IsAdmin:         u.IsAdmin,
		Role:            u.Role(),
		IsLoggedIn:      u.IsLoggedIn,
		LastLogin:       u.LastLoginAt,
		Bio:             u.Bio,
		DribbbleProfile: u.DribbbleProfile,
		BehanceProfile:  u.BehanceProfile,
		ProfilePicture:  u.ProfilePicture,
		BannerImage:     u.BannerImage,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toAdminUser(u domain.User) authsdk.AdminUser {
	return authsdk.AdminUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		IsLoggedIn:     u.IsLoggedIn,
		LastLogin:      u.LastLoginAt,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
	}
}

func toSummaries(in []domain.UserSummary) []authsdk.UserSummary {
	out := make([]authsdk.UserSummary, 0, len(in))
	for _, s := range in {
		out = append(out, authsdk.UserSummary{ID: s.ID, Name: s.Name, ProfilePicture: s.ProfilePicture})
	}
	return out
}
