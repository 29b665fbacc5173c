package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{"valid", Registration{Name: "Ana", Email: "ana@example.com", Password: "correcthorse"}, false},
		{"valid mixed case email", Registration{Name: "Ana", Email: " Ana@Example.com", Password: "correcthorse"}, false},
		{"missing name", Registration{Name: "  ", Email: "ana@example.com", Password: "correcthorse"}, true},
		{"long name", Registration{Name: strings.Repeat("a", MaxNameLength+1), Email: "ana@example.com", Password: "correcthorse"}, true},
		{"missing email", Registration{Name: "Ana", Password: "correcthorse"}, true},
		{"bad email", Registration{Name: "Ana", Email: "ana-at-example", Password: "correcthorse"}, true},
		{"display name email", Registration{Name: "Ana", Email: "Ana <ana@example.com>", Password: "correcthorse"}, true},
		{"short password", Registration{Name: "Ana", Email: "ana@example.com", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUser)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUserRoleAndAuthMethod(t *testing.T) {
	u := User{}
	require.False(t, u.HasAuthMethod())
	require.Equal(t, RoleUser, u.Role())

	u.OAuthID = "google-sub"
	require.True(t, u.HasAuthMethod())

	u.IsAdmin = true
	require.Equal(t, RoleAdmin, u.Role())
}

func TestResetTokenValid(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Second)

	require.False(t, User{}.ResetTokenValid(now))
	require.False(t, User{PasswordResetTokenHash: "h"}.ResetTokenValid(now))
	require.True(t, User{PasswordResetTokenHash: "h", PasswordResetExpiresAt: &later}.ResetTokenValid(now))
	require.False(t, User{PasswordResetTokenHash: "h", PasswordResetExpiresAt: &earlier}.ResetTokenValid(now))
}

func TestProfileUpdate(t *testing.T) {
	u := User{Bio: "old", DribbbleProfile: "https://dribbble.com/ana"}
	got := ProfileUpdate{Bio: "new"}.Apply(u)
	require.Equal(t, "new", got.Bio)
	require.Equal(t, "https://dribbble.com/ana", got.DribbbleProfile)

	require.NoError(t, ProfileUpdate{Bio: strings.Repeat("é", MaxBioLength)}.Validate())
	require.ErrorIs(t, ProfileUpdate{Bio: strings.Repeat("a", MaxBioLength+1)}.Validate(), ErrInvalidUser)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	require.False(t, s.Expired(now))
	require.True(t, s.Expired(now.Add(time.Minute)))
}

func TestAdminList(t *testing.T) {
	l := ParseAdminList(" Root@Example.com, ,ops@example.com")
	require.Equal(t, 2, l.Len())
	require.True(t, l.Contains("root@example.com"))
	require.True(t, l.Contains("OPS@example.com "))
	require.False(t, l.Contains("ana@example.com"))

	var empty AdminList
	require.False(t, empty.Contains("root@example.com"))
}
