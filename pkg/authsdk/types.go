package authsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the account summary returned by register and login.
type AuthUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"isAdmin"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is the full account view returned by GET /auth/me and
// PUT /users/profile. It never carries password or reset material.
type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	IsAdmin         bool       `json:"isAdmin"`
	Role            string     `json:"role"`
	IsLoggedIn      bool       `json:"isLoggedIn"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
	Bio             string     `json:"bio"`
	DribbbleProfile string     `json:"dribbbleProfile"`
	BehanceProfile  string     `json:"behanceProfile"`
	ProfilePicture  string     `json:"profilePicture"`
	BannerImage     string     `json:"bannerImage"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ProfileUpdateRequest is the body of PUT /users/profile. Empty fields keep
// their stored values.
type ProfileUpdateRequest struct {
	Bio             string `json:"bio"`
	DribbbleProfile string `json:"dribbbleProfile"`
	BehanceProfile  string `json:"behanceProfile"`
}

// UserSummary is an entry in a followers or following list.
type UserSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// IsFollowingResponse is returned by GET /users/{id}/is-following.
type IsFollowingResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

// ============================================================================
// Password Reset Types
// ============================================================================

// ResetPasswordRequest is the body of POST /auth/resetpassword.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest is the body of POST /auth/changepasswordwithtoken.
type ChangePasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ============================================================================
// Admin Types
// ============================================================================

// AdminDashboardResponse is returned by GET /admin/admin-dashboard.
type AdminDashboardResponse struct {
	Message string `json:"message"`
	IsAdmin bool   `json:"isAdmin"`
}

// AdminUser is an entry in GET /admin/all-users.
type AdminUser struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	IsLoggedIn     bool       `json:"isLoggedIn"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	ProfilePicture string     `json:"profilePicture"`
	IsAdmin        bool       `json:"isAdmin"`
}

// SendEmailRequest is the body of POST /admin/send-email. Email holds the
// message body sent to every user.
type SendEmailRequest struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
}

// SendEmailResponse reports how many users were mailed. Success is false
// when some deliveries failed; Failed counts them.
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the per-dependency status reported by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
