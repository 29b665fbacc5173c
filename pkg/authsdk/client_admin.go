package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// AdminDashboard probes admin access. Non-admins get ErrForbidden.
func (c *SDKClient) AdminDashboard(ctx context.Context) (*AdminDashboardResponse, error) {
	var out AdminDashboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/admin-dashboard", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllUsers returns every account, newest first.
func (c *SDKClient) ListAllUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.doJSON(ctx, http.MethodGet, "/admin/all-users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SDKClient) DeleteUser(ctx context.Context, userID string) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodDelete, "/admin/delete-user/"+url.PathEscape(userID), nil, &out, http.StatusOK)
}

// SendEmail broadcasts a message to every registered user.
func (c *SDKClient) SendEmail(ctx context.Context, subject, body string) (*SendEmailResponse, error) {
	var out SendEmailResponse
	req := SendEmailRequest{Subject: subject, Email: body}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/send-email", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) AdminLogout(ctx context.Context) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPost, "/admin/logout", nil, &out, http.StatusOK)
}
