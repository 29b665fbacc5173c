package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Cookie names shared by the service and its clients.
const (
	SessionCookie = "sid"
	TokenCookie   = "token"
	StateCookie   = "oauth_state"
)

// SDKClient is a client for the Folio authentication service. The service
// authenticates with cookies, so the client keeps a cookie jar and behaves
// like one browser: Login stores the credentials, later calls send them.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with an empty cookie jar. Redirects are not
// followed so callers can inspect the OAuth redirects.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Cookies returns the credentials the jar currently holds for the service.
func (c *SDKClient) Cookies() []*http.Cookie {
	u, err := url.Parse(c.BaseURL)
	if err != nil || c.HTTPClient.Jar == nil {
		return nil
	}
	return c.HTTPClient.Jar.Cookies(u)
}

// Cookie returns the value of the named cookie, or "" when absent.
func (c *SDKClient) Cookie(name string) string {
	for _, ck := range c.Cookies() {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// SetCookie stores a credential in the jar, e.g. to replay an old token.
func (c *SDKClient) SetCookie(name, value string) {
	u, err := url.Parse(c.BaseURL)
	if err != nil || c.HTTPClient.Jar == nil {
		return
	}
	c.HTTPClient.Jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// Register creates a local account. It does not log in.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password. The session and token cookies
// land in the jar.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the current credentials.
func (c *SDKClient) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session. The server clears both cookies.
func (c *SDKClient) Logout(ctx context.Context) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, &out, http.StatusOK)
}

// RequestPasswordReset asks the service to mail a reset link. The reply is
// the same whether or not the address is registered.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPost, "/auth/resetpassword", ResetPasswordRequest{Email: email}, &out, http.StatusOK)
}

// ChangePasswordWithToken completes a reset.
func (c *SDKClient) ChangePasswordWithToken(ctx context.Context, token, password string) error {
	var out MessageResponse
	req := ChangePasswordRequest{Token: token, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/auth/changepasswordwithtoken", req, &out, http.StatusOK)
}
