package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	_ "github.com/aussiebroadwan/folio/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Redirects are the browser destinations after the Google flow.
type Redirects struct {
	Dashboard      string
	AdminDashboard string
	Login          string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Cookies   CookieConfig
	Redirects Redirects

	Resolver       *service.IdentityResolver
	Gate           *service.AuthorizationGate
	AuthService    *service.AuthService
	OAuthBridge    *service.OAuthBridge
	Google         *service.GoogleProvider // nil when Google login is not configured
	ResetService   *service.PasswordResetService
	UserService    *service.UserService
	FollowService  *service.FollowService
	BroadcastEmail *service.BroadcastService
}

func NewRouter(
	signer jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	requestTimeout time.Duration,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Timeout(requestTimeout),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGoogle()
	r.registerPasswordReset()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Folio Authentication Service API
//	@version		0.1.0
//	@description	Accounts, sessions and identity for the Folio portfolio platform.
//	@description
//	@description				Browsers authenticate with the "sid" session cookie and the "token" JWT cookie,
//	@description				both set by /auth/login. The session is checked first.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/folio
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						sid
//	@description				Opaque session id set by /auth/login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated requires a resolved identity.
func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(identityAuthenticator{resolver: r.Resolver}, writeError),
	)
}

// admin requires a resolved identity that the gate lets through.
func (r *Router) admin(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(identityAuthenticator{resolver: r.Resolver}, writeError),
		httpx.RequireAuthorized(adminAuthorizer(r.Gate), writeError),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Auth:     r.AuthService,
		Resolver: r.Resolver,
		Cookies:  r.Cookies,
	}

	r.Mux.HandleFunc("POST /auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /auth/login", h.HandleLogin)
	r.Mux.Handle("GET /auth/me", r.authenticated(h.HandleMe))

	// Logout works without a resolvable identity; it still clears cookies.
	r.Mux.HandleFunc("POST /auth/logout", h.HandleLogout)
}

func (r *Router) registerGoogle() {
	h := &GoogleHandler{
		Provider:  r.Google,
		Bridge:    r.OAuthBridge,
		Cookies:   r.Cookies,
		Redirects: r.Redirects,
	}

	r.Mux.HandleFunc("GET /auth/google", h.HandleRedirect)
	r.Mux.HandleFunc("GET /auth/google/callback", h.HandleCallback)
}

func (r *Router) registerPasswordReset() {
	h := &ResetHandler{Reset: r.ResetService}

	r.Mux.HandleFunc("POST /auth/resetpassword", h.HandleRequest)
	r.Mux.HandleFunc("POST /auth/changepasswordwithtoken", h.HandleComplete)
}

func (r *Router) registerUsers() {
	profile := &ProfileHandler{Users: r.UserService}
	follow := &FollowHandler{Follows: r.FollowService}

	r.Mux.Handle("PUT /users/profile", r.authenticated(profile.HandleUpdate))

	r.Mux.Handle("PUT /users/follow/{id}", r.authenticated(follow.HandleFollow))
	r.Mux.Handle("PUT /users/unfollow/{id}", r.authenticated(follow.HandleUnfollow))
	r.Mux.Handle("GET /users/{id}/followers", r.authenticated(follow.HandleFollowers))
	r.Mux.Handle("GET /users/{id}/following", r.authenticated(follow.HandleFollowing))
	r.Mux.Handle("GET /users/{id}/is-following", r.authenticated(follow.HandleIsFollowing))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		Users:     r.UserService,
		Broadcast: r.BroadcastEmail,
	}
	logout := &AuthHandler{
		Auth:     r.AuthService,
		Resolver: r.Resolver,
		Cookies:  r.Cookies,
	}

	r.Mux.Handle("GET /admin/admin-dashboard", r.admin(h.HandleDashboard))
	r.Mux.Handle("GET /admin/all-users", r.admin(h.HandleListUsers))
	r.Mux.Handle("DELETE /admin/delete-user/{id}", r.admin(h.HandleDeleteUser))
	r.Mux.Handle("POST /admin/send-email", r.admin(h.HandleSendEmail))
	r.Mux.Handle("POST /admin/logout", r.admin(logout.HandleLogout))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
