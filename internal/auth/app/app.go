package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/folio/internal/auth/http"
	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/folio/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/mailx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	mailer   mailx.Mailer
	google   *service.GoogleProvider

	sessionService      *service.SessionService
	tokenService        *service.TokenService
	resolver            *service.IdentityResolver
	gate                *service.AuthorizationGate
	authService         *service.AuthService
	oauthBridge         *service.OAuthBridge
	resetService        *service.PasswordResetService
	userService         *service.UserService
	followService       *service.FollowService
	broadcastService    *service.BroadcastService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetCost(cfg.BcryptCost)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitTokenKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signer, app.verifier = signer, verifier

	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initGoogle()

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "err", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "err", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db     store.Store
		err    error
		driver = "sqlite"
	)

	if app.cfg.UsesPostgres() {
		driver = "postgres"
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	} else {
		db, err = sqlite.NewStore(app.cfg.DatabaseURL)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", driver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

// initMailer picks SMTP when configured and the log mailer otherwise.
// Validate already refused a prod config without SMTP.
func (app *Application) initMailer() error {
	if !app.cfg.SMTPEnabled() {
		app.logger.Warn("SMTP not configured, outgoing mail will only be logged")
		app.mailer = mailx.NewLogMailer()
		return nil
	}

	m, err := mailx.NewSMTPMailer(mailx.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
		FromName: app.cfg.SMTPFromName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.mailer = m
	app.logger.Info("smtp mailer enabled", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	return nil
}

func (app *Application) initGoogle() {
	if !app.cfg.GoogleEnabled() {
		app.logger.Info("google login disabled")
		return
	}
	app.google = service.NewGoogleProvider(app.cfg.GoogleClientID, app.cfg.GoogleClientSecret, app.cfg.GoogleRedirectURL)
	app.logger.Info("google login enabled", "redirect_url", app.cfg.GoogleRedirectURL)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	admins := app.cfg.Admins()
	if admins.Len() == 0 {
		app.logger.Warn("AUTH_ADMIN_EMAILS is empty, nobody can reach /admin")
	}

	app.sessionService = &service.SessionService{Store: app.db, TTL: app.cfg.SessionTTL}
	app.tokenService = &service.TokenService{
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.TokenIssuer,
		TTL:      app.cfg.TokenTTL,
	}
	app.resolver = &service.IdentityResolver{
		Sessions: app.sessionService,
		Tokens:   app.tokenService,
		Store:    app.db,
	}
	app.gate = &service.AuthorizationGate{Store: app.db, Admins: admins}

	app.authService = &service.AuthService{
		Store:                 app.db,
		Sessions:              app.sessionService,
		Tokens:                app.tokenService,
		Admins:                admins,
		DefaultProfilePicture: app.cfg.DefaultProfilePicture,
		DefaultBannerImage:    app.cfg.DefaultBannerImage,
	}
	app.oauthBridge = &service.OAuthBridge{
		Store:                 app.db,
		Sessions:              app.sessionService,
		Admins:                admins,
		DefaultProfilePicture: app.cfg.DefaultProfilePicture,
		DefaultBannerImage:    app.cfg.DefaultBannerImage,
	}
	app.resetService = &service.PasswordResetService{
		Store:    app.db,
		Sessions: app.sessionService,
		Mailer:   app.mailer,
		ResetURL: app.cfg.PasswordResetURL,
		TTL:      app.cfg.PasswordResetTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.followService = &service.FollowService{Store: app.db}
	app.broadcastService = &service.BroadcastService{
		Store:       app.db,
		Mailer:      app.mailer,
		Concurrency: app.cfg.BroadcastConcurrency,
		Timeout:     app.cfg.BroadcastTimeout,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.RequestTimeout,
	)

	router.Cookies = httpapi.CookieConfig{
		Secure:     app.cfg.SecureCookies(),
		SessionTTL: app.cfg.SessionTTL,
		TokenTTL:   app.cfg.TokenTTL,
	}
	router.Redirects = httpapi.Redirects{
		Dashboard:      app.cfg.DashboardURL,
		AdminDashboard: app.cfg.AdminDashboardURL,
		Login:          app.cfg.LoginURL,
	}

	router.Resolver = app.resolver
	router.Gate = app.gate
	router.AuthService = app.authService
	router.OAuthBridge = app.oauthBridge
	router.Google = app.google
	router.ResetService = app.resetService
	router.UserService = app.userService
	router.FollowService = app.followService
	router.BroadcastEmail = app.broadcastService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
