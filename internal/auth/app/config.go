package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/pkg/jwtx"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// DevDatabaseURL is the sqlite file used when AUTH_DATABASE_URL is unset
// outside prod.
const DevDatabaseURL = "auth.db"

type Config struct {
	Env                  string        `envconfig:"ENV" default:"dev"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat            string        `envconfig:"LOG_FORMAT" default:"json"`
	Port                 int           `envconfig:"PORT" default:"8080"`
	ShutdownGracePeriod  time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`
	HousekeepingInterval time.Duration `envconfig:"HOUSEKEEPING_INTERVAL" default:"1h"`

	// DatabaseURL is a sqlite path or a postgres:// URL. Outside prod it
	// falls back to DevDatabaseURL.
	DatabaseURL string `envconfig:"AUTH_DATABASE_URL"`

	TokenSecret  string        `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
	TokenIssuer  string        `envconfig:"AUTH_TOKEN_ISSUER" default:"folio-auth"`
	TokenTTL     time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	SessionTTL   time.Duration `envconfig:"AUTH_SESSION_TTL" default:"24h"`
	BcryptCost   int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
	AdminEmails  string        `envconfig:"AUTH_ADMIN_EMAILS"`
	CookieSecure *bool         `envconfig:"AUTH_COOKIE_SECURE"` // unset: secure in prod only

	RequestTimeout time.Duration `envconfig:"AUTH_REQUEST_TIMEOUT" default:"5s"`

	DashboardURL      string `envconfig:"AUTH_DASHBOARD_URL" default:"http://localhost:5173/dashboard"`
	AdminDashboardURL string `envconfig:"AUTH_ADMIN_DASHBOARD_URL" default:"http://localhost:5173/admin-dashboard"`
	LoginURL          string `envconfig:"AUTH_LOGIN_URL" default:"http://localhost:5173/login"`

	PasswordResetURL string        `envconfig:"AUTH_PASSWORD_RESET_URL" default:"http://localhost:5173/changepasswordwithtoken"`
	PasswordResetTTL time.Duration `envconfig:"AUTH_PASSWORD_RESET_TTL" default:"1h"`

	DefaultProfilePicture string `envconfig:"AUTH_DEFAULT_PROFILE_PICTURE"`
	DefaultBannerImage    string `envconfig:"AUTH_DEFAULT_BANNER_IMAGE"`

	BroadcastConcurrency int           `envconfig:"AUTH_BROADCAST_CONCURRENCY" default:"4"`
	BroadcastTimeout     time.Duration `envconfig:"AUTH_BROADCAST_TIMEOUT" default:"10m"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`
	SMTPFromName string `envconfig:"SMTP_FROM_NAME" default:"Folio"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.DatabaseURL == "" && !cfg.IsProd() {
		cfg.DatabaseURL = DevDatabaseURL
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the rules envconfig tags can't express.
func (c Config) Validate() error {
	var errs []error

	if len(c.TokenSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.BroadcastTimeout <= 0 {
		errs = append(errs, errors.New("AUTH_BROADCAST_TIMEOUT must be positive"))
	}
	if c.TokenTTL <= 0 || c.SessionTTL <= 0 || c.PasswordResetTTL <= 0 {
		errs = append(errs, errors.New("token, session and password reset TTLs must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		if c.IsProd() {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required in prod"))
		} else {
			errs = append(errs, errors.New("AUTH_DATABASE_URL must not be empty"))
		}
	}

	google := []string{c.GoogleClientID, c.GoogleClientSecret, c.GoogleRedirectURL}
	set := 0
	for _, v := range google {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(google) {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL must be set together"))
	}

	if c.IsProd() && (c.SMTPHost == "" || c.SMTPFrom == "") {
		errs = append(errs, errors.New("SMTP_HOST and SMTP_FROM are required in prod"))
	}
	if (c.SMTPHost == "") != (c.SMTPFrom == "") {
		errs = append(errs, errors.New("SMTP_HOST and SMTP_FROM must be set together"))
	}

	return errors.Join(errs...)
}

func (c Config) IsProd() bool { return c.Env == "prod" }

// SecureCookies is AUTH_COOKIE_SECURE when set, otherwise true in prod.
func (c Config) SecureCookies() bool {
	if c.CookieSecure != nil {
		return *c.CookieSecure
	}
	return c.IsProd()
}

func (c Config) GoogleEnabled() bool { return c.GoogleClientID != "" }

func (c Config) SMTPEnabled() bool { return c.SMTPHost != "" }

// UsesPostgres reports whether DatabaseURL selects the postgres driver.
func (c Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func (c Config) Admins() domain.AdminList {
	return domain.ParseAdminList(c.AdminEmails)
}
