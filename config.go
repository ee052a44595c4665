package adminui

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/youssefsiam38/adminui/auth"
)

// Default configuration values.
const (
	DefaultAppTitle       = "Admin UI App"
	DefaultCopyrightText  = "Professional UI with Go"
	DefaultNavTheme       = "dark"
	DefaultLayout         = "sidemenu"
	DefaultUploadFolder   = "upload"
	DefaultMaxUploadSize  = 32 << 20
	DefaultLoginRateLimit = 1.0
	DefaultLoginBurst     = 5
)

// Navigation themes and layouts understood by the frontend.
var (
	navThemes = []string{"dark", "light"}
	layouts   = []string{"sidemenu", "topmenu", "mix"}
)

// Settings controls the application chrome served by /api/app_settings.
type Settings struct {
	// AppTitle is shown in the header and login page.
	// Defaults to "Admin UI App".
	AppTitle string

	// CopyrightText is shown in the footer.
	CopyrightText string

	// FooterLinks maps link text to URL.
	FooterLinks map[string]string

	// RegisterLink and ForgetPasswordLink add links to the login page.
	RegisterLink       string
	ForgetPasswordLink string

	// AppLogo is the URL of the header logo.
	AppLogo string

	// AppFavicon is a file path served at /favicon.png.
	AppFavicon string

	// NavTheme is "dark" or "light". Defaults to "dark".
	NavTheme string

	// Layout is "sidemenu", "topmenu" or "mix". Defaults to "sidemenu".
	Layout string
}

// Config holds application configuration.
type Config struct {
	Settings Settings

	// StaticFiles maps URL prefixes to directories served as-is.
	StaticFiles map[string]string

	// Secret signs identity tokens. Required, at least 32 bytes.
	Secret []byte

	// TokenTTL limits token lifetime. Zero issues tokens that never expire.
	TokenTTL time.Duration

	// UploadFolder receives uploaded files. Created if missing.
	// Defaults to "upload" in the working directory.
	UploadFolder string

	// MaxUploadSize limits uploaded files in bytes.
	// Defaults to 32 MiB.
	MaxUploadSize int64

	// LoginRateLimit is the per-client login attempt rate per second and
	// LoginBurst the attempts allowed at once. A negative rate disables
	// limiting.
	LoginRateLimit float64
	LoginBurst     int

	// AllowedOrigins enables CORS for a frontend served from elsewhere.
	AllowedOrigins []string

	// Frontend replaces the embedded SPA shell with a frontend build.
	Frontend fs.FS

	// Logger for structured logging.
	// If nil, logging is disabled.
	Logger Logger

	// MetricsRegisterer receives HTTP and registry metrics. If it is also a
	// prometheus.Gatherer, metrics are served at /metrics.
	MetricsRegisterer prometheus.Registerer
}

// Logger interface for structured logging.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a no-op implementation of Logger.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

// DefaultConfig returns a new Config with default values. Secret must still
// be set.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills in default values for zero-valued fields.
func (c *Config) applyDefaults() {
	s := &c.Settings
	if s.AppTitle == "" {
		s.AppTitle = DefaultAppTitle
	}
	if s.CopyrightText == "" {
		s.CopyrightText = DefaultCopyrightText
	}
	if s.FooterLinks == nil {
		s.FooterLinks = map[string]string{
			"Github":     "https://github.com/youssefsiam38/adminui",
			"Ant Design": "https://ant.design",
		}
	}
	if s.NavTheme == "" {
		s.NavTheme = DefaultNavTheme
	}
	if s.Layout == "" {
		s.Layout = DefaultLayout
	}
	if c.UploadFolder == "" {
		c.UploadFolder = DefaultUploadFolder
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
	if c.LoginRateLimit == 0 {
		c.LoginRateLimit = DefaultLoginRateLimit
	}
	if c.LoginBurst == 0 {
		c.LoginBurst = DefaultLoginBurst
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
}

// validate checks the configuration for errors.
func (c *Config) validate() error {
	if len(c.Secret) < auth.MinSecretLen {
		return fmt.Errorf("%w: secret must be at least %d bytes", ErrInvalidConfig, auth.MinSecretLen)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("%w: negative token ttl", ErrInvalidConfig)
	}
	if c.MaxUploadSize < 0 {
		return fmt.Errorf("%w: negative max upload size", ErrInvalidConfig)
	}
	if c.LoginBurst < 0 {
		return fmt.Errorf("%w: negative login burst", ErrInvalidConfig)
	}
	if !contains(navThemes, c.Settings.NavTheme) {
		return fmt.Errorf("%w: unknown nav theme %q", ErrInvalidConfig, c.Settings.NavTheme)
	}
	if !contains(layouts, c.Settings.Layout) {
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, c.Settings.Layout)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
