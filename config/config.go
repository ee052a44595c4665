// Package config loads application settings for adminui binaries from a
// YAML file, an optional .env file and ADMINUI_* environment variables, in
// increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/youssefsiam38/adminui"
)

// Defaults for fields not set by any source.
const (
	DefaultAddr     = ":8000"
	DefaultLogLevel = "info"
)

// File is the on-disk and environment configuration.
type File struct {
	Addr     string `yaml:"addr" env:"ADMINUI_ADDR"`
	LogLevel string `yaml:"log_level" env:"ADMINUI_LOG_LEVEL"`

	Secret   string        `yaml:"secret" env:"ADMINUI_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"ADMINUI_TOKEN_TTL"`

	UploadFolder  string `yaml:"upload_folder" env:"ADMINUI_UPLOAD_FOLDER"`
	MaxUploadSize int64  `yaml:"max_upload_size" env:"ADMINUI_MAX_UPLOAD_SIZE"`

	LoginRateLimit float64 `yaml:"login_rate_limit" env:"ADMINUI_LOGIN_RATE_LIMIT"`
	LoginBurst     int     `yaml:"login_burst" env:"ADMINUI_LOGIN_BURST"`

	// AllowedOrigins is ";"-separated in the environment.
	AllowedOrigins []string `yaml:"allowed_origins" env:"ADMINUI_ALLOWED_ORIGINS"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `yaml:"metrics" env:"ADMINUI_METRICS"`

	App App `yaml:"app"`

	// StaticFiles maps URL prefixes to directories.
	StaticFiles map[string]string `yaml:"static_files"`
}

// App holds the settings shown by the frontend.
type App struct {
	Title              string            `yaml:"title" env:"ADMINUI_APP_TITLE"`
	CopyrightText      string            `yaml:"copyright_text" env:"ADMINUI_APP_COPYRIGHT"`
	Logo               string            `yaml:"logo" env:"ADMINUI_APP_LOGO"`
	Favicon            string            `yaml:"favicon" env:"ADMINUI_APP_FAVICON"`
	NavTheme           string            `yaml:"nav_theme" env:"ADMINUI_APP_NAV_THEME"`
	Layout             string            `yaml:"layout" env:"ADMINUI_APP_LAYOUT"`
	RegisterLink       string            `yaml:"register_link" env:"ADMINUI_APP_REGISTER_LINK"`
	ForgetPasswordLink string            `yaml:"forget_password_link" env:"ADMINUI_APP_FORGET_PASSWORD_LINK"`
	FooterLinks        map[string]string `yaml:"footer_links"`
}

// Load reads the YAML file at path, then the given .env files (".env" when
// none are named), then the environment. An empty path skips the YAML file;
// missing .env files are ignored.
func Load(path string, envFiles ...string) (*File, error) {
	f := &File{
		Addr:     DefaultAddr,
		LogLevel: DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", name, err)
		}
	}

	if err := envdecode.Decode(f); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	return f, nil
}

// Config converts the file into an application configuration. Logger and
// MetricsRegisterer are left for the caller.
func (f *File) Config() *adminui.Config {
	return &adminui.Config{
		Settings: adminui.Settings{
			AppTitle:           f.App.Title,
			CopyrightText:      f.App.CopyrightText,
			FooterLinks:        f.App.FooterLinks,
			RegisterLink:       f.App.RegisterLink,
			ForgetPasswordLink: f.App.ForgetPasswordLink,
			AppLogo:            f.App.Logo,
			AppFavicon:         f.App.Favicon,
			NavTheme:           f.App.NavTheme,
			Layout:             f.App.Layout,
		},
		StaticFiles:    f.StaticFiles,
		Secret:         []byte(f.Secret),
		TokenTTL:       f.TokenTTL,
		UploadFolder:   f.UploadFolder,
		MaxUploadSize:  f.MaxUploadSize,
		LoginRateLimit: f.LoginRateLimit,
		LoginBurst:     f.LoginBurst,
		AllowedOrigins: f.AllowedOrigins,
	}
}

// Level parses LogLevel, defaulting to info.
func (f *File) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(f.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (f *File) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: f.Level()}))
}
