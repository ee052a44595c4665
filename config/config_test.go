package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	f, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, f.Addr)
	assert.Equal(t, slog.LevelInfo, f.Level())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "adminui.yaml", `
addr: ":9000"
log_level: debug
secret: "yaml-secret-yaml-secret-yaml-secret"
token_ttl: 12h
upload_folder: /var/lib/adminui/upload
login_burst: 3
allowed_origins: ["http://localhost:8001"]
app:
  title: Backoffice
  nav_theme: light
  footer_links:
    Docs: https://example.com/docs
static_files:
  /assets: ./public
`)

	f, err := Load(path, filepath.Join(dir, "none.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", f.Addr)
	assert.Equal(t, slog.LevelDebug, f.Level())
	assert.Equal(t, 12*time.Hour, f.TokenTTL)
	assert.Equal(t, []string{"http://localhost:8001"}, f.AllowedOrigins)

	cfg := f.Config()
	assert.Equal(t, "Backoffice", cfg.Settings.AppTitle)
	assert.Equal(t, "light", cfg.Settings.NavTheme)
	assert.Equal(t, map[string]string{"Docs": "https://example.com/docs"}, cfg.Settings.FooterLinks)
	assert.Equal(t, map[string]string{"/assets": "./public"}, cfg.StaticFiles)
	assert.Equal(t, []byte("yaml-secret-yaml-secret-yaml-secret"), cfg.Secret)
	assert.Equal(t, 3, cfg.LoginBurst)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "adminui.yaml", "addr: \":9000\"\napp:\n  title: From YAML\n")

	t.Setenv("ADMINUI_ADDR", ":7000")
	t.Setenv("ADMINUI_APP_TITLE", "From Env")
	t.Setenv("ADMINUI_TOKEN_TTL", "30m")
	t.Setenv("ADMINUI_ALLOWED_ORIGINS", "http://a.example;http://b.example")

	f, err := Load(path, filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Equal(t, ":7000", f.Addr)
	assert.Equal(t, "From Env", f.App.Title)
	assert.Equal(t, 30*time.Minute, f.TokenTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, f.AllowedOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "ADMINUI_UPLOAD_FOLDER=/tmp/dotenv-upload\n")
	t.Cleanup(func() { os.Unsetenv("ADMINUI_UPLOAD_FOLDER") })

	f, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dotenv-upload", f.UploadFolder)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "addr: [unclosed\n")
	_, err = Load(bad, filepath.Join(dir, "none.env"))
	assert.Error(t, err)

	unknown := writeFile(t, dir, "unknown.yaml", "adress: \":8000\"\n")
	_, err = Load(unknown, filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	f := &File{LogLevel: "warn"}
	logger := f.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, slog.LevelInfo, (&File{LogLevel: "loud"}).Level())
}
