package adminui

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/element"
	"github.com/youssefsiam38/adminui/internal/testutil"
	"github.com/youssefsiam38/adminui/menu"
	"github.com/youssefsiam38/adminui/page"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(&Config{
		Secret:         []byte(testutil.Secret),
		UploadFolder:   filepath.Join(t.TempDir(), "upload"),
		LoginRateLimit: -1,
	})
	require.NoError(t, err)
	return app
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultAppTitle, cfg.Settings.AppTitle)
	assert.Equal(t, DefaultCopyrightText, cfg.Settings.CopyrightText)
	assert.Equal(t, "dark", cfg.Settings.NavTheme)
	assert.Equal(t, "sidemenu", cfg.Settings.Layout)
	assert.Equal(t, int64(DefaultMaxUploadSize), cfg.MaxUploadSize)
	assert.Zero(t, cfg.TokenTTL)
	assert.NotNil(t, cfg.Logger)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.Secret = nil }},
		{"short secret", func(c *Config) { c.Secret = []byte("short") }},
		{"negative ttl", func(c *Config) { c.TokenTTL = -time.Minute }},
		{"negative upload size", func(c *Config) { c.MaxUploadSize = -1 }},
		{"unknown theme", func(c *Config) { c.Settings.NavTheme = "neon" }},
		{"unknown layout", func(c *Config) { c.Settings.Layout = "grid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Secret: []byte(testutil.Secret), UploadFolder: t.TempDir()}
			tt.mutate(cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApp_Registration(t *testing.T) {
	app := newTestApp(t)
	b := page.Func(func() []*element.Element { return nil })

	require.NoError(t, app.Page("/", "Home", b))
	assert.ErrorIs(t, app.Page("/", "Again", b), page.ErrDuplicatePage)
	assert.ErrorIs(t, app.Page("nope", "Bad", b), page.ErrInvalidPath)
	assert.Panics(t, func() { app.MustPage("/", "Again", b) })

	assert.Error(t, app.PasswordLogin(nil))
	assert.Error(t, app.Login("", nil))
	assert.Equal(t, 1, app.Pages().Len())
}

func TestApp_EndToEnd(t *testing.T) {
	app := newTestApp(t)

	var created []string
	createUser := callback.MustFunc(func(ctx context.Context, values map[string]string) *element.Element {
		created = append(created, values["name"]+" by "+auth.FromContext(ctx).DisplayName)
		return element.Notification(element.NotificationSuccess, "User created", values["name"])
	})

	app.MustPage("/users", "Users", page.SubPathFunc(func(id string) []*element.Element {
		if id != "" {
			return []*element.Element{element.Header("User "+id, 1)}
		}
		return []*element.Element{element.Form(createUser, element.TextField("Name", "name"))}
	}), page.RequireAuth("admin"))
	app.SetMenu(
		menu.New("Users", "/users", menu.WithIcon("user"), menu.RequireAuth("admin")),
		menu.New("About", "/about"),
	)
	require.NoError(t, app.PasswordLogin(func(_ context.Context, username, password string) (auth.Outcome, error) {
		if username == "admin" && password == "admin" {
			return auth.LoggedInUser{DisplayName: "Admin", Auth: []string{"user", "admin"}}, nil
		}
		return auth.LoginFailed{}, nil
	}))

	// Anonymous callers see neither the page nor its menu entry.
	rec := testutil.Serve(app, testutil.NewRequest(t, http.MethodGet, "/api/page_layout/users", nil))
	assert.Equal(t, "403", testutil.DecodeObject(t, rec)["error_type"])
	rec = testutil.Serve(app, testutil.NewRequest(t, http.MethodGet, "/api/main_menu", nil))
	assert.Len(t, testutil.DecodeObject(t, rec)["menu"], 1)

	rec = testutil.Serve(app, testutil.NewRequest(t, http.MethodPost, "/api/login",
		map[string]string{"username": "admin", "password": "admin"}))
	token := testutil.DecodeObject(t, rec)["token"].(string)

	rec = testutil.Serve(app, testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/api/main_menu", nil), token))
	assert.Len(t, testutil.DecodeObject(t, rec)["menu"], 2)

	rec = testutil.Serve(app, testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/api/page_layout/users/7", nil), token))
	detail := testutil.DecodeJSON(t, rec).([]any)
	assert.Equal(t, "User 7", detail[0].(map[string]any)["title"])

	rec = testutil.Serve(app, testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/api/page_layout/users", nil), token))
	form := testutil.DecodeJSON(t, rec).([]any)[0].(map[string]any)
	cbID := form["on_submit"].(map[string]any)["cb_uuid"].(string)
	assert.Equal(t, 1, app.Callbacks().Len())

	rec = testutil.Serve(app, testutil.Authorize(testutil.NewRequest(t, http.MethodPost, "/api/page_action",
		map[string]any{"cb_uuid": cbID, "args": []any{map[string]string{"name": "ada"}}}), token))
	assert.Equal(t, "Notification", testutil.DecodeObject(t, rec)["type"])
	assert.Equal(t, []string{"ada by Admin"}, created)

	// Rendering the page again reuses the callback id.
	rec = testutil.Serve(app, testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/api/page_layout/users", nil), token))
	form = testutil.DecodeJSON(t, rec).([]any)[0].(map[string]any)
	assert.Equal(t, cbID, form["on_submit"].(map[string]any)["cb_uuid"])
	assert.Equal(t, 1, app.Callbacks().Len())

	rec = testutil.Serve(app, testutil.NewRequest(t, http.MethodGet, "/api/app_settings", nil))
	settings := testutil.DecodeObject(t, rec)
	assert.Equal(t, DefaultAppTitle, settings["title"])
	assert.Contains(t, settings["footerLinks"], "Ant Design")
}

func TestApp_CurrentUser(t *testing.T) {
	app := newTestApp(t)

	anon := app.CurrentUser(testutil.NewRequest(t, http.MethodGet, "/", nil))
	assert.False(t, anon.Authenticated())
	assert.Empty(t, anon.Tags())

	token := testutil.Token(t, app.Signer(), "Ada", "user")
	id := app.CurrentUser(testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/", nil), token))
	assert.True(t, id.Authenticated())
	assert.Equal(t, "Ada", id.DisplayName)
	assert.Equal(t, []string{"user"}, id.Tags())

	bad := app.CurrentUser(testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/", nil), "garbage"))
	assert.False(t, bad.Authenticated())
}

func TestApp_UploadedFileLocation(t *testing.T) {
	app := newTestApp(t)

	loc, err := app.UploadedFileLocation([]byte(`{"file":{"response":"report.pdf"}}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app.uploads.Dir(), "report.pdf"), loc)

	_, err = app.UploadedFileLocation([]byte(`{"uid":"x"}`))
	assert.ErrorIs(t, err, ErrNoUpload)
}

func TestApp_ListenAndServeStops(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
