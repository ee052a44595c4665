package adminui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/youssefsiam38/adminui/api"
	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/hooks"
	"github.com/youssefsiam38/adminui/menu"
	"github.com/youssefsiam38/adminui/page"
	"github.com/youssefsiam38/adminui/upload"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// App is an admin panel application: its pages, menu, login handlers and
// callback registry, served over HTTP by Handler.
type App struct {
	config    *Config
	logger    Logger
	pages     *page.Set
	callbacks *callback.Registry
	logins    *auth.Logins
	menu      *menu.Tree
	hooks     *hooks.Registry
	signer    *auth.Signer
	uploads   *upload.Store

	handlerOnce sync.Once
	handler     http.Handler
	handlerErr  error
}

// New creates an application. The upload folder is created if missing.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.applyDefaults()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.Secret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	uploads, err := upload.NewStore(cfg.UploadFolder, cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		logger:    cfg.Logger,
		pages:     page.NewSet(),
		callbacks: callback.NewRegistry(),
		logins:    auth.NewLogins(),
		menu:      &menu.Tree{},
		hooks:     hooks.NewRegistry(),
		signer:    signer,
		uploads:   uploads,
	}, nil
}

// Page registers a page at path.
func (a *App) Page(path, name string, b page.Builder, opts ...page.Option) error {
	p, err := page.New(path, name, b, opts...)
	if err != nil {
		return err
	}
	if err := a.pages.Add(p); err != nil {
		return err
	}
	a.logger.Debug("page registered", "path", path, "name", name, "auth_needed", p.AuthNeeded)
	return nil
}

// MustPage is like Page but panics on error.
func (a *App) MustPage(path, name string, b page.Builder, opts ...page.Option) {
	if err := a.Page(path, name, b, opts...); err != nil {
		panic(err)
	}
}

// Login registers the handler for a login method.
func (a *App) Login(method string, fn auth.LoginFunc) error {
	return a.logins.Register(method, fn)
}

// PasswordLogin registers the username/password login handler.
func (a *App) PasswordLogin(fn func(ctx context.Context, username, password string) (auth.Outcome, error)) error {
	if fn == nil {
		return a.logins.Register(auth.MethodPassword, nil)
	}
	return a.logins.Register(auth.MethodPassword, auth.PasswordLogin(fn))
}

// SetMenu replaces the navigation menu.
func (a *App) SetMenu(items ...*menu.Item) {
	a.menu.Set(items...)
}

// Pages returns the registered pages.
func (a *App) Pages() *page.Set {
	return a.pages
}

// Callbacks returns the callback registry.
func (a *App) Callbacks() *callback.Registry {
	return a.callbacks
}

// Hooks returns the hook registry.
func (a *App) Hooks() *hooks.Registry {
	return a.hooks
}

// Signer returns the token signer.
func (a *App) Signer() *auth.Signer {
	return a.signer
}

// Handler returns the HTTP handler serving the frontend and its API. It is
// built once; pages, logins and menu changes made later are still served.
func (a *App) Handler() (http.Handler, error) {
	a.handlerOnce.Do(func() {
		s := a.config.Settings
		rate := a.config.LoginRateLimit
		if rate < 0 {
			rate = 0
		}
		a.handler, a.handlerErr = api.NewRouter(&api.Config{
			Pages:     a.pages,
			Callbacks: a.callbacks,
			Signer:    a.signer,
			Logins:    a.logins,
			Menu:      a.menu,
			Uploads:   a.uploads,
			Settings: &api.Settings{
				Title:              s.AppTitle,
				AppLogo:            optional(s.AppLogo),
				CopyrightText:      s.CopyrightText,
				FooterLinks:        s.FooterLinks,
				NavTheme:           s.NavTheme,
				Layout:             s.Layout,
				ForgetPasswordLink: optional(s.ForgetPasswordLink),
				RegisterLink:       optional(s.RegisterLink),
			},
			Favicon:        s.AppFavicon,
			Frontend:       a.config.Frontend,
			StaticDirs:     a.config.StaticFiles,
			AllowedOrigins: a.config.AllowedOrigins,
			LoginRate:      rate,
			LoginBurst:     a.config.LoginBurst,
			Hooks:          a.hooks,
			Metrics:        a.config.MetricsRegisterer,
			Logger:         a.logger,
		})
	})
	return a.handler, a.handlerErr
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, err := a.Handler()
	if err != nil {
		a.logger.Error("handler unavailable", "error", err)
		http.Error(w, "admin ui misconfigured", http.StatusInternalServerError)
		return
	}
	h.ServeHTTP(w, r)
}

// ListenAndServe serves the application on addr until ctx is done, then
// shuts down gracefully.
func (a *App) ListenAndServe(ctx context.Context, addr string) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", addr, "pages", a.pages.Len())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("adminui: shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

// CurrentUser returns the identity of the caller of r, or the anonymous
// identity when r carries no valid token.
func (a *App) CurrentUser(r *http.Request) *auth.Identity {
	if id := auth.FromContext(r.Context()); id.Authenticated() {
		return id
	}
	id, err := a.signer.IdentityFromRequest(r)
	if err != nil {
		a.logger.Debug("ignoring invalid identity token", "error", err)
	}
	return id
}

// UploadedFileLocation returns the path of an uploaded file from the value
// an Upload field submits with its form.
func (a *App) UploadedFileLocation(raw []byte) (string, error) {
	loc, err := a.uploads.Resolve(raw)
	if errors.Is(err, upload.ErrNoFileName) {
		return "", fmt.Errorf("%w: %s", ErrNoUpload, raw)
	}
	return loc, err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
