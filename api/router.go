package api

import (
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/element"
	"github.com/youssefsiam38/adminui/hooks"
	"github.com/youssefsiam38/adminui/menu"
	"github.com/youssefsiam38/adminui/page"
	"github.com/youssefsiam38/adminui/static"
	"github.com/youssefsiam38/adminui/upload"
)

// DefaultMaxMemory is the part of a multipart upload kept in memory.
const DefaultMaxMemory = 32 << 20

// Config holds API router configuration.
type Config struct {
	// Pages, Callbacks and Signer are required.
	Pages     *page.Set
	Callbacks *callback.Registry
	Signer    *auth.Signer

	// Logins holds the login handlers. If nil, every login returns "501".
	Logins *auth.Logins

	// Menu is the navigation tree. If nil, the menu is empty.
	Menu *menu.Tree

	// Settings is served as the app settings document.
	Settings *Settings

	// Uploads stores posted files. If nil, uploads are rejected.
	Uploads *upload.Store

	// Favicon is a file served at /favicon.png instead of the default.
	Favicon string

	// Frontend holds the SPA build. Defaults to the embedded shell.
	Frontend fs.FS

	// StaticDirs maps URL prefixes to directories served as-is.
	StaticDirs map[string]string

	// AllowedOrigins enables CORS for the listed origins; "*" allows any.
	AllowedOrigins []string

	// LoginRate is the per-client login attempt rate per second; zero
	// disables limiting. LoginBurst defaults to 1.
	LoginRate  float64
	LoginBurst int

	// Hooks observe page builds, page actions and logins. May be nil.
	Hooks *hooks.Registry

	// Metrics receives the router's collectors. If it also implements
	// prometheus.Gatherer, it is exposed at /metrics.
	Metrics prometheus.Registerer

	// Logger for structured logging.
	// If nil, logging is disabled.
	Logger Logger
}

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// router holds the API router state.
type router struct {
	config  *Config
	enc     *element.Encoder
	menu    *menu.Tree
	logins  *auth.Logins
	logger  Logger
	limiter *loginLimiter
	metrics *metrics
	index   []byte
}

// NewRouter creates the HTTP handler for the admin frontend.
func NewRouter(cfg *Config) (http.Handler, error) {
	if cfg == nil || cfg.Pages == nil || cfg.Callbacks == nil || cfg.Signer == nil {
		return nil, fmt.Errorf("%w: pages, callbacks and signer are required", ErrInvalidConfig)
	}

	rt := &router{
		config: cfg,
		enc:    element.NewEncoder(cfg.Callbacks),
		menu:   cfg.Menu,
		logins: cfg.Logins,
		logger: cfg.Logger,
	}
	if rt.menu == nil {
		rt.menu = &menu.Tree{}
	}
	if rt.logins == nil {
		rt.logins = auth.NewLogins()
	}
	if rt.logger == nil {
		rt.logger = noopLogger{}
	}
	if cfg.Settings == nil {
		cfg.Settings = &Settings{FooterLinks: map[string]string{}}
	}
	if cfg.Frontend == nil {
		cfg.Frontend = static.FS()
	}
	index, err := fs.ReadFile(cfg.Frontend, static.IndexFile)
	if err != nil {
		index = static.Index()
	}
	rt.index = index

	if cfg.LoginRate > 0 {
		rt.limiter = newLoginLimiter(cfg.LoginRate, cfg.LoginBurst)
	}
	if cfg.Metrics != nil {
		m, err := newMetrics(cfg.Metrics, cfg.Callbacks, cfg.Pages)
		if err != nil {
			return nil, err
		}
		rt.metrics = m
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(rt.instrument)
	r.Use(rt.recovery)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors(cfg.AllowedOrigins))
	}
	r.Use(auth.Middleware(cfg.Signer, rt.logger))

	r.Get("/favicon.png", rt.handleFavicon)

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonMiddleware)

		r.Get("/page_layout", rt.handlePageLayout)
		r.Get("/page_layout/*", rt.handlePageLayout)
		r.Get("/main_menu", rt.handleMainMenu)
		r.Get("/app_settings", rt.handleAppSettings)
		r.Post("/upload", rt.handleUpload)
		r.With(rt.limitLogins).Post("/login", rt.handleLogin)
		r.Post("/page_action", rt.handlePageAction)
	})

	if g, ok := cfg.Metrics.(prometheus.Gatherer); ok {
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}

	// Longer prefixes first so nested mounts win.
	prefixes := make([]string, 0, len(cfg.StaticDirs))
	for p := range cfg.StaticDirs {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	for _, p := range prefixes {
		prefix := "/" + strings.Trim(p, "/")
		if prefix == "/" {
			continue
		}
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.StaticDirs[p])))
		r.Handle(prefix, http.RedirectHandler(prefix+"/", http.StatusMovedPermanently))
		r.Handle(prefix+"/*", fileServer)
	}

	r.NotFound(rt.handleFrontend)

	return r, nil
}
