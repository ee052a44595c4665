// Command adminui-demo runs a small user administration panel.
//
// Default credentials:
//
//	admin / admin123
//	demo  / demo123
//
// Run with:
//
//	ADMINUI_SECRET=change-me-to-a-long-random-secret-value go run ./cmd/adminui-demo -config adminui.yaml
//
// Then open http://localhost:8000/ and login.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/youssefsiam38/adminui"
	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/config"
	"github.com/youssefsiam38/adminui/element"
	"github.com/youssefsiam38/adminui/hooks"
	"github.com/youssefsiam38/adminui/menu"
	"github.com/youssefsiam38/adminui/page"
)

// account is a login the demo accepts.
type account struct {
	hash string
	tags []string
}

// userCreation is the submitted user creation form.
type userCreation struct {
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirm_password"`
	OTP             string          `json:"otp"`
	OTPCreationTime string          `json:"otp_creation_time"`
	CreatedAt       string          `json:"created_at"`
	IsActive        bool            `json:"is_active"`
	IsAdmin         bool            `json:"is_admin"`
	IsVerified      bool            `json:"is_verified"`
	Avatar          json.RawMessage `json:"avatar"`
}

// directory is the in-memory user store.
type directory struct {
	mu    sync.RWMutex
	users map[string]userCreation
}

func (d *directory) add(u userCreation) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[u.Username]; exists {
		return fmt.Errorf("user %q already exists", u.Username)
	}
	d.users[u.Username] = u
	return nil
}

func (d *directory) get(username string) (userCreation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[username]
	return u, ok
}

func (d *directory) list() []userCreation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]userCreation, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	file, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := file.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	cfg := file.Config()
	cfg.Logger = logger
	if file.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		cfg.MetricsRegisterer = reg
	}

	app, err := adminui.New(cfg)
	if err != nil {
		logger.Error("create app", "error", err)
		os.Exit(1)
	}

	if err := setup(app, logger); err != nil {
		logger.Error("setup", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.ListenAndServe(ctx, file.Addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setup registers the demo pages, menu and login.
func setup(app *adminui.App, logger *slog.Logger) error {
	accounts, err := demoAccounts()
	if err != nil {
		return err
	}
	users := &directory{users: make(map[string]userCreation)}
	hooks.NewLoggingHooks(logger).Register(app.Hooks())

	createUser := callback.MustFunc(func(ctx context.Context, u userCreation) *element.Element {
		switch {
		case u.Username == "":
			return element.Notification(element.NotificationError, "Invalid user", "Username is required")
		case u.Password != u.ConfirmPassword:
			return element.Notification(element.NotificationError, "Invalid user", "Passwords do not match")
		}
		if len(u.Avatar) > 0 && string(u.Avatar) != "null" {
			if loc, err := app.UploadedFileLocation(u.Avatar); err == nil {
				logger.Info("avatar stored", "username", u.Username, "path", loc)
			}
		}
		u.Password, u.ConfirmPassword = "", ""
		if err := users.add(u); err != nil {
			return element.Notification(element.NotificationError, "Invalid user", err.Error())
		}
		logger.Info("user created", "username", u.Username, "by", auth.FromContext(ctx).DisplayName)
		return element.NavigateTo("/detail/" + u.Username)
	})

	if err := app.Page("/", "User Creation", page.Func(func() []*element.Element {
		return userCreationForm(createUser)
	}), page.RequireAuth("user")); err != nil {
		return err
	}

	if err := app.Page("/detail", "Detail", page.SubPathFunc(func(username string) []*element.Element {
		if username == "" {
			return userList(users.list())
		}
		u, ok := users.get(username)
		if !ok {
			return []*element.Element{element.Header("No such user", 2), element.Paragraph(username)}
		}
		return userDetail(u)
	}), page.RequireAuth("user")); err != nil {
		return err
	}

	if err := app.Page("/about", "About", page.Func(func() []*element.Element {
		return []*element.Element{
			element.Card("About", []*element.Element{element.MustMarkdown(about)}),
		}
	})); err != nil {
		return err
	}

	if err := app.PasswordLogin(func(_ context.Context, username, password string) (auth.Outcome, error) {
		acc, ok := accounts[username]
		if !ok || !auth.CheckPassword(acc.hash, password) {
			return auth.LoginFailed{}, nil
		}
		return auth.LoggedInUser{DisplayName: username, Auth: acc.tags}, nil
	}); err != nil {
		return err
	}

	app.SetMenu(
		menu.New("User Creation System", "/", menu.WithIcon("dashboard"), menu.RequireAuth("user")),
		menu.New("Detail Page", "/detail", menu.WithIcon("info-circle"), menu.RequireAuth("user")),
		menu.New("About", "/about", menu.WithIcon("question-circle")),
	)
	return nil
}

func demoAccounts() (map[string]account, error) {
	accounts := make(map[string]account)
	for _, a := range []struct {
		name, password string
		tags           []string
	}{
		{"admin", "admin123", []string{"user", "admin"}},
		{"demo", "demo123", []string{"user"}},
	} {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return nil, err
		}
		accounts[a.name] = account{hash: hash, tags: a.tags}
	}
	return accounts, nil
}

func userCreationForm(onSubmit *callback.Callback) []*element.Element {
	return []*element.Element{
		element.Form(onSubmit,
			element.TextField("First Name", "first_name"),
			element.TextField("Last Name", "last_name"),
			element.TextField("Username", "username", element.Required()),
			element.TextField("Email", "email"),
			element.TextField("Phone", "phone"),
			element.TextField("Password", "password", element.Required()),
			element.TextField("Confirm Password", "confirm_password", element.Required()),
			element.TextField("OTP", "otp"),
			element.DatePicker("OTP Creation Time", "otp_creation_time"),
			element.DatePicker("Created At", "created_at"),
			element.Checkbox("Is Active", "is_active"),
			element.Checkbox("Is Admin", "is_admin"),
			element.Checkbox("Is Verified", "is_verified"),
			element.Upload("Avatar", "avatar"),
			element.FormActions(element.SubmitButton("Submit")),
		),
	}
}

func userList(users []userCreation) []*element.Element {
	rows := make([]element.Map, 0, len(users))
	for _, u := range users {
		rows = append(rows, element.Map{
			"username": element.String(u.Username),
			"name":     element.String(strings.TrimSpace(u.FirstName + " " + u.LastName)),
			"email":    element.String(u.Email),
			"active":   element.Bool(u.IsActive),
		})
	}
	columns := []element.Map{
		{"title": element.String("Username"), "dataIndex": element.String("username")},
		{"title": element.String("Name"), "dataIndex": element.String("name")},
		{"title": element.String("Email"), "dataIndex": element.String("email")},
	}
	return []*element.Element{element.DataTable("Users", columns, rows)}
}

func userDetail(u userCreation) []*element.Element {
	md := fmt.Sprintf("## %s %s\n\n| Field | Value |\n|---|---|\n| Username | `%s` |\n| Email | %s |\n| Phone | %s |\n| Active | %t |\n| Admin | %t |\n",
		u.FirstName, u.LastName, u.Username, u.Email, u.Phone, u.IsActive, u.IsAdmin)
	return []*element.Element{
		element.Header(u.Username, 1),
		element.MustMarkdown(md),
	}
}

const about = `This panel is declared entirely in Go.

* Pages and forms are element trees built per request.
* Form submissions call Go functions through the callback registry.
* Pages under **Detail** take the user name as a sub-path.`
