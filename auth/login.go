package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/youssefsiam38/adminui/element"
)

// Login defaults.
const (
	// MethodPassword is the username/password login method.
	MethodPassword = "password"

	DefaultAvatar       = "https://gw.alipayobjects.com/zos/antfincdn/XAosXuNZyF/BiazfanxmamNRoxxVxka.png"
	DefaultFailedTitle  = "Login Failed"
	DefaultFailedReason = "Username or password is incorrect"
)

// Credentials is a decoded login request.
type Credentials struct {
	Method   string `json:"method"`
	Username string `json:"username"`
	Password string `json:"password"`

	// Raw is the full request body, for methods with extra fields.
	Raw json.RawMessage `json:"-"`
}

// Outcome is the result of a login attempt: a LoggedInUser or a LoginFailed.
type Outcome interface {
	outcome()
}

// LoggedInUser is returned by a login handler on success.
type LoggedInUser struct {
	DisplayName string

	// Auth defaults to ["user"] when nil.
	Auth []string

	// Avatar defaults to DefaultAvatar when empty.
	Avatar string

	// UserInfo is carried in the token and exposed as Identity.UserInfo.
	UserInfo any

	// RedirectTo is where the frontend navigates after login; empty keeps
	// the frontend's default.
	RedirectTo string
}

// LoginFailed is returned by a login handler on rejected credentials.
type LoginFailed struct {
	// Title defaults to DefaultFailedTitle.
	Title string

	// Message defaults to DefaultFailedReason.
	Message string
}

func (LoggedInUser) outcome() {}
func (LoginFailed) outcome()  {}

// LoginFunc checks credentials. A nil outcome with a nil error is treated as
// LoginFailed{}.
type LoginFunc func(ctx context.Context, c Credentials) (Outcome, error)

// PasswordLogin adapts a username/password check to a LoginFunc.
func PasswordLogin(fn func(ctx context.Context, username, password string) (Outcome, error)) LoginFunc {
	return func(ctx context.Context, c Credentials) (Outcome, error) {
		return fn(ctx, c.Username, c.Password)
	}
}

// OutcomeElement converts a login outcome into the element returned to the
// frontend, signing a token for successful logins.
func OutcomeElement(s *Signer, o Outcome) (*element.Element, error) {
	switch o := o.(type) {
	case LoggedInUser:
		return loggedInElement(s, &o)
	case *LoggedInUser:
		if o == nil {
			return failedElement(LoginFailed{}), nil
		}
		return loggedInElement(s, o)
	case LoginFailed:
		return failedElement(o), nil
	case *LoginFailed:
		if o == nil {
			return failedElement(LoginFailed{}), nil
		}
		return failedElement(*o), nil
	case nil:
		return failedElement(LoginFailed{}), nil
	}
	return nil, fmt.Errorf("auth: unknown login outcome %T", o)
}

func loggedInElement(s *Signer, u *LoggedInUser) (*element.Element, error) {
	tags := u.Auth
	if tags == nil {
		tags = []string{"user"}
	}
	avatar := u.Avatar
	if avatar == "" {
		avatar = DefaultAvatar
	}

	token, err := s.Sign(&Identity{DisplayName: u.DisplayName, Auth: tags, UserInfo: u.UserInfo})
	if err != nil {
		return nil, err
	}

	return element.New("LoginAndNavigateTo",
		element.Attr("status", element.String(element.StatusOK)),
		element.Attr("display_name", element.String(u.DisplayName)),
		element.Attr("avatar", element.String(avatar)),
		element.Attr("redirect_to", element.OptionalString(u.RedirectTo)),
		element.Attr("token", element.String(token)),
	), nil
}

func failedElement(f LoginFailed) *element.Element {
	title := f.Title
	if title == "" {
		title = DefaultFailedTitle
	}
	msg := f.Message
	if msg == "" {
		msg = DefaultFailedReason
	}
	return element.New("LoginFailed",
		element.Attr("status", element.String(element.StatusError)),
		element.Attr("error", element.String(msg)),
		element.Attr("title", element.String(title)),
	)
}

// Logins maps login methods to handlers. It is safe for concurrent use.
type Logins struct {
	mu       sync.RWMutex
	handlers map[string]LoginFunc
}

// NewLogins creates an empty set of login handlers.
func NewLogins() *Logins {
	return &Logins{handlers: make(map[string]LoginFunc)}
}

// Register installs fn for method, replacing any previous handler.
func (l *Logins) Register(method string, fn LoginFunc) error {
	if method == "" {
		return fmt.Errorf("%w: empty method", ErrLoginMethod)
	}
	if fn == nil {
		return fmt.Errorf("%w: nil handler for %q", ErrLoginMethod, method)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[method] = fn
	return nil
}

// Lookup returns the handler for method.
func (l *Logins) Lookup(method string) (LoginFunc, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.handlers[method]
	return fn, ok
}

// Methods returns the registered methods in sorted order.
func (l *Logins) Methods() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	methods := make([]string, 0, len(l.handlers))
	for m := range l.handlers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
