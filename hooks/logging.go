package hooks

import (
	"context"

	"github.com/youssefsiam38/adminui/auth"
)

// Logger interface for structured logging.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// LoggingHooks provides built-in audit logging hooks
type LoggingHooks struct {
	logger Logger
}

// NewLoggingHooks creates logging hooks with the provided logger
func NewLoggingHooks(logger Logger) *LoggingHooks {
	return &LoggingHooks{logger: logger}
}

// Register installs every logging hook on r.
func (h *LoggingHooks) Register(r *Registry) {
	r.OnBeforePage(h.BeforePage)
	r.OnAction(h.Action)
	r.OnLogin(h.Login)
}

// BeforePage logs page views
func (h *LoggingHooks) BeforePage(ctx context.Context, pagePath string, id *auth.Identity) error {
	h.logger.Info("page viewed", "page", pagePath, "user", id.DisplayName)
	return nil
}

// Action logs page actions
func (h *LoggingHooks) Action(ctx context.Context, callbackID, name string, err error) error {
	user := auth.FromContext(ctx).DisplayName
	if err != nil {
		h.logger.Warn("page action failed", "cb_uuid", callbackID, "callback", name, "user", user, "error", err)
		return nil
	}
	h.logger.Info("page action", "cb_uuid", callbackID, "callback", name, "user", user)
	return nil
}

// Login logs login attempts
func (h *LoggingHooks) Login(ctx context.Context, method, username string, succeeded bool) error {
	if !succeeded {
		h.logger.Warn("login rejected", "method", method, "username", username)
		return nil
	}
	h.logger.Info("login", "method", method, "username", username)
	return nil
}
