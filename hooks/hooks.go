// Package hooks lets applications observe and veto admin panel requests:
// page builds, page actions and login attempts.
package hooks

import (
	"context"
	"errors"
	"sync"

	"github.com/youssefsiam38/adminui/auth"
)

// ErrDenied is returned by a BeforePageHook to refuse a page. The caller
// receives the "403" error element.
var ErrDenied = errors.New("hooks: denied")

// BeforePageHook is called after page authorization and before the build.
// Returning an error aborts the request.
type BeforePageHook func(ctx context.Context, pagePath string, id *auth.Identity) error

// ActionHook is called after a page action callback ran.
// Parameters: ctx, callback id, callback name, error
type ActionHook func(ctx context.Context, callbackID, name string, err error) error

// LoginHook is called after a login attempt was decided.
type LoginHook func(ctx context.Context, method, username string, succeeded bool) error

// Registry holds all registered hooks
type Registry struct {
	mu         sync.RWMutex
	beforePage []BeforePageHook
	action     []ActionHook
	login      []LoginHook
}

// NewRegistry creates a new hook registry
func NewRegistry() *Registry {
	return &Registry{
		beforePage: []BeforePageHook{},
		action:     []ActionHook{},
		login:      []LoginHook{},
	}
}

// OnBeforePage registers a hook to be called before a page is built
func (r *Registry) OnBeforePage(hook BeforePageHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforePage = append(r.beforePage, hook)
}

// OnAction registers a hook to be called after a page action
func (r *Registry) OnAction(hook ActionHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action = append(r.action, hook)
}

// OnLogin registers a hook to be called after a login attempt
func (r *Registry) OnLogin(hook LoginHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.login = append(r.login, hook)
}

// TriggerBeforePage calls the before-page hooks in order, stopping at the
// first error.
func (r *Registry) TriggerBeforePage(ctx context.Context, pagePath string, id *auth.Identity) error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	hooks := make([]BeforePageHook, len(r.beforePage))
	copy(hooks, r.beforePage)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, pagePath, id); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAction calls all registered action hooks
func (r *Registry) TriggerAction(ctx context.Context, callbackID, name string, err error) error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	hooks := make([]ActionHook, len(r.action))
	copy(hooks, r.action)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if hookErr := hook(ctx, callbackID, name, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

// TriggerLogin calls all registered login hooks
func (r *Registry) TriggerLogin(ctx context.Context, method, username string, succeeded bool) error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	hooks := make([]LoginHook, len(r.login))
	copy(hooks, r.login)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, method, username, succeeded); err != nil {
			return err
		}
	}
	return nil
}
