package auth

import (
	"context"
	"slices"
)

// Identity is the caller of a request.
type Identity struct {
	// DisplayName is empty for the anonymous identity.
	DisplayName string

	// Auth lists the caller's authorization tags, e.g. "user" or "admin".
	Auth []string

	// UserInfo is opaque data supplied by the login handler.
	UserInfo any

	authenticated bool
}

// Anonymous returns the identity of a caller without a valid token.
func Anonymous() *Identity {
	return &Identity{Auth: []string{}}
}

// Authenticated reports whether the identity came from a verified token.
func (id *Identity) Authenticated() bool {
	return id != nil && id.authenticated
}

// Has reports whether the identity holds tag.
func (id *Identity) Has(tag string) bool {
	return id != nil && slices.Contains(id.Auth, tag)
}

// Tags returns the authorization tags, never nil.
func (id *Identity) Tags() []string {
	if id == nil || id.Auth == nil {
		return []string{}
	}
	return id.Auth
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by Middleware, or the anonymous
// identity.
func FromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok && id != nil {
		return id
	}
	return Anonymous()
}
