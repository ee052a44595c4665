package auth

import (
	"net/http"
	"strings"
)

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// HeaderName is the request header carrying the identity token.
const HeaderName = "Authorization"

// TokenFromRequest returns the raw token from the Authorization header. Both
// a bare token and "Bearer <token>" are accepted.
func TokenFromRequest(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(HeaderName))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

// IdentityFromRequest decodes the caller identity from r. A missing header
// yields the anonymous identity and a nil error; an invalid token yields the
// anonymous identity and the verification error.
func (s *Signer) IdentityFromRequest(r *http.Request) (*Identity, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return Anonymous(), nil
	}
	id, err := s.Parse(token)
	if err != nil {
		return Anonymous(), err
	}
	return id, nil
}

// Middleware stores the caller identity on the request context. Invalid
// tokens are logged and the request proceeds anonymously; authorization is
// enforced by the handlers.
func Middleware(s *Signer, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := s.IdentityFromRequest(r)
			if err != nil && logger != nil {
				logger.Warn("ignoring invalid identity token", "error", err, "path", r.URL.Path)
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
