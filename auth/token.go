package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the minimum signing secret length in bytes.
const MinSecretLen = 32

// Claims is the token payload.
type Claims struct {
	DisplayName string   `json:"display_name"`
	Auth        []string `json:"auth"`
	UserInfo    any      `json:"user_info"`
	jwt.RegisteredClaims
}

// Signer issues and verifies identity tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner creates a signer using HS256 with secret. A zero ttl issues
// tokens without an expiry claim, which never expire.
func NewSigner(secret []byte, ttl time.Duration) (*Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretLen, len(secret))
	}
	if ttl < 0 {
		return nil, fmt.Errorf("auth: negative token ttl %s", ttl)
	}
	return &Signer{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the token lifetime, zero meaning unlimited.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Sign returns a token for id.
func (s *Signer) Sign(id *Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		DisplayName: id.DisplayName,
		Auth:        id.Tags(),
		UserInfo:    id.UserInfo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies token and returns the identity it carries. The signing
// method is pinned to HS256.
func (s *Signer) Parse(token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	auth := claims.Auth
	if auth == nil {
		auth = []string{}
	}
	return &Identity{
		DisplayName:   claims.DisplayName,
		Auth:          auth,
		UserInfo:      claims.UserInfo,
		authenticated: true,
	}, nil
}
