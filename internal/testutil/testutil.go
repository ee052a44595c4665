// Package testutil provides test utilities for adminui
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/youssefsiam38/adminui/auth"
)

// Secret is a signing secret long enough for auth.NewSigner.
const Secret = "test-secret-0123456789abcdef-0123"

// NewSigner creates a signer with Secret and no token expiry.
func NewSigner(t *testing.T) *auth.Signer {
	t.Helper()

	s, err := auth.NewSigner([]byte(Secret), 0)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	return s
}

// Token signs an identity with the given display name and tags.
func Token(t *testing.T, s *auth.Signer, name string, tags ...string) string {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	token, err := s.Sign(&auth.Identity{DisplayName: name, Auth: tags})
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// NewRequest builds a request. A non-nil body is encoded as JSON unless it
// is already an io.Reader.
func NewRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	if body != nil {
		if _, ok := body.(io.Reader); !ok {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	return req
}

// Authorize sets the Authorization header of req to token.
func Authorize(req *http.Request, token string) *http.Request {
	req.Header.Set(auth.HeaderName, token)
	return req
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON decodes the response body into a generic value.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()

	var v any
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

// DecodeObject decodes the response body into a JSON object.
func DecodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	obj, ok := DecodeJSON(t, rec).(map[string]any)
	if !ok {
		t.Fatalf("Response is not a JSON object: %s", rec.Body.String())
	}
	return obj
}
