package page

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/youssefsiam38/adminui/auth"
	"github.com/youssefsiam38/adminui/element"
)

// Request carries the per-request inputs of a page build.
type Request struct {
	// SubPath is the part of the layout path after the page's base segment.
	SubPath string

	// HasSubPath distinguishes an empty sub-path ("/users/") from none ("/users").
	HasSubPath bool

	// Query holds the URL query parameters of the layout request.
	Query url.Values

	// Identity is the caller. Never nil when built through the HTTP API.
	Identity *auth.Identity
}

// Builder produces the element tree of a page.
type Builder func(ctx context.Context, req *Request) ([]*element.Element, error)

// Func adapts a builder that takes no arguments.
func Func(fn func() []*element.Element) Builder {
	if fn == nil {
		return nil
	}
	return func(context.Context, *Request) ([]*element.Element, error) {
		return fn(), nil
	}
}

// SubPathFunc adapts a builder that takes the sub-path. It receives "" when
// the page is matched exactly.
func SubPathFunc(fn func(subPath string) []*element.Element) Builder {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, req *Request) ([]*element.Element, error) {
		return fn(req.SubPath), nil
	}
}

// Page is a URL-addressable element tree builder.
type Page struct {
	// Path is the page URL, always starting with "/".
	Path string

	// Name is the display name.
	Name string

	// AuthNeeded is the tag a caller must hold; empty means public.
	AuthNeeded string

	builder Builder
}

// Option configures a Page.
type Option func(*Page)

// RequireAuth restricts the page to callers holding tag.
func RequireAuth(tag string) Option {
	return func(p *Page) {
		p.AuthNeeded = tag
	}
}

// New creates a page at path.
func New(path, name string, b Builder, opts ...Option) (*Page, error) {
	if path == "" || !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilBuilder, path)
	}
	p := &Page{Path: path, Name: name, builder: b}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(path, name string, b Builder, opts ...Option) *Page {
	p, err := New(path, name, b, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Authorized reports whether a caller holding tags may see the page.
func (p *Page) Authorized(tags []string) bool {
	if p.AuthNeeded == "" {
		return true
	}
	for _, t := range tags {
		if t == p.AuthNeeded {
			return true
		}
	}
	return false
}

// Build runs the page builder. A nil element list is returned as empty.
// req is not modified.
func (p *Page) Build(ctx context.Context, req *Request) ([]*element.Element, error) {
	var r Request
	if req != nil {
		r = *req
	}
	if r.Identity == nil {
		r.Identity = auth.Anonymous()
	}
	if r.Query == nil {
		r.Query = url.Values{}
	}
	els, err := p.builder(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", p.Path, err)
	}
	if els == nil {
		els = []*element.Element{}
	}
	return els, nil
}
