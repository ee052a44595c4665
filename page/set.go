package page

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Match is the result of resolving a layout path.
type Match struct {
	Page       *Page
	SubPath    string
	HasSubPath bool
}

// Set holds the registered pages. It is safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewSet creates an empty page set.
func NewSet() *Set {
	return &Set{pages: make(map[string]*Page)}
}

// Add registers p. Registering the same path twice is an error.
func (s *Set) Add(p *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pages[p.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePage, p.Path)
	}
	s.pages[p.Path] = p
	return nil
}

// Get returns the page registered at path.
func (s *Set) Get(path string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[path]
	return p, ok
}

// List returns all pages ordered by path.
func (s *Set) List() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]*Page, 0, len(s.pages))
	for _, p := range s.pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages
}

// Len returns the number of registered pages.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Resolve finds the page for raw, the layout path without its leading slash.
// An exact match on "/"+raw wins. Otherwise the first segment selects the
// page and everything after the first "/" becomes the sub-path; a raw path
// with a single segment and no exact match is not found.
func (s *Set) Resolve(raw string) (Match, bool) {
	raw = strings.TrimPrefix(raw, "/")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.pages["/"+raw]; ok {
		return Match{Page: p}, true
	}

	parts := strings.SplitN(raw, "/", 2)
	if len(parts) < 2 {
		return Match{}, false
	}
	if p, ok := s.pages["/"+parts[0]]; ok {
		return Match{Page: p, SubPath: parts[1], HasSubPath: true}, true
	}
	return Match{}, false
}
