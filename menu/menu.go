// Package menu models the navigation tree shown by the frontend and filters
// it by the caller's authorization tags.
package menu

import (
	"slices"
	"sync"
)

// Component is the frontend route component every menu entry points at.
const Component = "./index"

// Item is a node of the menu tree.
type Item struct {
	Name string
	URL  string

	// Icon is an Ant Design icon name; empty for none.
	Icon string

	// AuthNeeded is the tag a caller must hold; empty means public.
	AuthNeeded string

	Children []*Item
}

// Option configures an Item.
type Option func(*Item)

// WithIcon sets the item icon.
func WithIcon(icon string) Option {
	return func(i *Item) { i.Icon = icon }
}

// RequireAuth restricts the item to callers holding tag.
func RequireAuth(tag string) Option {
	return func(i *Item) { i.AuthNeeded = tag }
}

// WithChildren sets the sub-menu.
func WithChildren(children ...*Item) Option {
	return func(i *Item) { i.Children = children }
}

// New creates a menu item.
func New(name, url string, opts ...Option) *Item {
	i := &Item{Name: name, URL: url}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Allowed reports whether a caller holding tags may see the item.
func (i *Item) Allowed(tags []string) bool {
	return i.AuthNeeded == "" || slices.Contains(tags, i.AuthNeeded)
}

// Entry is the JSON form of an Item.
type Entry struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Icon      *string  `json:"icon"`
	Component string   `json:"component"`
	Children  []*Entry `json:"children"`
}

// Filter returns the entries visible to a caller holding tags. Items the
// caller may not see are dropped together with their subtree.
func Filter(items []*Item, tags []string) []*Entry {
	entries := make([]*Entry, 0, len(items))
	for _, it := range items {
		if it == nil || !it.Allowed(tags) {
			continue
		}
		e := &Entry{
			Name:      it.Name,
			Path:      it.URL,
			Component: Component,
			Children:  Filter(it.Children, tags),
		}
		if it.Icon != "" {
			icon := it.Icon
			e.Icon = &icon
		}
		entries = append(entries, e)
	}
	return entries
}

// Tree holds the application menu. It is safe for concurrent use.
type Tree struct {
	mu    sync.RWMutex
	items []*Item
}

// Set replaces the menu.
func (t *Tree) Set(items ...*Item) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = slices.Clone(items)
}

// Items returns the top-level items.
func (t *Tree) Items() []*Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.items)
}

// For returns the menu entries visible to a caller holding tags.
func (t *Tree) For(tags []string) []*Entry {
	return Filter(t.Items(), tags)
}
