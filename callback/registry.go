package callback

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Registry associates callbacks with generated identifiers in both
// directions. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ids   map[*Callback]string
	byID  map[string]*Callback
	newID func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerator overrides the identifier generator. The generator must not
// return the same identifier twice.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) { r.newID = gen }
}

// NewRegistry creates an empty registry that issues UUID identifiers.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ids:   make(map[*Callback]string),
		byID:  make(map[string]*Callback),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ID returns the identifier for cb, registering it on first sight.
// A nil callback has the empty identifier.
func (r *Registry) ID(cb *Callback) string {
	if cb == nil {
		return ""
	}

	r.mu.RLock()
	id, ok := r.ids[cb]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have registered cb between the two locks.
	if id, ok := r.ids[cb]; ok {
		return id
	}
	id = r.newID()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = r.newID()
	}
	r.ids[cb] = id
	r.byID[id] = cb
	return id
}

// Lookup returns the callback registered under id.
func (r *Registry) Lookup(id string) (*Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.byID[id]
	return cb, ok
}

// Invoke calls the callback registered under id with args.
// found is false, and result and err are nil, when id is unknown.
func (r *Registry) Invoke(ctx context.Context, id string, args []json.RawMessage) (result any, found bool, err error) {
	cb, ok := r.Lookup(id)
	if !ok {
		return nil, false, nil
	}
	result, err = cb.Call(ctx, args)
	return result, true, err
}

// Len returns the number of registered callbacks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
