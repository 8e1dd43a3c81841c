package closet

import (
	"context"
	"sync"
)

// StorageKey is the key prefix an owner's list is stored under.
const StorageKey = "closet_items_v1"

// Registry opens each owner's closet once and hands out the cached copy.
type Registry struct {
	mu      sync.Mutex
	store   Store
	opts    []Option
	closets map[string]*Closet
}

func NewRegistry(store Store, opts ...Option) *Registry {
	return &Registry{
		store:   store,
		opts:    opts,
		closets: make(map[string]*Closet),
	}
}

// For returns the owner's closet, opening it on first use. The store read
// happens outside the lock; if two callers race, the first one cached wins.
// The cache assumes this process is the only writer to the store.
func (r *Registry) For(ctx context.Context, owner string) (*Closet, error) {
	r.mu.Lock()
	c, ok := r.closets[owner]
	r.mu.Unlock()
	if ok {
		return c, nil
	}

	opened, err := Open(ctx, r.store, StorageKey+":"+owner, r.opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.closets[owner]; ok {
		return c, nil
	}
	r.closets[owner] = opened
	return opened, nil
}
