package cache

import (
	"context"
	"time"
)

const resourceKey = "_"

// Resource is a Store holding exactly one value, loaded by a fixed Loader.
type Resource[V any] struct {
	store *Store[V]
	load  Loader[V]
}

func NewResource[V any](name string, ttl time.Duration, load Loader[V], opts ...Option) (*Resource[V], error) {
	store, err := NewStore[V](name, ttl, append(opts, WithCapacity(1))...)
	if err != nil {
		return nil, err
	}
	return &Resource[V]{store: store, load: load}, nil
}

func (r *Resource[V]) Name() string { return r.store.Name() }

func (r *Resource[V]) Fetch(ctx context.Context) (V, error) {
	return r.store.Get(ctx, resourceKey, r.load)
}

func (r *Resource[V]) LastKnown() (V, bool) {
	return r.store.LastKnown(resourceKey)
}

func (r *Resource[V]) Invalidate() {
	r.store.Invalidate(resourceKey)
}
