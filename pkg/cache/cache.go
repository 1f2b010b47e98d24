package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value cache.
type Cache[V any] interface {
	// Get returns the value stored under key.
	Get(key string) (V, bool)
	// Set stores value under key.
	Set(key string, value V) error
	// Len returns the number of entries.
	Len() int
}

// Memo computes values on a miss and stores them in a Cache.
type Memo[V any] struct {
	cache Cache[V]
	group singleflight.Group
}

// NewMemo wraps c.
func NewMemo[V any](c Cache[V]) *Memo[V] {
	return &Memo[V]{cache: c}
}

// Get returns the cached value for key, or calls fn to compute it. Only one
// call of fn runs per key at a time; callers arriving meanwhile share its
// result. Failed computations are not cached.
func (m *Memo[V]) Get(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := m.cache.Get(key); ok {
		return v, nil
	}

	res, err, _ := m.group.Do(key, func() (any, error) {
		if v, ok := m.cache.Get(key); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// A closed cache still serves the computed value.
		_ = m.cache.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}
