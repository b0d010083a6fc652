package cache

import (
	"context"
	"time"
)

// Entry is a typed value kept as JSON under a fixed key. A nil store makes
// every Load a miss and every write a no-op.
type Entry[T any] struct {
	store Store
	key   string
	ttl   time.Duration
}

// NewEntry binds key in store to values of type T, written with ttl (the
// store default when <= 0).
func NewEntry[T any](store Store, key string, ttl time.Duration) *Entry[T] {
	return &Entry[T]{store: store, key: key, ttl: ttl}
}

// Key returns the unprefixed cache key.
func (e *Entry[T]) Key() string {
	return e.key
}

// Load returns the cached value or ErrCacheMiss.
func (e *Entry[T]) Load(ctx context.Context) (T, error) {
	var v T
	if err := GetJSON(ctx, e.store, e.key, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Save replaces the cached value.
func (e *Entry[T]) Save(ctx context.Context, v T) error {
	return SetJSON(ctx, e.store, e.key, v, e.ttl)
}

// Invalidate drops the cached value.
func (e *Entry[T]) Invalidate(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, e.key)
}
