// Package cache stores short-lived byte values in Redis or in memory.
// It backs the explanation cache and the HTTP session registry.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get for absent or expired keys.
var ErrMiss = errors.New("cache miss")

// Store is a key/value store with per-key expiry. A ttl of 0 never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Open returns a Redis store for url, or a memory store when url is empty.
func Open(ctx context.Context, url, prefix string) (Store, func() error, error) {
	if url == "" {
		return NewMemory(), func() error { return nil }, nil
	}
	r, err := NewRedis(ctx, url, prefix)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}
