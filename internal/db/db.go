// Package db defines the key-value store contract used by the embedding
// cache. The store is optional infrastructure; the service runs without it.
package db

import (
	"context"
	"time"
)

// Store is the key-value facade for the embedding cache.
type Store interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
