// Package querycache defines the shared byte store behind the query client
// and its Redis implementation.
package querycache

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed is returned by stores used after Close.
var ErrStoreClosed = errors.New("query cache store is closed")

// Store persists encoded query results keyed by their query hash.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the value for key. A miss returns ok=false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value for ttl. A non-positive ttl keeps the value until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes one key.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}
