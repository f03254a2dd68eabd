// Package store persists the candidate list under a single namespaced key
// on top of a pluggable key-value backend.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Backend is a minimal key-value persistence shim. Put replaces the value
// wholesale; there is no partial update or append primitive.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
