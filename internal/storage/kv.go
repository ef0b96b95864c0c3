// Package storage persists user preferences, saved presets and generation
// jobs as JSON documents in a key-value backend.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KV.Get for a missing or expired key
var ErrKeyNotFound = errors.New("key not found")

// ErrConflict is returned by KV.Update when the key kept changing underneath it
var ErrConflict = errors.New("concurrent update conflict")

// UpdateFunc computes the new value of a key from its current value. current
// is nil when the key does not exist. Returning an error aborts the update.
type UpdateFunc func(current []byte) ([]byte, error)

// KV is the minimal document store the application needs. A zero ttl keeps
// the value until it is deleted.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Update applies fn to the current value and stores the result atomically
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error
}
