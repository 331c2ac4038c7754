package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get for an absent key.
var ErrNotFound = errors.New("storage: key not found")

// KV is the device key-value store. Values are opaque strings; callers own
// the encoding.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
