package repository

import "context"

// KeyValueRepository is durable string storage keyed by name.
type KeyValueRepository interface {
	Init(ctx context.Context) error
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
