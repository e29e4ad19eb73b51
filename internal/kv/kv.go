package kv

import "context"

// Store is the key/value space backing the mirror store, the Go stand-in for
// browser localStorage. Values are JSON blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Keys returns every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
