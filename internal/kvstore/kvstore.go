package kvstore

import "context"

// Store is a minimal key-value interface used by the contact submission
// ledger. Get returns ("", false, nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
