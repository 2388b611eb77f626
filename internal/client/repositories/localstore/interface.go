// Package localstore is the client's durable key/value storage, the
// terminal counterpart of a browser's localStorage. Values survive restarts
// until they are removed explicitly.
package localstore

import "context"

// Repository reads and writes opaque values under fixed keys.
// GetItem returns (nil, nil) for a missing key.
type Repository interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}
