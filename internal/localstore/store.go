// Package localstore implements the persistent key-value slot surviving
// process restarts. It holds only the identity mirror and the session
// token; the remote auth service stays authoritative.
package localstore

import "context"

// Well-known slot keys.
const (
	KeyIdentity     = "identity"
	KeySessionToken = "session_token"
)

// Store is a small persistent key-value cache. Get returns nil for an
// absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
