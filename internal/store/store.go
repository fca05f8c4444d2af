// Package store defines the durable key/value storage the storefront uses to
// persist session state (the cart snapshot and the admin token) across
// restarts, and the versioned snapshot encoding shared by its backends.
package store

import "context"

// Well-known storage keys.
const (
	KeyCart       = "cart"
	KeyAdminToken = "adminToken"
)

// Store is a durable key/value store for session state. Implementations must
// return an error satisfying errors.Is(err, apperrors.ErrNotFound) from Get
// when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
