package store

import (
	"context"
	"time"
)

// Cache is a byte-value cache with wall-clock expiry, used to avoid
// re-extracting documents whose content hash was seen recently.
type Cache interface {
	// Get returns the cached value for key and whether it was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key until expiresAt. Values already expired
	// are not stored.
	Put(ctx context.Context, key string, value []byte, expiresAt time.Time) error
}
