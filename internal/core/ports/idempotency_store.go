package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried request is not executed twice.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key is already claimed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
