// Package cache is the read-through cache and short-lived key store shared
// by the cart, wishlist, checkout guard and session revocation.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get decodes the cached value for key into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// SetNX stores token under key only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	// DeleteIfEquals removes key only while it still holds token.
	DeleteIfEquals(ctx context.Context, key, token string) (bool, error)
	// Incr atomically increments the counter at key, starting from zero.
	Incr(ctx context.Context, key string) (int64, error)
}
