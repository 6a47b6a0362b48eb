package services

import (
	"context"
	"time"
)

// CacheService stores JSON-encoded values. Get reports false on a miss.
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}
