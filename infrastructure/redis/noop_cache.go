package redis

import (
	"context"
	"time"

	"heritage-archive/domain/services"
)

// NoopCache is used when Redis is disabled; every lookup misses.
type NoopCache struct{}

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

var _ services.CacheService = NoopCache{}
