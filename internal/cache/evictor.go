package cache

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Evictor removes derived cache entries after entity mutations. Eviction is
// fire-and-forget: deleting an absent key is a no-op and a failing backend
// must never block the write path.
type Evictor interface {
	Evict(ctx context.Context, keys ...string)
}

type redisEvictor struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisEvictor returns an Evictor backed by Redis DEL.
func NewRedisEvictor(client *redis.Client, log *zap.Logger) Evictor {
	return &redisEvictor{
		client: client,
		log:    log.Named("cache.evictor"),
	}
}

func (e *redisEvictor) Evict(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := e.client.Del(ctx, keys...).Err(); err != nil {
		// Fail open: the next read recomputes either way.
		e.log.Warn("cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
		return
	}
	e.log.Debug("cache evicted", zap.Strings("keys", keys))
}

// NoopEvictor discards evictions. Used when no cache backend is configured
// and in tests.
type NoopEvictor struct{}

func (NoopEvictor) Evict(ctx context.Context, keys ...string) {}
