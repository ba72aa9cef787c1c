package clients

import (
	"context"
	"time"

	"storefront-service/common/logger"
	awspkg "storefront-service/pkg/aws"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores raw catalog responses. Implementations must treat every failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

const catalogCachePrefix = "storefront:catalog:"

// RedisCache is a Cache over Redis with a fixed TTL.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *awspkg.MetricsClient
}

func NewRedisCache(client *redis.Client, ttl time.Duration, metrics *awspkg.MetricsClient) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, metrics: metrics}
}

func (c *RedisCache) count(metric string) {
	if !c.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.metrics.RecordCount(ctx, metric, map[string]string{"Service": "storefront"})
	}()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, catalogCachePrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx, "catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.count(awspkg.MetricCatalogCacheMiss)
		return nil, false
	}
	c.count(awspkg.MetricCatalogCacheHits)
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, catalogCachePrefix+key, value, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
