package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/videos"
)

const (
	keyPrefix     = "shortflix:list"
	generationKey = keyPrefix + ":generation"
)

// RedisListCache is a videos.ListCache backed by Redis. Invalidation bumps a
// generation counter that is part of every entry key, so stale entries are
// never read again and simply expire.
type RedisListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisListCache connects to redisURL. If redisURL is empty or the
// connection fails, it returns a cache with a nil client whose operations are
// no-ops that always miss.
func NewRedisListCache(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) *RedisListCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = videos.DefaultListCacheTTL
	}

	if redisURL == "" {
		logger.Info("redis: no URL configured, list cache disabled")
		return &RedisListCache{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("redis: invalid URL, list cache disabled", "error", err)
		return &RedisListCache{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis: connection failed, list cache disabled", "error", err)
		_ = rdb.Close()
		return &RedisListCache{ttl: ttl}
	}

	logger.Info("redis: connected, list cache enabled", "addr", opts.Addr)
	return &RedisListCache{rdb: rdb, ttl: ttl}
}

// NewRedisListCacheWithClient wraps an existing client.
func NewRedisListCacheWithClient(rdb *redis.Client, ttl time.Duration) *RedisListCache {
	if ttl <= 0 {
		ttl = videos.DefaultListCacheTTL
	}
	return &RedisListCache{rdb: rdb, ttl: ttl}
}

// Enabled reports whether a Redis client is attached.
func (c *RedisListCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *RedisListCache) Client() *redis.Client {
	return c.rdb
}

// Get returns the cached listing for key under the current generation.
func (c *RedisListCache) Get(ctx context.Context, key string) ([]models.Video, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	gen, err := generation(ctx, c.rdb)
	if err != nil {
		return nil, false, err
	}

	data, err := c.rdb.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var out []models.Video
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("decode cached listing: %w", err)
	}
	return out, true, nil
}

// Set stores videos under key for the cache TTL. The write is dropped when
// the generation moves while it is in flight.
func (c *RedisListCache) Set(ctx context.Context, key string, list []models.Video) error {
	if !c.Enabled() {
		return nil
	}

	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		gen, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, entryKey(gen, key), b, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate moves every reader to a fresh generation.
func (c *RedisListCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}

// Close shuts down the Redis connection.
func (c *RedisListCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, rdb stringGetter) (int64, error) {
	gen, err := rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis generation: %w", err)
	}
	return gen, nil
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, gen, key)
}

// Ping checks connectivity for health reporting.
func (c *RedisListCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return errors.New("redis: list cache disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

var _ videos.ListCache = (*RedisListCache)(nil)
