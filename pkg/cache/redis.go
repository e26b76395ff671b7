package cache

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// DialTimeout bounds the connection check in NewRedisCache (default 5s).
	DialTimeout time.Duration

	// KeepOnError keeps the cache enabled after a failed operation. By
	// default the first backend error disables the cache for the rest of
	// the process, and every call after it is a miss.
	KeepOnError bool
}

// RedisCache stores entries in Redis. When Redis is unreachable at
// construction, or fails later, the cache degrades to a miss-only cache and
// never fails the caller.
type RedisCache struct {
	client *redis.Client
	logger *log.Logger
	opts   RedisOptions

	mu       sync.RWMutex
	disabled bool
}

// NewRedisCache connects to Redis and pings it. A failed ping is logged and
// yields a disabled cache rather than an error.
func NewRedisCache(ctx context.Context, opts RedisOptions, logger *log.Logger) *RedisCache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	logger = logger.WithPrefix("cache")

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, running without cache", "addr", opts.Addr, "err", err)
		_ = client.Close()
		return &RedisCache{logger: logger, opts: opts, disabled: true}
	}

	logger.Info("redis cache ready", "addr", opts.Addr, "db", opts.DB)
	return &RedisCache{client: client, logger: logger, opts: opts}
}

// Available reports whether the cache is talking to Redis.
func (c *RedisCache) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.disabled && c.client != nil
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.Available() {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.fail(err, "get")
		return nil, false, nil
	}
	return data, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if !c.Available() {
		return nil
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.fail(err, "set")
	}
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if !c.Available() {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.fail(err, "delete")
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *RedisCache) fail(err error, op string) {
	c.logger.Debug("cache operation failed", "op", op, "err", err)
	if c.opts.KeepOnError {
		return
	}
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()
	c.logger.Warn("disabling cache after redis error", "op", op)
}

var _ Cache = (*RedisCache)(nil)
