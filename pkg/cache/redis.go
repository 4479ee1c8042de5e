package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	dlerrors "github.com/matzehuels/diagramlayout/pkg/errors"
)

// RedisCache stores entries in Redis under a common key prefix. It is the
// backend for servers running more than one instance.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache connects lazily to the Redis server at rawURL
// ("redis://[:password@]host:port/db" or "rediss://..."). Use [RedisCache.Ping]
// to check connectivity at startup.
func NewRedisCache(rawURL, prefix string) (*RedisCache, error) {
	opts, err := redisOptions(rawURL)
	if err != nil {
		return nil, err
	}
	return NewRedisCacheFromClient(redis.NewClient(opts), prefix), nil
}

// redisOptions parses rawURL with client retries disabled; Get and Set
// retry through [RetryWithBackoff] instead.
func redisOptions(rawURL string) (*redis.Options, error) {
	if err := dlerrors.ValidateRedisURL(rawURL); err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, dlerrors.Wrap(dlerrors.ErrCodeInvalidInput, err, "parse redis URL")
	}
	opts.MaxRetries = -1
	return opts, nil
}

// NewRedisCacheFromClient wraps an existing client. Closing the cache closes
// the client. Get and Set retry on top of the client's own retries, so
// callers should build it with MaxRetries set to -1.
func NewRedisCacheFromClient(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return dlerrors.Wrap(dlerrors.ErrCodeCache, err, "ping redis")
	}
	return nil
}

// Get retrieves a value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, c.key(key)).Bytes()
		if err != nil {
			return classify(err)
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dlerrors.Wrap(dlerrors.ErrCodeCache, err, "redis get")
	}
	return data, true, nil
}

// Set stores a value. A zero ttl keeps the key until it is evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, c.key(key), data, ttl).Err())
	})
	if err != nil {
		return dlerrors.Wrap(dlerrors.ErrCodeCache, err, "redis set")
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := classify(c.client.Del(ctx, c.key(key)).Err()); err != nil {
		return dlerrors.Wrap(dlerrors.ErrCodeCache, err, "redis delete")
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// classify marks connection failures as retryable.
func classify(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
