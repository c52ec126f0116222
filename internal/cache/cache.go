// Package cache stores raw upstream documents between revalidations so repeated page loads and
// prerender runs do not refetch unchanged summaries.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
)

// Cache is a byte store keyed by upstream document path.
type Cache interface {
	// Get returns the cached value; ok is false on a miss or expiry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// New builds the backend selected by cfg. It returns a nil Cache for the "none" backend. The returned
// close function releases backend connections and is never nil.
func New(cfg config.CacheConfig, recorder *metrics.Recorder, logger *slog.Logger) (Cache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.CacheMemory:
		return Instrument(NewMemoryCache(), recorder), noop, nil
	case config.CacheRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if logger != nil {
			logger.Info("document cache using redis", slog.String("addr", opts.Addr), slog.Int("db", opts.DB))
		}
		return Instrument(NewRedisCache(client, defaultKeyPrefix), recorder), client.Close, nil
	default:
		return nil, noop, nil
	}
}

type instrumented struct {
	next     Cache
	recorder *metrics.Recorder
}

// Instrument records hit and miss counts for every lookup against c.
func Instrument(c Cache, recorder *metrics.Recorder) Cache {
	if c == nil || recorder == nil {
		return c
	}
	return &instrumented{next: c, recorder: recorder}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := c.next.Get(ctx, key)
	if err == nil {
		c.recorder.RecordCacheLookup(ok)
	}
	return value, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.next.Set(ctx, key, value, ttl)
}
