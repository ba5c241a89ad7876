package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// SpotPrefix namespaces the spot detail entries and their generation counters.
const SpotPrefix = "rentspot:spot"

// NewRedis connects to the configured redis and fails fast when it is not
// reachable. With tracing enabled every command is recorded as a span.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	if cfg.Redis.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Redis.Addr, err)
	}

	if cfg.Telemetry.Enabled {
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("instrument redis: %w", err)
		}
	}
	return rdb, nil
}

// NewSpotCache returns the spot detail cache, or nil when redis.spotTTLSec
// turns caching off.
func NewSpotCache(cfg *config.Config, rdb *redis.Client) *JSONCache {
	if cfg.Redis.SpotTTLSec <= 0 {
		return nil
	}
	return NewJSONCache(rdb, SpotPrefix, time.Duration(cfg.Redis.SpotTTLSec)*time.Second)
}
