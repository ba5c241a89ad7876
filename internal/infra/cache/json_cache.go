package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// JSONCache stores JSON-encoded values under a key prefix with a fixed TTL.
// A nil *JSONCache or a zero TTL turns every call into a no-op miss.
//
// Every key has a generation counter. Entries live under "<prefix>:<key>:<gen>"
// and Invalidate bumps the counter, so a fill computed from data read before an
// invalidation is written under a generation nobody reads anymore.
// Counters never expire; they hold one integer per key.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *JSONCache) genKey(k string) string {
	return c.prefix + ":gen:" + k
}

func (c *JSONCache) entryKey(k string, gen int64) string {
	return c.prefix + ":" + k + ":" + strconv.FormatInt(gen, 10)
}

func (c *JSONCache) generation(ctx context.Context, k string) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey(k)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get decodes the current entry for k into dst and reports whether it was
// found. The returned generation must be passed to Set when filling a miss;
// read it before loading the value from the source of truth.
func (c *JSONCache) Get(ctx context.Context, k string, dst any) (bool, int64, error) {
	if !c.enabled() {
		return false, 0, nil
	}
	gen, err := c.generation(ctx, k)
	if err != nil {
		return false, 0, err
	}
	b, err := c.rdb.Get(ctx, c.entryKey(k, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, gen, err
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		return false, gen, err
	}
	return true, gen, nil
}

// Set stores v for k at generation gen.
func (c *JSONCache) Set(ctx context.Context, k string, gen int64, v any) error {
	if !c.enabled() {
		return nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.entryKey(k, gen), b, c.ttl).Err()
}

// Invalidate retires the current entry of every key by bumping its generation,
// then drops the retired entry.
func (c *JSONCache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	incrs := make([]*redis.IntCmd, len(keys))
	if _, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for i, k := range keys {
			incrs[i] = p.Incr(ctx, c.genKey(k))
		}
		return nil
	}); err != nil {
		return err
	}

	retired := make([]string, len(keys))
	for i, k := range keys {
		retired[i] = c.entryKey(k, incrs[i].Val()-1)
	}
	return c.rdb.Del(ctx, retired...).Err()
}
