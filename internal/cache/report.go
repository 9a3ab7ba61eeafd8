// Package cache stores computed compliance reports in Redis.
//
// All reports of one user live in a single hash. Beside it sits a generation
// counter that every trip write increments. Callers read the generation before
// loading trips and embed it in the field name, so a report computed from trips
// that a concurrent write has since replaced is stored under a field nobody
// asks for again. Fields also embed the reference date, so a report computed
// yesterday is never served today.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a user's report hash survives without writes.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "compliance:reports:"

// ReportCache is a Redis-backed store of per-user report snapshots.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a ReportCache. A non-positive ttl uses DefaultTTL.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

// NewClient parses a redis:// URL and verifies the server answers PING.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.NewClient: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewClient: ping: %w", err)
	}
	return client, nil
}

// Generation returns the user's current cache generation, 0 if no write has
// been recorded within the TTL.
func (c *ReportCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache.ReportCache.Generation: %w", err)
	}
	return gen, nil
}

// Get decodes the cached report stored under field into dest.
// It reports false on a cache miss.
func (c *ReportCache) Get(ctx context.Context, userID uuid.UUID, field string, dest any) (bool, error) {
	data, err := c.client.HGet(ctx, userKey(userID), field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache.ReportCache.Get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache.ReportCache.Get: decode %s: %w", field, err)
	}
	return true, nil
}

// Set stores report under field and refreshes the TTL of the user's hash and
// generation counter together, so the counter never expires before the hash.
func (c *ReportCache) Set(ctx context.Context, userID uuid.UUID, field string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("cache.ReportCache.Set: encode %s: %w", field, err)
	}
	key := userKey(userID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	pipe.Expire(ctx, key, c.ttl)
	pipe.Expire(ctx, generationKey(userID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache.ReportCache.Set: %w", err)
	}
	return nil
}

// Invalidate bumps the user's generation and drops the cached reports.
func (c *ReportCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	genKey := generationKey(userID)
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, c.ttl)
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache.ReportCache.Invalidate: %w", err)
	}
	return nil
}

func userKey(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func generationKey(userID uuid.UUID) string {
	return keyPrefix + userID.String() + ":gen"
}
