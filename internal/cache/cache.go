// Package cache provides an optional Redis cache for listing page envelopes.
// A nil *ListingCache is a no-op, so callers don't branch on whether Redis is
// configured.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/query"
)

const versionKey = "jobdeck:jobs:ver"

// ListingCache stores serialized page envelopes keyed by the compiled query.
// Invalidation bumps a namespace version instead of scanning keys; stale
// entries age out via TTL.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at the given URL (redis://host:port) and pings it.
func New(redisURL string, ttl time.Duration) (*ListingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}
	return &ListingCache{client: client, ttl: ttl}, nil
}

// Get returns the cached envelope for q, if any. Errors degrade to a miss.
func (c *ListingCache) Get(ctx context.Context, q query.Query) (*dtos.ListResponse, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(ctx, q)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dtos.ListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Set stores the envelope for q with the configured TTL. Best effort.
func (c *ListingCache) Set(ctx context.Context, q query.Query, resp *dtos.ListResponse) {
	if c == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(ctx, q), data, c.ttl)
}

// Invalidate bumps the namespace version so every cached page misses.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Incr(ctx, versionKey)
}

func (c *ListingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *ListingCache) key(ctx context.Context, q query.Query) string {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil {
		ver = 0
	}
	return fmt.Sprintf("jobdeck:jobs:%d:%x", ver, queryDigest(q))
}

// queryDigest hashes the compiled query's fields. Working from the compiled
// form makes the key independent of request parameter order.
func queryDigest(q query.Query) []byte {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%t|%d|%d",
		q.Search, q.Status, q.Priority, q.Location, q.SortField, q.SortAsc, q.Page, q.Limit)
	sum := sha256.Sum256([]byte(raw))
	return sum[:8]
}
