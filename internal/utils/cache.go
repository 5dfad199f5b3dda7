package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Matching redis.Nil
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// ResponseCache stores JSON response bodies in Redis under a shared prefix.
// A cache built on a nil client never hits and silently drops writes.
type ResponseCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResponseCache returns a cache for keys starting with prefix
func NewResponseCache(rdb *redis.Client, prefix string, ttl time.Duration) *ResponseCache {
	return &ResponseCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *ResponseCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, c.prefix+key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores value as JSON with the cache TTL
func (c *ResponseCache) Set(ctx context.Context, key string, value any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Invalidate deletes every key under the cache prefix
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
