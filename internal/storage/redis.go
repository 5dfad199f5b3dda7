package storage

import (
	"context" // Context for Redis operations
	"errors"  // Matching redis.Nil

	"github.com/redis/go-redis/v9" // Redis client
)

// Redis stores values as plain redis strings without expiry
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps an already connected client
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Get reads a key from Redis
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return "", false, nil // Key does not exist
	} else if err != nil {
		return "", false, err // Other Redis error
	}
	return val, true, nil
}

// Set writes a key to Redis with no TTL
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err() // 0 keeps the key forever
}
