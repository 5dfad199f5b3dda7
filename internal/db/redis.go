package db

import (
	"context" // Context for the ping
	"fmt"     // Error wrapping
	"time"    // Ping timeout

	"sentinel_engine/internal/config" // Connection settings

	"github.com/redis/go-redis/v9" // Redis client
)

// NewRedis connects to Redis and checks the connection with a ping
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}
