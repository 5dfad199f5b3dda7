// Package storage is the key-value port the record store persists through.
package storage

import (
	"context" // Request scoped cancellation
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"sync"    // Memory backend locking

	"sentinel_engine/internal/config" // Storage settings

	"github.com/redis/go-redis/v9" // Redis client
)

// Storage reads and writes string values by key.
type Storage interface {
	// Get returns the value for key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Open returns the backend selected by cfg.StorageDriver. rdb is only used
// by the redis driver and may be nil otherwise.
func Open(cfg *config.Config, rdb *redis.Client) (Storage, error) {
	switch cfg.StorageDriver {
	case "redis":
		if rdb == nil {
			return nil, errors.New("storage driver redis needs a redis client")
		}
		return NewRedis(rdb), nil
	case "file":
		return NewFile(cfg.StateDir)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// Memory keeps values in a map. Used by tests and throwaway runs.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
