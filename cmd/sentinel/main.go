package main

import (
	"context" // Startup context
	"os"      // Exit codes

	"sentinel_engine/internal/commands"  // CLI commands
	"sentinel_engine/internal/config"    // Configuration loading
	"sentinel_engine/internal/db"        // Redis connection
	"sentinel_engine/internal/reconcile" // Record store
	"sentinel_engine/internal/storage"   // Persistence backends

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

func main() {
	cfg := config.LoadConfig()
	config.SetupLogger(cfg)

	var rdb *redis.Client
	open := func(ctx context.Context) (*reconcile.Store, error) {
		if cfg.StorageDriver == "redis" {
			var err error
			if rdb, err = db.NewRedis(ctx, cfg); err != nil {
				return nil, err
			}
		}
		backend, err := storage.Open(cfg, rdb)
		if err != nil {
			return nil, err
		}
		store := reconcile.New(backend, cfg.StateKey)
		if err := store.Load(ctx); err != nil {
			logrus.WithError(err).Warn("Could not load persisted records, using seed list")
		}
		return store, nil
	}

	err := commands.NewRootCommand(open).ExecuteContext(context.Background())
	if rdb != nil {
		_ = rdb.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
