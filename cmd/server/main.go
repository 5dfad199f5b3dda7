package main

import (
	"context"   // Startup and shutdown contexts
	"errors"    // Matching http.ErrServerClosed
	"net/http"  // HTTP server
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"sentinel_engine/internal/api"       // HTTP handlers
	"sentinel_engine/internal/config"    // Configuration
	"sentinel_engine/internal/db"        // Database and Redis connections
	"sentinel_engine/internal/reconcile" // Record store
	"sentinel_engine/internal/storage"   // Record persistence
	"sentinel_engine/internal/utils"     // Response cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/rs/cors"           // CORS handling
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogger(cfg)    // Setup logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database holding analysts and the transactions table
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Redis backs the record store (STORAGE_DRIVER=redis) and the listing cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = db.NewRedis(ctx, cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	}

	backend, err := storage.Open(cfg, rdb)
	if err != nil {
		logrus.Fatalf("failed to open record storage: %v", err)
	}
	store := reconcile.New(backend, cfg.StateKey)
	if err := store.Load(ctx); err != nil {
		// The store is on the seed list; the persisted blob is left as is
		logrus.WithError(err).Warn("Could not load persisted records, serving seed list")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Store:     store,
		DB:        gdb,
		Cache:     utils.NewResponseCache(rdb, "sentinel:ledger:", 60*time.Second),
		JWTSecret: cfg.JWTSecret,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server stopped: %v", err)
	}
	logrus.Info("Server stopped")
}
