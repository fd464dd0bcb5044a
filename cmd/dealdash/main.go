package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/api"
	"github.com/dealdash/dealdash/internal/auth"
	"github.com/dealdash/dealdash/internal/cache"
	"github.com/dealdash/dealdash/internal/config"
	"github.com/dealdash/dealdash/internal/storage"
	"github.com/dealdash/dealdash/internal/storage/postgres"
	"github.com/dealdash/dealdash/internal/storage/supabase"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting DealDash API...")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/dealdash.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	ctx := context.Background()

	// Backend selection falls through Supabase, then PostgreSQL, then memory,
	// so a dev checkout with no databases still serves the full API.
	var store storage.Storage
	var pgStore *postgres.Store

	if cfg.Database.Supabase.URL != "" && cfg.Database.Supabase.ServiceRoleKey != "" {
		sb, sbErr := supabase.New(cfg.Database.Supabase.URL, cfg.Database.Supabase.ServiceRoleKey, logger)
		if sbErr != nil {
			logger.Warn("Supabase unavailable, trying PostgreSQL", zap.Error(sbErr))
		} else {
			store = sb
		}
	}

	if store == nil && cfg.Database.Postgres.DSN != "" {
		ps, pgErr := postgres.New(ctx, cfg.Database.Postgres.DSN, logger)
		if pgErr != nil {
			logger.Warn("PostgreSQL unavailable, falling back to memory", zap.Error(pgErr))
		} else {
			if mErr := ps.Migrate(ctx, cfg.Migrations); mErr != nil {
				logger.Fatal("migration failed", zap.Error(mErr))
			}
			pgStore = ps
			store = ps
		}
	}

	if store == nil {
		logger.Info("Using in-memory storage", zap.Bool("seed", cfg.Seed))
		store = storage.NewMemory(cfg.Seed)
	}

	// Optional Redis read-through cache over the chosen backend.
	var cached *cache.Storage
	if cfg.Database.Redis.URL != "" {
		ttl := time.Duration(cfg.Database.Redis.CacheTTLSec) * time.Second
		c, cErr := cache.New(cfg.Database.Redis.URL, ttl, store, logger)
		if cErr != nil {
			logger.Warn("Redis unavailable, running without cache", zap.Error(cErr))
		} else {
			cached = c
			store = c
		}
	}

	var authSvc *auth.Service
	if cfg.Auth.Enabled {
		if cfg.Auth.JWTSecret == "" {
			logger.Fatal("auth enabled but jwt_secret is empty")
		}
		ttl := time.Duration(cfg.Auth.TokenTTLHour) * time.Hour
		authSvc = auth.NewService(store, cfg.Auth.JWTSecret, ttl)
		logger.Info("Authentication enabled")
	}

	handler := api.NewHandler(store, authSvc, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("DealDash listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down DealDash...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	if cached != nil {
		cached.Close()
	}
	if pgStore != nil {
		pgStore.Close()
	}
}
