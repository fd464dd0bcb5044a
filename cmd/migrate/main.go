package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/config"
	"github.com/dealdash/dealdash/internal/storage/postgres"
)

// Applies pending SQL migrations and verifies the activity hierarchy schema
// (parent_activity_id column, its foreign key and its index) is in place.
func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/dealdash.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	if cfg.Database.Postgres.DSN == "" {
		logger.Fatal("no postgres dsn configured")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.Database.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("connect failed", zap.Error(err))
	}
	defer store.Close()

	if err := store.Migrate(ctx, cfg.Migrations); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	if err := store.VerifyActivityHierarchy(ctx); err != nil {
		logger.Fatal("hierarchy schema verification failed", zap.Error(err))
	}
	logger.Info("Migrations applied, activity hierarchy schema verified")
}
