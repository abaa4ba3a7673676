package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"parcel-tracking-service/internal/adapters/repositories"
	"parcel-tracking-service/internal/config"
	"parcel-tracking-service/internal/platform/db"
	"parcel-tracking-service/internal/platform/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log, flush, err := logger.Init(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL, db.Pool{MaxOpenConns: cfg.DatabaseMaxConns})
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, cfg.SeedPath, log); err != nil {
		log.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, log *zap.Logger) error {
	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization: %w", err)
	}
	log.Info("schema ready")

	log.Info("seeding database", zap.String("seed_path", seedPath))
	n, err := repositories.SeedFromJSON(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	log.Info("seeding complete", zap.Int("parcels", n))

	return nil
}
