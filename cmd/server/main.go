package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"parcel-tracking-service/internal/adapters/prediction"
	"parcel-tracking-service/internal/adapters/randsrc"
	"parcel-tracking-service/internal/adapters/repositories"
	"parcel-tracking-service/internal/adapters/session"
	"parcel-tracking-service/internal/api"
	"parcel-tracking-service/internal/api/handlers"
	"parcel-tracking-service/internal/config"
	"parcel-tracking-service/internal/platform/db"
	"parcel-tracking-service/internal/platform/latency"
	"parcel-tracking-service/internal/platform/logger"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"parcel-tracking-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
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

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs.MustRegister()

	clock := clockz.RealClock
	rng := randsrc.New(cfg.RandomSeed)

	checks := map[string]handlers.Check{}

	parcels, closeRepo, err := openParcels(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeRepo()

	sessions, closeSessions, err := openSessions(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeSessions()

	predictor, err := prediction.NewHTTPClient(cfg.PredictionURL, prediction.Options{
		Timeout:     cfg.PredictionTimeout,
		MaxAttempts: cfg.PredictionAttempts,
	})
	if err != nil {
		return fmt.Errorf("prediction client: %w", err)
	}

	recommender := services.NewPostOfficeRecommender(rng, clock, latency.New(clock, cfg.RecommendLatency))
	router := api.NewRouter(api.Deps{
		Booking: services.NewBookingService(recommender, parcels, rng, clock, latency.New(clock, cfg.AddressLatency)),
		Tracker: services.NewParcelStatusGenerator(rng, clock, latency.New(clock, cfg.TrackingLatency), parcels,
			services.TrackingOptions{
				DelayProbability: cfg.DelayProbability,
				Policy:           services.ParseTrackingPolicy(cfg.TrackingPolicy),
			}),
		Predictor:      services.NewETAPredictor(predictor, rng, clock, latency.New(clock, cfg.PredictionFallback), cfg.AverageSpeedKmh),
		Board:          services.NewTaskBoard(parcels, latency.New(clock, cfg.TaskBoardLatency), cfg.DeliveryOTP),
		Sessions:       services.NewSessionService(sessions, clock),
		PredictRPS:     cfg.PredictRPS,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthChecks:   checks,
	})

	// Write timeout covers the slowest simulated call plus a model round trip.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openParcels uses Postgres when DATABASE_URL is set and the in-memory board
// otherwise.
func openParcels(ctx context.Context, cfg config.Config, log *zap.Logger, checks map[string]handlers.Check) (ports.ParcelRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		seeds, err := repositories.LoadSeeds(cfg.SeedPath)
		if err != nil {
			log.Warn("starting with an empty task board", zap.String("seed_path", cfg.SeedPath), zap.Error(err))
			seeds = nil
		}
		log.Info("task board in memory", zap.Int("parcels", len(seeds)))
		return repositories.NewMemoryParcelRepository(clockz.RealClock, seeds...), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL, db.Pool{MaxOpenConns: cfg.DatabaseMaxConns})
	if err != nil {
		return nil, nil, err
	}
	if err := initAndSeed(ctx, conn, cfg.SeedPath, log); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	log.Info("task board in postgres")
	checks["postgres"] = conn.PingContext
	return repositories.NewSQLParcelRepository(conn, clockz.RealClock), func() { _ = conn.Close() }, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, log *zap.Logger) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	n, err := repositories.SeedFromJSON(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("seeded task board", zap.Int("parcels", n))
	return nil
}

func openSessions(ctx context.Context, cfg config.Config, log *zap.Logger, checks map[string]handlers.Check) (ports.SessionStore, func(), error) {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := session.Dial(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("sessions in redis")
	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}
