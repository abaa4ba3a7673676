package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds the runtime settings of the service. Every field has a
// default so a bare `go run ./cmd/server` behaves like the demo front-end.
type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string

	DatabaseURL      string
	DatabaseMaxConns int
	RedisURL         string
	SeedPath         string

	PredictionURL      string
	PredictionTimeout  time.Duration
	PredictionAttempts int
	PredictRPS         float64

	AverageSpeedKmh  float64
	DelayProbability float64
	TrackingPolicy   string
	DeliveryOTP      string
	SessionTTL       time.Duration

	AddressLatency     time.Duration
	RecommendLatency   time.Duration
	TrackingLatency    time.Duration
	PredictionFallback time.Duration
	TaskBoardLatency   time.Duration

	RandomSeed int64
}

// Load reads configuration from the process environment. Callers are
// expected to run godotenv.Load beforehand when a .env file is used.
func Load() Config {
	return Config{
		Env:            Get("ENV", "production"),
		Port:           Get("PORT", "8080"),
		AllowedOrigins: GetList("CORS_ORIGINS", []string{"*"}),

		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabaseMaxConns: GetInt("DATABASE_MAX_CONNS", 10),
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		SeedPath:         Get("SEED_PATH", "data/seeds/parcels.json"),

		PredictionURL:      Get("PREDICTION_URL", "http://localhost:8000"),
		PredictionTimeout:  GetDuration("PREDICTION_TIMEOUT", 10*time.Second),
		PredictionAttempts: GetInt("PREDICTION_ATTEMPTS", 2),
		PredictRPS:         GetFloat("PREDICT_RPS", 5),

		AverageSpeedKmh:  GetFloat("AVERAGE_SPEED_KMH", 40),
		DelayProbability: GetFloat("DELAY_PROBABILITY", 0.3),
		TrackingPolicy:   Get("TRACKING_POLICY", "accept_any"),
		DeliveryOTP:      Get("DELIVERY_OTP", "1234"),
		SessionTTL:       GetDuration("SESSION_TTL", 24*time.Hour),

		AddressLatency:     GetDuration("ADDRESS_LATENCY", time.Second),
		RecommendLatency:   GetDuration("RECOMMEND_LATENCY", 2500*time.Millisecond),
		TrackingLatency:    GetDuration("TRACKING_LATENCY", 1500*time.Millisecond),
		PredictionFallback: GetDuration("PREDICTION_FALLBACK_LATENCY", 1500*time.Millisecond),
		TaskBoardLatency:   GetDuration("TASK_BOARD_LATENCY", time.Second),

		RandomSeed: int64(GetInt("RANDOM_SEED", 0)),
	}
}

// Get returns the value of key or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetList splits a comma separated value, dropping blank entries.
func GetList(key string, fallback []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func GetInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		zap.L().Warn("config: invalid int", zap.String("key", key), zap.String("value", v), zap.Int("fallback", fallback))
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		zap.L().Warn("config: invalid float", zap.String("key", key), zap.String("value", v), zap.Float64("fallback", fallback))
		return fallback
	}
	return f
}

// GetDuration accepts Go duration strings ("1.5s") or plain milliseconds.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	zap.L().Warn("config: invalid duration", zap.String("key", key), zap.String("value", v), zap.Duration("fallback", fallback))
	return fallback
}
