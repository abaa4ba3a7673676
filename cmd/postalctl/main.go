package main

import (
	"fmt"
	"os"
	"parcel-tracking-service/internal/adapters/prediction"
	"parcel-tracking-service/internal/adapters/randsrc"
	"parcel-tracking-service/internal/config"
	"parcel-tracking-service/internal/platform/latency"
	"parcel-tracking-service/internal/platform/logger"
	"parcel-tracking-service/internal/ports"
	"parcel-tracking-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"
)

var (
	seed     int64
	delays   bool
	modelURL string

	rootCmd = &cobra.Command{
		Use:   "postalctl",
		Short: "Run the parcel simulations from the terminal",
		Long: `postalctl runs the address scorer, post office recommender, parcel
status generator and ETA predictor locally, without the HTTP server.

Simulated service delays are skipped unless --delays is given. Pass --seed
to make the fabricated values repeatable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			_, _, err := logger.Init(config.Get("ENV", "development"))
			return err
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().BoolVar(&delays, "delays", false, "apply the configured simulated delays")
	rootCmd.PersistentFlags().StringVar(&modelURL, "model-url", "", "ETA model base url (empty always uses the fallback)")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(predictCmd)
}

// app holds the services a command runs against. It is rebuilt per
// invocation from the persistent flags and the environment.
type app struct {
	cfg   config.Config
	rng   ports.RandomSource
	clock clockz.Clock
}

func newApp() *app {
	return &app{
		cfg:   config.Load(),
		rng:   randsrc.New(seed),
		clock: clockz.RealClock,
	}
}

func (a *app) latency(d func(config.Config) ports.Latency) ports.Latency {
	if !delays {
		return latency.None()
	}
	return d(a.cfg)
}

func (a *app) booking() *services.BookingService {
	recommender := services.NewPostOfficeRecommender(a.rng, a.clock, a.latency(func(c config.Config) ports.Latency {
		return latency.New(a.clock, c.RecommendLatency)
	}))
	return services.NewBookingService(recommender, nil, a.rng, a.clock, a.latency(func(c config.Config) ports.Latency {
		return latency.New(a.clock, c.AddressLatency)
	}))
}

func (a *app) tracker() *services.ParcelStatusGenerator {
	return services.NewParcelStatusGenerator(a.rng, a.clock,
		a.latency(func(c config.Config) ports.Latency { return latency.New(a.clock, c.TrackingLatency) }),
		nil,
		services.TrackingOptions{DelayProbability: a.cfg.DelayProbability})
}

func (a *app) predictor() (*services.ETAPredictor, error) {
	var client ports.PredictionClient
	if modelURL != "" {
		c, err := prediction.NewHTTPClient(modelURL, prediction.Options{
			Timeout:     a.cfg.PredictionTimeout,
			MaxAttempts: a.cfg.PredictionAttempts,
		})
		if err != nil {
			return nil, err
		}
		client = c
	}
	fallback := a.latency(func(c config.Config) ports.Latency { return latency.New(a.clock, c.PredictionFallback) })
	return services.NewETAPredictor(client, a.rng, a.clock, fallback, a.cfg.AverageSpeedKmh), nil
}
