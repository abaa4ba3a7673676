package api

import (
	"net/http"
	"parcel-tracking-service/internal/api/handlers"
	"parcel-tracking-service/internal/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// Deps are the services the HTTP layer exposes.
type Deps struct {
	Booking   *services.BookingService
	Tracker   *services.ParcelStatusGenerator
	Predictor *services.ETAPredictor
	Board     *services.TaskBoard
	Sessions  *services.SessionService

	// PredictRPS bounds calls to the prediction endpoint; <= 0 disables it.
	PredictRPS     float64
	AllowedOrigins []string

	// HealthChecks are run by GET /health, keyed by backing service name.
	HealthChecks map[string]handlers.Check
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	bookingHandler := &handlers.BookingHandler{Booking: d.Booking}
	trackingHandler := &handlers.TrackingHandler{Tracker: d.Tracker}
	predictionHandler := &handlers.PredictionHandler{Predictor: d.Predictor}
	parcelHandler := &handlers.ParcelHandler{Board: d.Board}
	sessionHandler := &handlers.SessionHandler{Sessions: d.Sessions}
	healthHandler := &handlers.HealthHandler{Checks: d.HealthChecks}

	predict := predictionHandler.PredictETA
	if d.PredictRPS > 0 {
		burst := max(1, int(d.PredictRPS))
		predict = rateLimit(rate.NewLimiter(rate.Limit(d.PredictRPS), burst), predict)
	}

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/addresses/score", bookingHandler.ScoreAddress).Methods(http.MethodPost)
	r.HandleFunc("/bookings/recommendations", bookingHandler.Recommend).Methods(http.MethodPost)
	r.HandleFunc("/bookings", bookingHandler.Confirm).Methods(http.MethodPost)

	r.HandleFunc("/track/{id}", trackingHandler.Status).Methods(http.MethodGet)
	r.HandleFunc("/track/{id}/map", trackingHandler.Map).Methods(http.MethodGet)

	r.HandleFunc("/predictions/eta", predict).Methods(http.MethodPost)

	r.HandleFunc("/parcels", parcelHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/parcels/summary", parcelHandler.Summary).Methods(http.MethodGet)
	r.HandleFunc("/parcels/{id}/status", parcelHandler.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/parcels/{id}/confirm-delivery", parcelHandler.ConfirmDelivery).Methods(http.MethodPost)
	r.HandleFunc("/agent/tasks", parcelHandler.AgentTasks).Methods(http.MethodGet)

	r.HandleFunc("/sessions", sessionHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{token}", sessionHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{token}", sessionHandler.Logout).Methods(http.MethodDelete)

	r.Use(recordRoute)

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	})

	return requestIDMiddleware(loggingMiddleware(c.Handler(r)))
}
