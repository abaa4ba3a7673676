package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// HTTPRequestsTotal counts served requests by route template and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcel",
		Subsystem: "api",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, labeled by route and status.",
	}, []string{"route", "status"})

	// OperationDuration is the wall time of timed service/adapter operations.
	OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "parcel",
		Subsystem: "engine",
		Name:      "operation_duration_seconds",
		Help:      "Duration of timed operations, including simulated latency.",
		Buckets:   []float64{0.005, 0.05, 0.25, 0.5, 1, 2, 3, 5, 10},
	}, []string{"op"})

	// PredictionsTotal counts ETA predictions by where the numbers came from.
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcel",
		Subsystem: "engine",
		Name:      "eta_predictions_total",
		Help:      "ETA predictions served, labeled by source (model or fallback).",
	}, []string{"source"})

	// ParcelStatusTotal counts generated parcel statuses by current status.
	ParcelStatusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcel",
		Subsystem: "engine",
		Name:      "parcel_status_generated_total",
		Help:      "Parcel statuses generated by the tracking simulator, labeled by status.",
	}, []string{"status"})
)

// MustRegister registers all collectors with the default registry once.
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			OperationDuration,
			PredictionsTotal,
			ParcelStatusTotal,
		)
	})
}
