package domain

import "time"

type Priority string

const (
	PriorityNormal  Priority = "Normal"
	PriorityExpress Priority = "Express"
)

// Traffic levels and weather conditions are sent to the prediction model as
// their index in these lists.
var (
	TrafficLevels     = []string{"Low", "Medium", "High", "Very High"}
	WeatherConditions = []string{"Clear", "Rainy", "Stormy", "Foggy", "Snowy"}
)

// Delivery zones, sent as their index.
const (
	ZoneUrban = iota
	ZoneSuburban
	ZoneRural
)

func IndexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

type PredictionRequest struct {
	SourceAddress      string
	DestinationAddress string
	Priority           Priority
	TrafficLevel       string
	WeatherCondition   string
}

type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// Normalize clamps both bounds into [0, 100] and orders them.
func (ci ConfidenceInterval) Normalize() ConfidenceInterval {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}

	lo, hi := clamp(ci.Lower), clamp(ci.Upper)
	if lo > hi {
		lo, hi = hi, lo
	}
	return ConfidenceInterval{Lower: lo, Upper: hi}
}

const (
	PredictionSourceModel    = "model"
	PredictionSourceFallback = "fallback"
)

type ETAPrediction struct {
	SourceAddress      string
	DestinationAddress string
	PredictedETA       time.Time
	EstimatedHours     float64
	DistanceKm         float64
	RiskLevel          string
	ConfidenceInterval ConfidenceInterval
	Explanation        string
	Source             string
}
