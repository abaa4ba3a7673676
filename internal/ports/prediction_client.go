package ports

import "context"

// ETAModelRequest is the feature vector posted to the prediction model.
type ETAModelRequest struct {
	Distance         float64 `json:"distance"`
	TrafficLevel     int     `json:"traffic_level"`
	WeatherCondition int     `json:"weather_condition"`
	Priority         int     `json:"priority"`
	Zone             int     `json:"zone"`
}

type ModelConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ETAModelResponse is the raw model answer; PredictedETA is ISO 8601.
type ETAModelResponse struct {
	PredictedETA       string                  `json:"predicted_eta"`
	EstimatedHours     float64                 `json:"estimated_hours"`
	RiskLevel          string                  `json:"risk_level"`
	ConfidenceInterval ModelConfidenceInterval `json:"confidence_interval"`
	Explanation        string                  `json:"explanation"`
}

// Contract for the external ETA prediction model.
type PredictionClient interface {
	PredictETA(ctx context.Context, req ETAModelRequest) (ETAModelResponse, error)
}
