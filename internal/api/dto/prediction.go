package dto

import "time"

type PredictionRequest struct {
	SourceAddress      string `json:"sourceAddress"`
	DestinationAddress string `json:"destinationAddress"`
	Priority           string `json:"priority"`
	TrafficLevel       string `json:"trafficLevel"`
	WeatherCondition   string `json:"weatherCondition"`
}

type ConfidenceIntervalResponse struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictionResponse keeps the model's snake_case fields next to the echoed
// form addresses, as the prediction screen expects.
type PredictionResponse struct {
	PredictedETA       time.Time                  `json:"predicted_eta"`
	EstimatedHours     float64                    `json:"estimated_hours"`
	Distance           string                     `json:"distance"`
	RiskLevel          string                     `json:"risk_level"`
	SourceAddress      string                     `json:"sourceAddress"`
	DestinationAddress string                     `json:"destinationAddress"`
	ConfidenceInterval ConfidenceIntervalResponse `json:"confidence_interval"`
	Explanation        string                     `json:"explanation"`
	Source             string                     `json:"source"`
}
