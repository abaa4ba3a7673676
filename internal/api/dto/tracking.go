package dto

import "time"

type ETAResponse struct {
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Confidence int       `json:"confidence"`
}

type DelayRiskResponse struct {
	Level   string   `json:"level"`
	Reason  string   `json:"reason"`
	Factors []string `json:"factors"`
}

type AIInsightsResponse struct {
	PredictedNextLocation string    `json:"predictedNextLocation"`
	PredictedDeliveryDate time.Time `json:"predictedDeliveryDate"`
	AbnormalStops         []string  `json:"abnormalStops"`
	SuggestedActions      []string  `json:"suggestedActions"`
}

type TimelineEventResponse struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

type ParcelDetailsResponse struct {
	Weight     string `json:"weight"`
	Dimensions string `json:"dimensions"`
	Sender     string `json:"sender"`
	Recipient  string `json:"recipient"`
}

type LocationResponse struct {
	Facility string  `json:"facility"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type DestinationResponse struct {
	Street  string  `json:"street"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type ParcelStatusResponse struct {
	TrackingID          string                  `json:"trackingId"`
	CurrentStatus       string                  `json:"currentStatus"`
	StatusDescription   string                  `json:"statusDescription"`
	ETA                 ETAResponse             `json:"eta"`
	DelayRisk           DelayRiskResponse       `json:"delayRisk"`
	AIInsights          AIInsightsResponse      `json:"aiInsights"`
	Timeline            []TimelineEventResponse `json:"timeline"`
	ParcelDetails       ParcelDetailsResponse   `json:"parcelDetails"`
	CurrentLocation     LocationResponse        `json:"currentLocation"`
	Destination         DestinationResponse     `json:"destination"`
	RemainingDistanceKm float64                 `json:"remainingDistanceKm"`
	LastUpdated         string                  `json:"lastUpdated"`
}
