package domain

import (
	"strings"
	"time"
)

// ParcelStatusCode is the lifecycle state of a parcel.
type ParcelStatusCode string

const (
	StatusBooked              ParcelStatusCode = "Booked"
	StatusProcessing          ParcelStatusCode = "Processing"
	StatusInTransit           ParcelStatusCode = "In Transit"
	StatusOutForDelivery      ParcelStatusCode = "Out for Delivery"
	StatusArrivedAtPostOffice ParcelStatusCode = "Arrived at Post Office"
	StatusDelayed             ParcelStatusCode = "Delayed"
	StatusDelivered           ParcelStatusCode = "Delivered"
	StatusFailedDelivery      ParcelStatusCode = "Failed Delivery"
	StatusReturned            ParcelStatusCode = "Returned"
)

var allStatuses = []ParcelStatusCode{
	StatusBooked,
	StatusProcessing,
	StatusInTransit,
	StatusOutForDelivery,
	StatusArrivedAtPostOffice,
	StatusDelayed,
	StatusDelivered,
	StatusFailedDelivery,
	StatusReturned,
}

func AllStatuses() []ParcelStatusCode {
	out := make([]ParcelStatusCode, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (ParcelStatusCode, bool) {
	s = strings.TrimSpace(s)
	for _, st := range allStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type ETA struct {
	Date       time.Time
	Time       string
	Confidence int
}

type DelayRisk struct {
	Level   RiskLevel
	Reason  string
	Factors []string
}

type AIInsights struct {
	PredictedNextLocation string
	PredictedDeliveryDate time.Time
	AbnormalStops         []string
	SuggestedActions      []string
}

// TimelineEvent is one past state of a parcel. Timelines are stored oldest
// first; the last element is the current state.
type TimelineEvent struct {
	Status    ParcelStatusCode
	Location  string
	Timestamp time.Time
}

type ParcelDetails struct {
	Weight     string
	Dimensions string
	Sender     string
	Recipient  string
}

type Facility struct {
	Facility string
	Address  string
	Lat      float64
	Lng      float64
}

type Destination struct {
	Street  string
	City    string
	State   string
	Pincode string
	Lat     float64
	Lng     float64
}

// ParcelStatus is a simulated snapshot of a parcel's journey.
type ParcelStatus struct {
	TrackingID          string
	CurrentStatus       ParcelStatusCode
	StatusDescription   string
	ETA                 ETA
	DelayRisk           DelayRisk
	AIInsights          AIInsights
	Timeline            []TimelineEvent
	ParcelDetails       ParcelDetails
	CurrentLocation     Facility
	Destination         Destination
	RemainingDistanceKm float64
	LastUpdated         string
}
