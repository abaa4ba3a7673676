package domain

import "time"

// Factor is one named input to a candidate's composite score.
type Factor struct {
	Name        string
	Score       int
	Description string
}

type Reasoning struct {
	Primary string
	Factors []Factor
}

type EstimatedDelivery struct {
	Date       time.Time
	Confidence string
	Range      string
}

// PostOfficeCandidate is a synthetic branch that could accept a parcel.
type PostOfficeCandidate struct {
	ID                    string
	Name                  string
	BranchCode            string
	Address               string
	Pincode               string
	DistanceFromSenderKm  float64
	EstimatedHandlingTime string
	WorkloadScore         int
	DeliverySuccessRate   float64
	AvgDeliveryTime       string
	OperatingHours        string
	Contact               string
	AIScore               int
	Reasoning             Reasoning
	EstimatedDelivery     EstimatedDelivery
}

// Recommendation holds the best candidate and the ranked runners-up.
type Recommendation struct {
	Recommended  PostOfficeCandidate
	Alternatives []PostOfficeCandidate
}
