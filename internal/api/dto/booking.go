package dto

import "time"

type RecommendationRequest struct {
	Sender   AddressInput `json:"sender"`
	Receiver AddressInput `json:"receiver"`
}

type FactorResponse struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

type ReasoningResponse struct {
	Primary string           `json:"primary"`
	Factors []FactorResponse `json:"factors"`
}

type EstimatedDeliveryResponse struct {
	Date       time.Time `json:"date"`
	Confidence string    `json:"confidence"`
	Range      string    `json:"range"`
}

type CandidateResponse struct {
	ID                    string                    `json:"id"`
	Name                  string                    `json:"name"`
	BranchCode            string                    `json:"branchCode"`
	Address               string                    `json:"address"`
	Pincode               string                    `json:"pincode"`
	DistanceFromSender    string                    `json:"distanceFromSender"`
	EstimatedHandlingTime string                    `json:"estimatedHandlingTime"`
	WorkloadScore         int                       `json:"workloadScore"`
	DeliverySuccessRate   float64                   `json:"deliverySuccessRate"`
	AvgDeliveryTime       string                    `json:"avgDeliveryTime"`
	OperatingHours        string                    `json:"operatingHours"`
	Contact               string                    `json:"contact"`
	AIScore               int                       `json:"aiScore"`
	Reasoning             ReasoningResponse         `json:"reasoning"`
	EstimatedDelivery     EstimatedDeliveryResponse `json:"estimatedDelivery"`
}

type RecommendationResponse struct {
	Sender       ScoredAddressResponse `json:"sender"`
	Receiver     ScoredAddressResponse `json:"receiver"`
	Recommended  CandidateResponse     `json:"recommended"`
	Alternatives []CandidateResponse   `json:"alternatives"`
}

type BookingRequest struct {
	SenderName    string       `json:"senderName"`
	RecipientName string       `json:"recipientName"`
	Receiver      AddressInput `json:"receiver"`
	PostOffice    string       `json:"postOffice"`
}
