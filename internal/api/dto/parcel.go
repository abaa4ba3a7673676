package dto

import "time"

type ParcelResponse struct {
	TrackingID  string    `json:"trackingId"`
	Sender      string    `json:"sender"`
	Recipient   string    `json:"recipient"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	PostOffice  string    `json:"postOffice"`
	DelayRisk   string    `json:"delayRisk"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListParcelsResponse struct {
	Parcels []ParcelResponse `json:"parcels"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ConfirmDeliveryRequest struct {
	OTP string `json:"otp"`
}

type SummaryResponse struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	InTransit int `json:"inTransit"`
	Delayed   int `json:"delayed"`
}
