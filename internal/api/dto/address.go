package dto

type AddressInput struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type AddressResponse struct {
	Raw            string `json:"raw"`
	BuildingNumber string `json:"buildingNumber"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	Standardized   string `json:"standardized"`
}

type ConfidenceResponse struct {
	Score       int      `json:"score"`
	Level       string   `json:"level"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

type ScoredAddressResponse struct {
	Address    AddressResponse    `json:"address"`
	Confidence ConfidenceResponse `json:"confidence"`
}
