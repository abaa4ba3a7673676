package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"parcel-tracking-service/internal/domain"
	"strings"
	"time"
)

type ParcelSeed struct {
	TrackingID  string    `json:"tracking_id"`
	Sender      string    `json:"sender"`
	Recipient   string    `json:"recipient"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	PostOffice  string    `json:"post_office"`
	DelayRisk   string    `json:"delay_risk"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoadSeeds reads and validates parcel board rows from a JSON file.
// "Pending" is accepted as an alias for Booked.
func LoadSeeds(jsonPath string) ([]*domain.AssignedParcel, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", jsonPath, err)
	}

	var data []ParcelSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seeds: parse json: %w", err)
	}

	parcels := make([]*domain.AssignedParcel, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.TrackingID)
		if id == "" {
			return nil, fmt.Errorf("load seeds: item at index %d: tracking_id cannot be empty", i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("load seeds: item at index %d: duplicate tracking_id %q", i+1, id)
		}
		seen[id] = struct{}{}

		status, ok := seedStatus(item.Status)
		if !ok {
			return nil, fmt.Errorf("load seeds: item %s: unknown status %q", id, item.Status)
		}

		risk := domain.RiskLevel(strings.TrimSpace(item.DelayRisk))
		if risk == "" {
			risk = domain.RiskLow
		}

		parcels = append(parcels, &domain.AssignedParcel{
			TrackingID:  id,
			Sender:      strings.TrimSpace(item.Sender),
			Recipient:   strings.TrimSpace(item.Recipient),
			Destination: strings.TrimSpace(item.Destination),
			Status:      status,
			PostOffice:  strings.TrimSpace(item.PostOffice),
			DelayRisk:   risk,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.CreatedAt,
		})
	}

	return parcels, nil
}

func seedStatus(s string) (domain.ParcelStatusCode, bool) {
	if strings.EqualFold(strings.TrimSpace(s), "pending") {
		return domain.StatusBooked, true
	}
	return domain.ParseStatus(s)
}
