package domain

import (
	"strings"
	"time"
)

// AssignedParcel is a row on the staff/agent task board.
type AssignedParcel struct {
	TrackingID  string
	Sender      string
	Recipient   string
	Destination string
	Status      ParcelStatusCode
	PostOffice  string
	DelayRisk   RiskLevel
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Matches reports whether q occurs in the tracking id, sender or recipient.
func (p *AssignedParcel) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.TrackingID), q) ||
		strings.Contains(strings.ToLower(p.Sender), q) ||
		strings.Contains(strings.ToLower(p.Recipient), q)
}

// Agents work parcels that are moving or on the last mile.
func (p *AssignedParcel) IsAgentTask() bool {
	return p.Status == StatusOutForDelivery || p.Status == StatusInTransit
}

type BoardSummary struct {
	Total     int
	Delivered int
	InTransit int
	Delayed   int
}

func Summarize(parcels []*AssignedParcel) BoardSummary {
	s := BoardSummary{Total: len(parcels)}
	for _, p := range parcels {
		switch p.Status {
		case StatusDelivered:
			s.Delivered++
		case StatusInTransit:
			s.InTransit++
		case StatusDelayed:
			s.Delayed++
		}
	}
	return s
}
