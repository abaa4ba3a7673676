package ports

import (
	"context"
	"parcel-tracking-service/internal/domain"
)

// Port: a boundary for the staff/agent task board.
type ParcelRepository interface {
	// Retrieve all parcels on the board, ordered by tracking id.
	ListParcels(ctx context.Context) ([]*domain.AssignedParcel, error)
	// Retrieve one parcel; (nil, nil) when the id is unknown.
	GetParcel(ctx context.Context, trackingID string) (*domain.AssignedParcel, error)
	// Add a new parcel to the board.
	CreateParcel(ctx context.Context, p *domain.AssignedParcel) error
	// Set the status of an existing parcel; reports false when the id is unknown.
	UpdateStatus(ctx context.Context, trackingID string, status domain.ParcelStatusCode) (bool, error)
}
