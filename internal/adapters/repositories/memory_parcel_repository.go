package repositories

import (
	"context"
	"errors"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"slices"
	"strings"
	"sync"

	"github.com/zoobzio/clockz"
)

// In-memory implementation of the ParcelRepository port. Safe for concurrent
// use; returned parcels are copies.
type MemoryParcelRepository struct {
	mu      sync.RWMutex
	clock   clockz.Clock
	parcels map[string]*domain.AssignedParcel
}

func NewMemoryParcelRepository(clock clockz.Clock, seed ...*domain.AssignedParcel) *MemoryParcelRepository {
	if clock == nil {
		clock = clockz.RealClock
	}
	r := &MemoryParcelRepository{
		clock:   clock,
		parcels: make(map[string]*domain.AssignedParcel, len(seed)),
	}
	for _, p := range seed {
		cp := *p
		r.parcels[p.TrackingID] = &cp
	}
	return r
}

func (r *MemoryParcelRepository) ListParcels(ctx context.Context) ([]*domain.AssignedParcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.AssignedParcel, 0, len(r.parcels))
	for _, p := range r.parcels {
		cp := *p
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *domain.AssignedParcel) int {
		return strings.Compare(a.TrackingID, b.TrackingID)
	})
	return out, nil
}

func (r *MemoryParcelRepository) GetParcel(ctx context.Context, trackingID string) (*domain.AssignedParcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parcels[trackingID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryParcelRepository) CreateParcel(ctx context.Context, p *domain.AssignedParcel) error {
	if p == nil || p.TrackingID == "" {
		return errors.New("create parcel: tracking id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parcels[p.TrackingID]; exists {
		return fmt.Errorf("create parcel: tracking id %s already exists", p.TrackingID)
	}
	cp := *p
	r.parcels[p.TrackingID] = &cp
	return nil
}

func (r *MemoryParcelRepository) UpdateStatus(ctx context.Context, trackingID string, status domain.ParcelStatusCode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parcels[trackingID]
	if !ok {
		return false, nil
	}
	p.Status = status
	p.UpdatedAt = r.clock.Now()
	return true, nil
}
