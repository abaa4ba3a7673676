package services

import (
	"context"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"strings"

	"github.com/zoobzio/clockz"
	"golang.org/x/sync/errgroup"
)

const (
	trackingPrefix   = "TRK"
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingSuffix   = 9
	maxIDAttempts    = 5
)

type QuoteRequest struct {
	Sender   domain.AddressInput
	Receiver domain.AddressInput
}

// Quote is what the booking screen shows before the user commits: both
// scored addresses and the ranked post offices.
type Quote struct {
	Sender         domain.ScoredAddress
	Receiver       domain.ScoredAddress
	Recommendation *domain.Recommendation
}

type BookingRequest struct {
	SenderName    string
	RecipientName string
	Receiver      domain.AddressInput
	PostOffice    string
}

type BookingService struct {
	recommender    *PostOfficeRecommender
	parcels        ports.ParcelRepository
	rng            ports.RandomSource
	clock          clockz.Clock
	addressLatency ports.Latency
}

func NewBookingService(
	recommender *PostOfficeRecommender,
	parcels ports.ParcelRepository,
	rng ports.RandomSource,
	clock clockz.Clock,
	addressLatency ports.Latency,
) *BookingService {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &BookingService{
		recommender:    recommender,
		parcels:        parcels,
		rng:            rng,
		clock:          clock,
		addressLatency: addressLatency,
	}
}

// Score runs the address scorer behind the simulated service delay.
func (b *BookingService) Score(ctx context.Context, in domain.AddressInput) (_ domain.ScoredAddress, err error) {
	defer obs.Time(ctx, "booking.Score")(&err)

	if b.addressLatency != nil {
		if err := b.addressLatency.Wait(ctx); err != nil {
			return domain.ScoredAddress{}, fmt.Errorf("score address: %w", err)
		}
	}
	return ScoreAddress(in), nil
}

// Recommend scores both addresses concurrently, then asks the recommender for
// post offices near the sender.
func (b *BookingService) Recommend(ctx context.Context, req QuoteRequest) (_ *Quote, err error) {
	defer obs.Time(ctx, "booking.Recommend")(&err)

	if strings.TrimSpace(req.Sender.Raw) == "" || strings.TrimSpace(req.Receiver.Raw) == "" {
		return nil, domain.ValidationError("quote booking", "sender and receiver addresses are required")
	}

	var q Quote
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := b.Score(gctx, req.Sender)
		q.Sender = s
		return err
	})
	g.Go(func() error {
		r, err := b.Score(gctx, req.Receiver)
		q.Receiver = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("quote booking: %w", err)
	}

	rec, err := b.recommender.Recommend(ctx, &q.Sender.Address, &q.Receiver.Address)
	if err != nil {
		return nil, err
	}
	q.Recommendation = rec

	return &q, nil
}

// Confirm issues a tracking id and puts the parcel on the task board as Booked.
func (b *BookingService) Confirm(ctx context.Context, req BookingRequest) (_ *domain.AssignedParcel, err error) {
	defer obs.Time(ctx, "booking.Confirm")(&err)

	const op = "book parcel"

	sender := strings.TrimSpace(req.SenderName)
	recipient := strings.TrimSpace(req.RecipientName)
	if sender == "" || recipient == "" {
		return nil, domain.ValidationError(op, "sender and recipient names are required")
	}
	if strings.TrimSpace(req.Receiver.Raw) == "" {
		return nil, domain.ValidationError(op, "receiver address is required")
	}

	id, err := b.uniqueTrackingID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := b.clock.Now()
	p := &domain.AssignedParcel{
		TrackingID:  id,
		Sender:      sender,
		Recipient:   recipient,
		Destination: destinationLabel(ScoreAddress(req.Receiver).Address),
		Status:      domain.StatusBooked,
		PostOffice:  strings.TrimSpace(req.PostOffice),
		DelayRisk:   domain.RiskLow,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.parcels.CreateParcel(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (b *BookingService) uniqueTrackingID(ctx context.Context) (string, error) {
	for range maxIDAttempts {
		id := NewTrackingID(b.rng)
		existing, err := b.parcels.GetParcel(ctx, id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free tracking id after %d attempts", maxIDAttempts)
}

// NewTrackingID returns "TRK" followed by nine uppercase letters or digits.
func NewTrackingID(rng ports.RandomSource) string {
	var sb strings.Builder
	sb.Grow(len(trackingPrefix) + trackingSuffix)
	sb.WriteString(trackingPrefix)
	for range trackingSuffix {
		sb.WriteByte(trackingAlphabet[rng.IntN(len(trackingAlphabet))])
	}
	return sb.String()
}

func destinationLabel(a domain.Address) string {
	parts := make([]string, 0, 2)
	for _, c := range []string{a.City, a.State} {
		if a.Has(c) {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return a.Raw
	}
	return strings.Join(parts, ", ")
}
