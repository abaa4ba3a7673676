package services

import (
	"context"
	"parcel-tracking-service/internal/adapters/randsrc"
	"parcel-tracking-service/internal/adapters/repositories"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/latency"
	"regexp"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func newBookingService(rng *randsrc.Sequence, repo *repositories.MemoryParcelRepository) *BookingService {
	clock := clockz.NewFakeClock()
	rec := NewPostOfficeRecommender(rng, clock, latency.None())
	return NewBookingService(rec, repo, rng, clock, latency.None())
}

func TestRecommendScoresBothAddressesAndRecommends(t *testing.T) {
	svc := newBookingService(randsrc.NewSequence(0.5), repositories.NewMemoryParcelRepository(nil))

	q, err := svc.Recommend(context.Background(), QuoteRequest{
		Sender: domain.AddressInput{
			Raw: "123 MG Road", City: "Bangalore", State: "Karnataka", Pincode: "560001",
		},
		Receiver: domain.AddressInput{
			Raw: "45 Anna Salai Road", City: "Chennai", State: "Tamil Nadu", Pincode: "600002",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Sender.Assessment.Score != 100 || q.Receiver.Assessment.Score != 100 {
		t.Fatalf("scores = %d/%d, want 100/100", q.Sender.Assessment.Score, q.Receiver.Assessment.Score)
	}
	if q.Recommendation == nil {
		t.Fatal("missing recommendation")
	}
	if q.Recommendation.Recommended.Pincode != "560001" {
		t.Fatalf("branch pincode = %q, want sender's", q.Recommendation.Recommended.Pincode)
	}
	for _, alt := range q.Recommendation.Alternatives {
		if alt.AIScore > q.Recommendation.Recommended.AIScore {
			t.Fatalf("alternative %s outscores the recommendation", alt.ID)
		}
	}
}

func TestRecommendRequiresBothAddresses(t *testing.T) {
	svc := newBookingService(randsrc.NewSequence(0.5), repositories.NewMemoryParcelRepository(nil))

	_, err := svc.Recommend(context.Background(), QuoteRequest{
		Sender: domain.AddressInput{Raw: "123 MG Road"},
	})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestConfirmCreatesBookedParcel(t *testing.T) {
	repo := repositories.NewMemoryParcelRepository(nil)
	svc := newBookingService(randsrc.NewSequence(0.5), repo)

	p, err := svc.Confirm(context.Background(), BookingRequest{
		SenderName:    "Asha Rao",
		RecipientName: "Vikram Iyer",
		Receiver:      domain.AddressInput{Raw: "45 Anna Salai Road", City: "Chennai", State: "Tamil Nadu"},
		PostOffice:    "Bangalore Central Post Office",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !regexp.MustCompile(`^TRK[A-Z0-9]{9}$`).MatchString(p.TrackingID) {
		t.Fatalf("tracking id = %q, want TRK + 9 alphanumerics", p.TrackingID)
	}
	if p.Status != domain.StatusBooked {
		t.Fatalf("status = %q, want Booked", p.Status)
	}
	if p.Destination != "Chennai, Tamil Nadu" {
		t.Fatalf("destination = %q", p.Destination)
	}

	stored, err := repo.GetParcel(context.Background(), p.TrackingID)
	if err != nil || stored == nil {
		t.Fatalf("parcel not stored: %v", err)
	}
}

func TestConfirmSkipsTakenTrackingIDs(t *testing.T) {
	repo := repositories.NewMemoryParcelRepository(nil, &domain.AssignedParcel{TrackingID: "TRKSSSSSSSSS"})
	rng := randsrc.NewSequence(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	svc := newBookingService(rng, repo)

	p, err := svc.Confirm(context.Background(), BookingRequest{
		SenderName:    "A",
		RecipientName: "B",
		Receiver:      domain.AddressInput{Raw: "somewhere"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TrackingID != "TRKAAAAAAAAA" {
		t.Fatalf("tracking id = %q, want TRKAAAAAAAAA", p.TrackingID)
	}
	if p.Destination != "somewhere" {
		t.Fatalf("destination = %q, want raw address", p.Destination)
	}
}

func TestConfirmValidation(t *testing.T) {
	svc := newBookingService(randsrc.NewSequence(0.5), repositories.NewMemoryParcelRepository(nil))

	cases := map[string]BookingRequest{
		"no sender":   {RecipientName: "B", Receiver: domain.AddressInput{Raw: "x"}},
		"no receiver": {SenderName: "A", RecipientName: "B"},
	}
	for name, req := range cases {
		if _, err := svc.Confirm(context.Background(), req); !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("%s: err = %v, want validation error", name, err)
		}
	}
}

func TestScoreHonorsCancellation(t *testing.T) {
	clock := clockz.NewFakeClock()
	svc := NewBookingService(nil, nil, randsrc.NewSequence(0.5), clock, latency.New(clock, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Score(ctx, domain.AddressInput{Raw: "1 Road"}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
