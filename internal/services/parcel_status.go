package services

import (
	"context"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/zoobzio/clockz"
)

// TrackingPolicy decides what happens when a tracking id is not on the
// parcel board.
type TrackingPolicy string

const (
	// PolicyAcceptAny simulates a status for every syntactically valid id.
	PolicyAcceptAny TrackingPolicy = "accept_any"
	// PolicyRequireKnown reports NotFound for ids the board does not hold.
	PolicyRequireKnown TrackingPolicy = "require_known"
)

func ParseTrackingPolicy(s string) TrackingPolicy {
	if TrackingPolicy(strings.ToLower(strings.TrimSpace(s))) == PolicyRequireKnown {
		return PolicyRequireKnown
	}
	return PolicyAcceptAny
}

const (
	DefaultDelayProbability = 0.3
	earthRadiusKm           = 6371.0088
)

var (
	hubFacility = domain.Facility{
		Facility: "Central Hub",
		Address:  "123 Logistics Way, City A",
		Lat:      12.9716,
		Lng:      77.5946,
	}
	demoDestination = domain.Destination{
		Street:  "456 Delivery Ave",
		City:    "City D",
		State:   "State E",
		Pincode: "654321",
		Lat:     13.0827,
		Lng:     80.2707,
	}
)

type TrackingOptions struct {
	DelayProbability float64
	Policy           TrackingPolicy
}

// ParcelStatusGenerator simulates the journey of a parcel. Two calls for the
// same id may disagree; the output is not persisted.
type ParcelStatusGenerator struct {
	rng     ports.RandomSource
	clock   clockz.Clock
	latency ports.Latency
	parcels ports.ParcelRepository
	opts    TrackingOptions
}

// NewParcelStatusGenerator builds a generator. parcels may be nil, in which
// case the require_known policy rejects every id.
func NewParcelStatusGenerator(
	rng ports.RandomSource,
	clock clockz.Clock,
	latency ports.Latency,
	parcels ports.ParcelRepository,
	opts TrackingOptions,
) *ParcelStatusGenerator {
	if clock == nil {
		clock = clockz.RealClock
	}
	if opts.DelayProbability < 0 || opts.DelayProbability > 1 {
		opts.DelayProbability = DefaultDelayProbability
	}
	if opts.Policy == "" {
		opts.Policy = PolicyAcceptAny
	}
	return &ParcelStatusGenerator{
		rng:     rng,
		clock:   clock,
		latency: latency,
		parcels: parcels,
		opts:    opts,
	}
}

func (g *ParcelStatusGenerator) Status(ctx context.Context, trackingID string) (_ *domain.ParcelStatus, err error) {
	defer obs.Time(ctx, "tracking.Status")(&err)

	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, domain.ValidationError("track parcel", "tracking id is required")
	}

	known, err := g.lookup(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if known == nil && g.opts.Policy == PolicyRequireKnown {
		return nil, domain.NotFoundError("track parcel", fmt.Sprintf("no parcel with tracking id %s", trackingID))
	}

	if g.latency != nil {
		if err := g.latency.Wait(ctx); err != nil {
			return nil, fmt.Errorf("track parcel: %w", err)
		}
	}

	now := g.clock.Now()
	delayed := g.rng.Float64() < g.opts.DelayProbability

	st := &domain.ParcelStatus{
		TrackingID:      trackingID,
		CurrentLocation: hubFacility,
		Destination:     demoDestination,
		ParcelDetails: domain.ParcelDetails{
			Weight:     "2.5 kg",
			Dimensions: "30x20x15 cm",
			Sender:     "John Doe",
			Recipient:  "Jane Smith",
		},
		LastUpdated: "Just now",
	}
	if known != nil {
		st.ParcelDetails.Sender = known.Sender
		st.ParcelDetails.Recipient = known.Recipient
	}

	if delayed {
		st.CurrentStatus = domain.StatusDelayed
		st.StatusDescription = "Package delivery is delayed due to unforeseen circumstances."
		st.ETA = domain.ETA{Date: now.AddDate(0, 0, 4), Time: "2:00 PM", Confidence: 65}
		st.DelayRisk = domain.DelayRisk{
			Level:   domain.RiskHigh,
			Reason:  "Severe weather conditions at transit hub.",
			Factors: []string{"Storm warning", "Route congestion"},
		}
		st.AIInsights = domain.AIInsights{
			AbnormalStops:    []string{"Unscheduled stop at City C due to weather"},
			SuggestedActions: []string{"Contact carrier for expedite options", "Notify recipient of delay"},
		}
	} else {
		st.CurrentStatus = domain.StatusInTransit
		st.StatusDescription = "Package is on its way to the destination facility."
		st.ETA = domain.ETA{Date: now.AddDate(0, 0, 2), Time: "2:00 PM", Confidence: 95}
		st.DelayRisk = domain.DelayRisk{
			Level:   domain.RiskLow,
			Reason:  "Traffic conditions are normal.",
			Factors: []string{"Clear weather", "No road closures"},
		}
		st.AIInsights = domain.AIInsights{
			AbnormalStops:    []string{},
			SuggestedActions: []string{"No action needed", "Monitor for updates"},
		}
	}
	st.AIInsights.PredictedNextLocation = "Regional Sort Facility, City B"
	st.AIInsights.PredictedDeliveryDate = st.ETA.Date

	st.Timeline = []domain.TimelineEvent{
		{Status: domain.StatusBooked, Location: "Local PO, City C", Timestamp: now.Add(-48 * time.Hour)},
		{Status: domain.StatusProcessing, Location: "Regional Facility, City B", Timestamp: now.Add(-24 * time.Hour)},
		{Status: st.CurrentStatus, Location: hubFacility.Facility + ", City A", Timestamp: now},
	}

	st.RemainingDistanceKm = round1(GreatCircleKm(
		st.CurrentLocation.Lat, st.CurrentLocation.Lng,
		st.Destination.Lat, st.Destination.Lng,
	))

	obs.ParcelStatusTotal.WithLabelValues(string(st.CurrentStatus)).Inc()
	return st, nil
}

func (g *ParcelStatusGenerator) lookup(ctx context.Context, trackingID string) (*domain.AssignedParcel, error) {
	if g.parcels == nil {
		return nil, nil
	}
	p, err := g.parcels.GetParcel(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("track parcel: lookup %s: %w", trackingID, err)
	}
	return p, nil
}

// GreatCircleKm is the surface distance between two lat/lng points.
func GreatCircleKm(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusKm
}

// StatusMap renders a status as GeoJSON: the current facility, the
// destination and the remaining leg between them. Coordinates are lng/lat.
func StatusMap(st *domain.ParcelStatus) *geojson.FeatureCollection {
	from := []float64{st.CurrentLocation.Lng, st.CurrentLocation.Lat}
	to := []float64{st.Destination.Lng, st.Destination.Lat}

	current := geojson.NewPointFeature(from)
	current.SetProperty("kind", "current_location")
	current.SetProperty("name", st.CurrentLocation.Facility)
	current.SetProperty("status", string(st.CurrentStatus))

	dest := geojson.NewPointFeature(to)
	dest.SetProperty("kind", "destination")
	dest.SetProperty("name", fmt.Sprintf("%s, %s", st.Destination.Street, st.Destination.City))

	leg := geojson.NewLineStringFeature([][]float64{from, to})
	leg.SetProperty("kind", "remaining_route")
	leg.SetProperty("distance_km", st.RemainingDistanceKm)

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(current)
	fc.AddFeature(dest)
	fc.AddFeature(leg)
	return fc
}
