package services

import (
	"context"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

const (
	DefaultAverageSpeedKmh = 40.0
	fallbackExplanation    = "Based on historical data, traffic conditions are optimal. " +
		"Weather is clear, suggesting no delays. The route is direct with minimal congestion expected."
)

// ETAPredictor asks the external model for an ETA and falls back to a
// constant-speed estimate when the model cannot answer.
type ETAPredictor struct {
	client   ports.PredictionClient
	rng      ports.RandomSource
	clock    clockz.Clock
	fallback ports.Latency
	speedKmh float64
}

// NewETAPredictor builds a predictor. fallback is the simulated delay
// applied before a fallback answer; client may be nil to always fall back.
func NewETAPredictor(
	client ports.PredictionClient,
	rng ports.RandomSource,
	clock clockz.Clock,
	fallback ports.Latency,
	speedKmh float64,
) *ETAPredictor {
	if clock == nil {
		clock = clockz.RealClock
	}
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	return &ETAPredictor{
		client:   client,
		rng:      rng,
		clock:    clock,
		fallback: fallback,
		speedKmh: speedKmh,
	}
}

// Predict never surfaces a transport failure: any model error, including an
// unreadable ETA, yields a fallback prediction instead.
func (p *ETAPredictor) Predict(ctx context.Context, req domain.PredictionRequest) (_ *domain.ETAPrediction, err error) {
	defer obs.Time(ctx, "eta.Predict")(&err)

	req, features, err := p.features(req)
	if err != nil {
		return nil, err
	}

	out := &domain.ETAPrediction{
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		DistanceKm:         features.Distance,
	}

	if p.fromModel(ctx, features, out) {
		out.Source = domain.PredictionSourceModel
		obs.PredictionsTotal.WithLabelValues(out.Source).Inc()
		return out, nil
	}

	if p.fallback != nil {
		if err := p.fallback.Wait(ctx); err != nil {
			return nil, fmt.Errorf("predict eta: %w", err)
		}
	}

	hours := decimal.NewFromFloat(features.Distance).
		Div(decimal.NewFromFloat(p.speedKmh)).
		Round(2)

	out.EstimatedHours = hours.InexactFloat64()
	out.PredictedETA = p.clock.Now().Add(time.Duration(out.EstimatedHours * float64(time.Hour)))
	out.RiskLevel = string(domain.RiskLow)
	out.ConfidenceInterval = domain.ConfidenceInterval{Lower: 85, Upper: 95}
	out.Explanation = fallbackExplanation
	out.Source = domain.PredictionSourceFallback

	obs.PredictionsTotal.WithLabelValues(out.Source).Inc()
	return out, nil
}

// features validates the request, fills form defaults and draws the
// simulated distance and zone.
func (p *ETAPredictor) features(req domain.PredictionRequest) (domain.PredictionRequest, ports.ETAModelRequest, error) {
	const op = "predict eta"

	req.SourceAddress = strings.TrimSpace(req.SourceAddress)
	req.DestinationAddress = strings.TrimSpace(req.DestinationAddress)
	if req.SourceAddress == "" || req.DestinationAddress == "" {
		return req, ports.ETAModelRequest{}, domain.ValidationError(op, "source and destination addresses are required")
	}

	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if req.TrafficLevel == "" {
		req.TrafficLevel = domain.TrafficLevels[0]
	}
	if req.WeatherCondition == "" {
		req.WeatherCondition = domain.WeatherConditions[0]
	}

	priority := 0
	switch req.Priority {
	case domain.PriorityNormal:
	case domain.PriorityExpress:
		priority = 1
	default:
		return req, ports.ETAModelRequest{}, domain.ValidationError(op, fmt.Sprintf("unknown priority %q", req.Priority))
	}

	traffic := domain.IndexOf(domain.TrafficLevels, req.TrafficLevel)
	if traffic < 0 {
		return req, ports.ETAModelRequest{}, domain.ValidationError(op, fmt.Sprintf("unknown traffic level %q", req.TrafficLevel))
	}
	weather := domain.IndexOf(domain.WeatherConditions, req.WeatherCondition)
	if weather < 0 {
		return req, ports.ETAModelRequest{}, domain.ValidationError(op, fmt.Sprintf("unknown weather condition %q", req.WeatherCondition))
	}

	distance := decimal.NewFromFloat(p.rng.Float64()*800 + 200).Round(2)

	return req, ports.ETAModelRequest{
		Distance:         distance.InexactFloat64(),
		TrafficLevel:     traffic,
		WeatherCondition: weather,
		Priority:         priority,
		Zone:             p.rng.IntN(3),
	}, nil
}

// fromModel fills out from the model's answer and reports whether it could.
func (p *ETAPredictor) fromModel(ctx context.Context, features ports.ETAModelRequest, out *domain.ETAPrediction) bool {
	if p.client == nil {
		return false
	}

	resp, err := p.client.PredictETA(ctx, features)
	if err != nil {
		zap.L().Warn("eta model unavailable, using fallback",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		return false
	}

	eta, err := parseModelETA(resp.PredictedETA)
	if err != nil {
		zap.L().Warn("eta model returned an unreadable eta, using fallback",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("predicted_eta", resp.PredictedETA),
		)
		return false
	}

	hours := resp.EstimatedHours
	if hours <= 0 {
		hours = eta.Sub(p.clock.Now()).Hours()
	}

	risk := strings.TrimSpace(resp.RiskLevel)
	if risk == "" {
		risk = string(domain.RiskLow)
	}

	out.PredictedETA = eta
	out.EstimatedHours = decimal.NewFromFloat(hours).Round(2).InexactFloat64()
	out.RiskLevel = risk
	out.ConfidenceInterval = domain.ConfidenceInterval{
		Lower: resp.ConfidenceInterval.Lower,
		Upper: resp.ConfidenceInterval.Upper,
	}.Normalize()
	out.Explanation = resp.Explanation
	return true
}

// Model timestamps may omit the offset; those are read as UTC.
var modelETALayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseModelETA(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range modelETALayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
