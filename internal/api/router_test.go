package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"parcel-tracking-service/internal/adapters/prediction"
	"parcel-tracking-service/internal/adapters/randsrc"
	"parcel-tracking-service/internal/adapters/repositories"
	"parcel-tracking-service/internal/adapters/session"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/api/handlers"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/platform/latency"
	"parcel-tracking-service/internal/services"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

func newTestRouter(t *testing.T, predictRPS float64) http.Handler {
	t.Helper()

	clock := clockz.NewFakeClock()
	rng := randsrc.NewSequence(0.5)
	none := latency.None()

	repo := repositories.NewMemoryParcelRepository(clock,
		&domain.AssignedParcel{TrackingID: "TRK001ABC", Sender: "John Doe", Recipient: "Jane Smith", Status: domain.StatusInTransit},
		&domain.AssignedParcel{TrackingID: "TRK003DEF", Sender: "Mike Brown", Recipient: "Sarah Davis", Status: domain.StatusOutForDelivery},
		&domain.AssignedParcel{TrackingID: "TRK005JKL", Sender: "David Miller", Recipient: "Olivia Taylor", Status: domain.StatusDelivered},
	)
	recommender := services.NewPostOfficeRecommender(rng, clock, none)

	return NewRouter(Deps{
		Booking: services.NewBookingService(recommender, repo, rng, clock, none),
		Tracker: services.NewParcelStatusGenerator(rng, clock, none, repo,
			services.TrackingOptions{DelayProbability: 0.3, Policy: services.PolicyAcceptAny}),
		Predictor: services.NewETAPredictor(&prediction.MockClient{Err: errors.New("offline")},
			rng, clock, none, 40),
		Board:      services.NewTaskBoard(repo, none, "1234"),
		Sessions:   services.NewSessionService(session.NewMemoryStore(time.Hour), clock),
		PredictRPS: predictRPS,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthReportsFailingCheck(t *testing.T) {
	h := NewRouter(Deps{HealthChecks: map[string]handlers.Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}})

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"ok","redis":"unavailable"}}`, rec.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestScoreAddress(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/addresses/score",
		`{"address": "123 MG Road", "city": "Bangalore", "state": "Karnataka", "pincode": "560001"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.ScoredAddressResponse](t, rec)
	assert.Equal(t, 100, res.Confidence.Score)
	assert.Equal(t, "High", res.Confidence.Level)
	assert.Equal(t, []string{}, res.Confidence.Issues)
	assert.Equal(t, "123", res.Address.BuildingNumber)
}

func TestScoreAddressRejectsUnknownFields(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/addresses/score", `{"addr": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/bookings/recommendations", `{
		"sender": {"address": "123 MG Road", "city": "Bangalore", "state": "Karnataka", "pincode": "560001"},
		"receiver": {"address": "45 Anna Salai Road", "city": "Chennai", "state": "Tamil Nadu", "pincode": "600002"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.RecommendationResponse](t, rec)
	assert.Equal(t, "PO001", res.Recommended.ID)
	assert.Equal(t, "3.0 km", res.Recommended.DistanceFromSender)
	require.NotEmpty(t, res.Alternatives)
	for _, alt := range res.Alternatives {
		assert.LessOrEqual(t, alt.AIScore, res.Recommended.AIScore)
	}
}

func TestRecommendationsMissingReceiver(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/bookings/recommendations",
		`{"sender": {"address": "123 MG Road"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "addresses are required")
}

func TestConfirmBookingAppearsOnBoard(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, http.MethodPost, "/bookings", `{
		"senderName": "Asha Rao",
		"recipientName": "Vikram Iyer",
		"receiver": {"address": "45 Anna Salai Road", "city": "Chennai", "state": "Tamil Nadu"},
		"postOffice": "Bangalore Central Post Office"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	booked := decode[dto.ParcelResponse](t, rec)
	assert.True(t, strings.HasPrefix(booked.TrackingID, "TRK"))
	assert.Len(t, booked.TrackingID, 12)
	assert.Equal(t, "Booked", booked.Status)

	rec = do(t, h, http.MethodGet, "/parcels?q="+booked.TrackingID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dto.ListParcelsResponse](t, rec)
	require.Len(t, list.Parcels, 1)
	assert.Equal(t, "Vikram Iyer", list.Parcels[0].Recipient)
}

func TestTrackParcel(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodGet, "/track/TRK123456789", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.ParcelStatusResponse](t, rec)
	assert.Equal(t, "TRK123456789", res.TrackingID)
	assert.Equal(t, "In Transit", res.CurrentStatus)
	assert.Equal(t, "Low", res.DelayRisk.Level)
	require.Len(t, res.Timeline, 3)
	assert.Equal(t, res.CurrentStatus, res.Timeline[2].Status)
	assert.Equal(t, []string{}, res.AIInsights.AbnormalStops)
}

func TestTrackParcelMap(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodGet, "/track/TRK1/map", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 3)
}

func TestPredictETAFallback(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/predictions/eta", `{
		"sourceAddress": "Mumbai GPO",
		"destinationAddress": "Pune Central",
		"priority": "Normal",
		"trafficLevel": "Low",
		"weatherCondition": "Clear"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.PredictionResponse](t, rec)
	assert.Equal(t, "fallback", res.Source)
	assert.Equal(t, "600.00", res.Distance)
	assert.Equal(t, 15.0, res.EstimatedHours)
	assert.Equal(t, "Low", res.RiskLevel)
	assert.Equal(t, 85.0, res.ConfidenceInterval.Lower)
	assert.Equal(t, "Mumbai GPO", res.SourceAddress)
}

func TestPredictETAValidation(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodPost, "/predictions/eta",
		`{"sourceAddress": "A", "destinationAddress": "B", "trafficLevel": "Gridlock"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictETARateLimited(t *testing.T) {
	h := newTestRouter(t, 1)
	body := `{"sourceAddress": "A", "destinationAddress": "B"}`

	first := do(t, h, http.MethodPost, "/predictions/eta", body)
	second := do(t, h, http.MethodPost, "/predictions/eta", body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestBoardEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, http.MethodGet, "/parcels?status=Delivered", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListParcelsResponse](t, rec).Parcels, 1)

	rec = do(t, h, http.MethodGet, "/parcels?status=Lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/agent/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListParcelsResponse](t, rec).Parcels, 2)

	rec = do(t, h, http.MethodGet, "/parcels/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.SummaryResponse{Total: 3, Delivered: 1, InTransit: 1}, decode[dto.SummaryResponse](t, rec))
}

func TestUpdateStatusEndpoint(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, http.MethodPatch, "/parcels/TRK001ABC/status", `{"status": "Delayed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Delayed", decode[dto.ParcelResponse](t, rec).Status)

	rec = do(t, h, http.MethodPatch, "/parcels/TRK404/status", `{"status": "Delayed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPatch, "/parcels/TRK001ABC/status", `{"status": "Misplaced"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmDeliveryEndpoint(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, http.MethodPost, "/parcels/TRK003DEF/confirm-delivery", `{"otp": "0000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid OTP")

	rec = do(t, h, http.MethodPost, "/parcels/TRK003DEF/confirm-delivery", `{"otp": "1234"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Delivered", decode[dto.ParcelResponse](t, rec).Status)
}

func TestSessionEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, http.MethodPost, "/sessions", `{"user": "meera", "role": "staff"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decode[dto.SessionResponse](t, rec)
	require.NotEmpty(t, sess.Token)

	rec = do(t, h, http.MethodGet, "/sessions/"+sess.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", decode[dto.SessionResponse](t, rec).Role)

	rec = do(t, h, http.MethodDelete, "/sessions/"+sess.Token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/"+sess.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodMismatch(t *testing.T) {
	rec := do(t, newTestRouter(t, 0), http.MethodDelete, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnroutedRequestsAreObserved(t *testing.T) {
	h := newTestRouter(t, 0)
	unmatched404 := obs.HTTPRequestsTotal.WithLabelValues("unmatched", "404")
	unmatched405 := obs.HTTPRequestsTotal.WithLabelValues("unmatched", "405")
	tracked := obs.HTTPRequestsTotal.WithLabelValues("/track/{id}", "200")
	before404, before405, beforeTracked := testutil.ToFloat64(unmatched404), testutil.ToFloat64(unmatched405), testutil.ToFloat64(tracked)

	rec := do(t, h, http.MethodGet, "/no-such-route", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodDelete, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/track/TRK1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, before404+1, testutil.ToFloat64(unmatched404))
	assert.Equal(t, before405+1, testutil.ToFloat64(unmatched405))
	assert.Equal(t, beforeTracked+1, testutil.ToFloat64(tracked))
}
