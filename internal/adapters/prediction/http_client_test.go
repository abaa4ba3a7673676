package prediction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/ports"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

func TestHTTPClientPredictETA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict-eta", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ports.ETAModelRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 400.0, req.Distance)
		assert.Equal(t, 2, req.TrafficLevel)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"predicted_eta": "2026-02-12T14:00:00Z",
			"estimated_hours": 9.5,
			"risk_level": "Medium",
			"confidence_interval": {"lower": 80, "upper": 92},
			"explanation": "Heavy traffic on the highway."
		}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/", Options{MaxAttempts: 1})
	require.NoError(t, err)

	resp, err := client.PredictETA(context.Background(), ports.ETAModelRequest{Distance: 400, TrafficLevel: 2})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-12T14:00:00Z", resp.PredictedETA)
	assert.Equal(t, 9.5, resp.EstimatedHours)
	assert.Equal(t, "Medium", resp.RiskLevel)
	assert.Equal(t, 80.0, resp.ConfidenceInterval.Lower)
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"predicted_eta": "2026-02-12T14:00:00Z", "estimated_hours": 4}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, Options{MaxAttempts: 2, Backoff: time.Millisecond})
	require.NoError(t, err)

	resp, err := client.PredictETA(context.Background(), ports.ETAModelRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4.0, resp.EstimatedHours)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientWaitsOnInjectedClock(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"predicted_eta": "2026-02-12T14:00:00Z", "estimated_hours": 3}`))
	}))
	defer srv.Close()

	clock := clockz.NewFakeClock()
	client, err := NewHTTPClient(srv.URL, Options{MaxAttempts: 2, Backoff: time.Hour, Clock: clock})
	require.NoError(t, err)

	done := make(chan struct{})
	var resp ports.ETAModelResponse
	var callErr error
	go func() {
		resp, callErr = client.PredictETA(context.Background(), ports.ETAModelRequest{})
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	clock.Advance(time.Hour)
	clock.BlockUntilReady()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retry did not fire after advancing the clock")
	}
	require.NoError(t, callErr)
	assert.Equal(t, 3.0, resp.EstimatedHours)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetryDelayHonorsRetryAfter(t *testing.T) {
	backoff := 200 * time.Millisecond

	assert.Equal(t, backoff, retryDelay(&httpStatusError{Code: 503}, backoff))
	assert.Equal(t, 2*time.Second, retryDelay(&httpStatusError{Code: 429, RetryAfter: 2 * time.Second}, backoff))
	assert.Equal(t, maxRetryAfter, retryDelay(&httpStatusError{Code: 429, RetryAfter: time.Minute}, backoff))
	assert.Equal(t, backoff, retryDelay(&httpStatusError{Code: 429, RetryAfter: time.Millisecond}, backoff))

	assert.Equal(t, 3*time.Second, parseRetryAfter(" 3 "))
	assert.Zero(t, parseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestHTTPClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad features", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, Options{MaxAttempts: 3, Backoff: time.Millisecond})
	require.NoError(t, err)

	_, err = client.PredictETA(context.Background(), ports.ETAModelRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindTransport))
	assert.Contains(t, err.Error(), "422")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewHTTPClient(url, Options{MaxAttempts: 1, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.PredictETA(context.Background(), ports.ETAModelRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindTransport))
}

func TestNewHTTPClientRequiresURL(t *testing.T) {
	_, err := NewHTTPClient("  ", Options{})
	require.Error(t, err)
}
