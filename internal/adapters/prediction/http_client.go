package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"strings"
	"time"

	"github.com/zoobzio/clockz"
)

// HTTPClient implements PredictionClient against the ETA model service's
// POST /predict-eta endpoint. It is safe for concurrent use.
type HTTPClient struct {
	session     *http.Client
	baseURL     string
	maxAttempts int
	backoff     time.Duration
	clock       clockz.Clock
}

type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	// Clock drives retry waits; nil uses the wall clock.
	Clock clockz.Clock
}

func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("prediction base url is empty")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 200 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = clockz.RealClock
	}

	return &HTTPClient{
		session:     &http.Client{Timeout: opts.Timeout},
		baseURL:     baseURL,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		clock:       opts.Clock,
	}, nil
}

func (c *HTTPClient) PredictETA(ctx context.Context, in ports.ETAModelRequest) (_ ports.ETAModelResponse, err error) {
	defer obs.Time(ctx, "prediction.PredictETA")(&err)

	payload, err := json.Marshal(in)
	if err != nil {
		return ports.ETAModelResponse{}, fmt.Errorf("predict eta: marshal request: %w", err)
	}

	url := c.baseURL + "/predict-eta"
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.ETAModelResponse{}, domain.TransportError("predict eta", err)
	}
	defer resp.Body.Close()

	var out ports.ETAModelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.ETAModelResponse{}, domain.TransportError("predict eta", fmt.Errorf("decode response: %w", err))
	}

	return out, nil
}
