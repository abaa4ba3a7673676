package prediction

import (
	"context"
	"parcel-tracking-service/internal/ports"
	"sync"
)

// MockClient answers every call with a fixed response or error and records
// the requests it saw.
type MockClient struct {
	Response ports.ETAModelResponse
	Err      error

	mu       sync.Mutex
	requests []ports.ETAModelRequest
}

func (m *MockClient) PredictETA(ctx context.Context, req ports.ETAModelRequest) (ports.ETAModelResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.ETAModelResponse{}, err
	}
	if m.Err != nil {
		return ports.ETAModelResponse{}, m.Err
	}
	return m.Response, nil
}

func (m *MockClient) Requests() []ports.ETAModelRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ports.ETAModelRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
