package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

// HealthHandler answers liveness probes. With no checks it always reports
// ok; otherwise any failing check turns the response into a 503.
type HealthHandler struct {
	Checks  map[string]Check
	Timeout time.Duration
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{Status: "ok"}
	if len(h.Checks) == 0 {
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	res.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			zap.L().Warn("health check failed", zap.String("check", name), zap.Error(err))
			res.Checks[name] = "unavailable"
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}

	writeJSON(w, r, status, res)
}
