package handlers

import (
	"net/http"
	"parcel-tracking-service/internal/services"

	"github.com/gorilla/mux"
)

type TrackingHandler struct {
	Tracker *services.ParcelStatusGenerator
}

func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.Tracker.Status(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toParcelStatusResponse(st))
}

// Map returns the simulated status as a GeoJSON FeatureCollection.
func (h *TrackingHandler) Map(w http.ResponseWriter, r *http.Request) {
	st, err := h.Tracker.Status(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	raw, err := services.StatusMap(st).MarshalJSON()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
