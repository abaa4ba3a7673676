package handlers

import (
	"net/http"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/services"

	"github.com/gorilla/mux"
)

// ParcelHandler exposes the task board used by the admin, staff and agent
// dashboards.
type ParcelHandler struct {
	Board *services.TaskBoard
}

func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parcels, err := h.Board.List(r.Context(), services.BoardFilter{
		Status: q.Get("status"),
		Query:  q.Get("q"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listResponse(parcels))
}

func (h *ParcelHandler) AgentTasks(w http.ResponseWriter, r *http.Request) {
	parcels, err := h.Board.AgentTasks(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listResponse(parcels))
}

func (h *ParcelHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Board.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{
		Total:     s.Total,
		Delivered: s.Delivered,
		InTransit: s.InTransit,
		Delayed:   s.Delayed,
	})
}

func (h *ParcelHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Board.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toParcelResponse(p))
}

func (h *ParcelHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmDeliveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Board.ConfirmDelivery(r.Context(), mux.Vars(r)["id"], req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toParcelResponse(p))
}

func listResponse(parcels []*domain.AssignedParcel) dto.ListParcelsResponse {
	res := dto.ListParcelsResponse{
		Parcels: make([]dto.ParcelResponse, 0, len(parcels)),
	}
	for _, p := range parcels {
		res.Parcels = append(res.Parcels, toParcelResponse(p))
	}
	return res
}
