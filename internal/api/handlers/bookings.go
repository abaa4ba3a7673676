package handlers

import (
	"net/http"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/services"
)

// BookingHandler serves the booking screens: address scoring, post office
// recommendations and booking confirmation.
type BookingHandler struct {
	Booking *services.BookingService
}

func (h *BookingHandler) ScoreAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressInput
	if !decodeJSON(w, r, &req) {
		return
	}

	scored, err := h.Booking.Score(r.Context(), toAddressInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toScoredAddressResponse(scored))
}

func (h *BookingHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.Booking.Recommend(r.Context(), services.QuoteRequest{
		Sender:   toAddressInput(req.Sender),
		Receiver: toAddressInput(req.Receiver),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.RecommendationResponse{
		Sender:       toScoredAddressResponse(q.Sender),
		Receiver:     toScoredAddressResponse(q.Receiver),
		Recommended:  toCandidateResponse(q.Recommendation.Recommended),
		Alternatives: make([]dto.CandidateResponse, 0, len(q.Recommendation.Alternatives)),
	}
	for _, alt := range q.Recommendation.Alternatives {
		res.Alternatives = append(res.Alternatives, toCandidateResponse(alt))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Booking.Confirm(r.Context(), services.BookingRequest{
		SenderName:    req.SenderName,
		RecipientName: req.RecipientName,
		Receiver:      toAddressInput(req.Receiver),
		PostOffice:    req.PostOffice,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toParcelResponse(p))
}
