package handlers

import (
	"fmt"
	"net/http"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/services"
)

type PredictionHandler struct {
	Predictor *services.ETAPredictor
}

func (h *PredictionHandler) PredictETA(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Predictor.Predict(r.Context(), domain.PredictionRequest{
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		Priority:           domain.Priority(req.Priority),
		TrafficLevel:       req.TrafficLevel,
		WeatherCondition:   req.WeatherCondition,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PredictionResponse{
		PredictedETA:       p.PredictedETA,
		EstimatedHours:     p.EstimatedHours,
		Distance:           fmt.Sprintf("%.2f", p.DistanceKm),
		RiskLevel:          p.RiskLevel,
		SourceAddress:      p.SourceAddress,
		DestinationAddress: p.DestinationAddress,
		ConfidenceInterval: dto.ConfidenceIntervalResponse{
			Lower: p.ConfidenceInterval.Lower,
			Upper: p.ConfidenceInterval.Upper,
		},
		Explanation: p.Explanation,
		Source:      p.Source,
	})
}
