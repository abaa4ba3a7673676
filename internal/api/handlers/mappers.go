package handlers

import (
	"fmt"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/domain"
)

func toAddressInput(in dto.AddressInput) domain.AddressInput {
	return domain.AddressInput{
		Raw:     in.Address,
		City:    in.City,
		State:   in.State,
		Pincode: in.Pincode,
	}
}

func toScoredAddressResponse(s domain.ScoredAddress) dto.ScoredAddressResponse {
	a := s.Address
	return dto.ScoredAddressResponse{
		Address: dto.AddressResponse{
			Raw:            a.Raw,
			BuildingNumber: a.BuildingNumber,
			Street:         a.Street,
			City:           a.City,
			State:          a.State,
			Pincode:        a.Pincode,
			Standardized:   a.Standardized,
		},
		Confidence: dto.ConfidenceResponse{
			Score:       s.Assessment.Score,
			Level:       string(s.Assessment.Level),
			Issues:      nonNil(s.Assessment.Issues),
			Suggestions: nonNil(s.Assessment.Suggestions),
		},
	}
}

func toCandidateResponse(c domain.PostOfficeCandidate) dto.CandidateResponse {
	factors := make([]dto.FactorResponse, 0, len(c.Reasoning.Factors))
	for _, f := range c.Reasoning.Factors {
		factors = append(factors, dto.FactorResponse{
			Name:        f.Name,
			Score:       f.Score,
			Description: f.Description,
		})
	}

	return dto.CandidateResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		BranchCode:            c.BranchCode,
		Address:               c.Address,
		Pincode:               c.Pincode,
		DistanceFromSender:    fmt.Sprintf("%.1f km", c.DistanceFromSenderKm),
		EstimatedHandlingTime: c.EstimatedHandlingTime,
		WorkloadScore:         c.WorkloadScore,
		DeliverySuccessRate:   c.DeliverySuccessRate,
		AvgDeliveryTime:       c.AvgDeliveryTime,
		OperatingHours:        c.OperatingHours,
		Contact:               c.Contact,
		AIScore:               c.AIScore,
		Reasoning: dto.ReasoningResponse{
			Primary: c.Reasoning.Primary,
			Factors: factors,
		},
		EstimatedDelivery: dto.EstimatedDeliveryResponse{
			Date:       c.EstimatedDelivery.Date,
			Confidence: c.EstimatedDelivery.Confidence,
			Range:      c.EstimatedDelivery.Range,
		},
	}
}

func toParcelResponse(p *domain.AssignedParcel) dto.ParcelResponse {
	return dto.ParcelResponse{
		TrackingID:  p.TrackingID,
		Sender:      p.Sender,
		Recipient:   p.Recipient,
		Destination: p.Destination,
		Status:      string(p.Status),
		PostOffice:  p.PostOffice,
		DelayRisk:   string(p.DelayRisk),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toParcelStatusResponse(st *domain.ParcelStatus) dto.ParcelStatusResponse {
	timeline := make([]dto.TimelineEventResponse, 0, len(st.Timeline))
	for _, e := range st.Timeline {
		timeline = append(timeline, dto.TimelineEventResponse{
			Status:    string(e.Status),
			Location:  e.Location,
			Timestamp: e.Timestamp,
		})
	}

	return dto.ParcelStatusResponse{
		TrackingID:        st.TrackingID,
		CurrentStatus:     string(st.CurrentStatus),
		StatusDescription: st.StatusDescription,
		ETA: dto.ETAResponse{
			Date:       st.ETA.Date,
			Time:       st.ETA.Time,
			Confidence: st.ETA.Confidence,
		},
		DelayRisk: dto.DelayRiskResponse{
			Level:   string(st.DelayRisk.Level),
			Reason:  st.DelayRisk.Reason,
			Factors: nonNil(st.DelayRisk.Factors),
		},
		AIInsights: dto.AIInsightsResponse{
			PredictedNextLocation: st.AIInsights.PredictedNextLocation,
			PredictedDeliveryDate: st.AIInsights.PredictedDeliveryDate,
			AbnormalStops:         nonNil(st.AIInsights.AbnormalStops),
			SuggestedActions:      nonNil(st.AIInsights.SuggestedActions),
		},
		Timeline: timeline,
		ParcelDetails: dto.ParcelDetailsResponse{
			Weight:     st.ParcelDetails.Weight,
			Dimensions: st.ParcelDetails.Dimensions,
			Sender:     st.ParcelDetails.Sender,
			Recipient:  st.ParcelDetails.Recipient,
		},
		CurrentLocation: dto.LocationResponse{
			Facility: st.CurrentLocation.Facility,
			Address:  st.CurrentLocation.Address,
			Lat:      st.CurrentLocation.Lat,
			Lng:      st.CurrentLocation.Lng,
		},
		Destination: dto.DestinationResponse{
			Street:  st.Destination.Street,
			City:    st.Destination.City,
			State:   st.Destination.State,
			Pincode: st.Destination.Pincode,
			Lat:     st.Destination.Lat,
			Lng:     st.Destination.Lng,
		},
		RemainingDistanceKm: st.RemainingDistanceKm,
		LastUpdated:         st.LastUpdated,
	}
}

// nonNil keeps empty lists as [] rather than null in responses.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
