package handlers

import (
	"net/http"
	"parcel-tracking-service/internal/api/dto"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/services"

	"github.com/gorilla/mux"
)

type SessionHandler struct {
	Sessions *services.SessionService
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.Sessions.Login(r.Context(), req.User, req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toSessionResponse(s))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sessions.Lookup(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(s))
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), mux.Vars(r)["token"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(s *domain.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     s.Token,
		User:      s.User,
		Role:      string(s.Role),
		CreatedAt: s.CreatedAt,
	}
}
