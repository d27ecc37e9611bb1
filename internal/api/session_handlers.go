package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hihsk/hihsk/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())

	session, err := s.SessionSvc.Start(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	session, err := s.SessionSvc.Get(r.Context(), userID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

type sessionRateRequest struct {
	WordID int64         `json:"word_id"`
	Rating models.Rating `json:"rating"`
}

func (s *Server) handleSessionRate(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req sessionRateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionSvc.Rate(r.Context(), userID, sessionID, req.WordID, req.Rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleSessionAdvance(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	session, err := s.SessionSvc.Advance(r.Context(), userID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}
