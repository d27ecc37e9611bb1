package api

import (
	"net/http"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
)

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	words, err := s.ReviewSvc.DueWords(r.Context(), userID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"words": words,
		"count": len(words),
	})
}

type rateRequest struct {
	Rating models.Rating `json:"rating"`
}

func (s *Server) handleRateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := userFromContext(r.Context())

	wordID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.ReviewSvc.RateWord(r.Context(), userID, wordID, req.Rating)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("word %d rated %s", wordID, req.Rating)
	respondJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleReviewStats(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())

	stats, err := s.ReviewSvc.Stats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
