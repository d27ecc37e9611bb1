package api

import (
	"net/http"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
)

func (s *Server) handleCourseLessons(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())

	courseID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lessons, err := s.QuizSvc.CourseLessons(r.Context(), userID, courseID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"lessons": lessons,
	})
}

func (s *Server) handleLessonQuestions(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())

	lessonID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	questions, err := s.QuizSvc.LessonQuestions(r.Context(), userID, lessonID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"questions": questions,
	})
}

type quizSubmitRequest struct {
	Answers []models.QuizAnswer `json:"answers"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := userFromContext(r.Context())

	lessonID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req quizSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizSvc.SubmitQuiz(r.Context(), userID, lessonID, req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("quiz graded: lesson_id=%d, score=%d/%d", lessonID, result.Score, result.TotalPoints)
	respondJSON(w, r, http.StatusOK, result)
}
