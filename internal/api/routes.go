package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(userMiddleware)

		r.Get("/words", s.handleListWords)
		r.Get("/words/{id}", s.handleGetWord)
		r.Post("/words/import", s.handleImportWords)

		r.Route("/review", func(r chi.Router) {
			r.Get("/due", s.handleDueWords)
			r.Post("/words/{id}/rate", s.handleRateWord)
			r.Get("/stats", s.handleReviewStats)

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", s.handleStartSession)
				r.Get("/{id}", s.handleGetSession)
				r.Post("/{id}/rate", s.handleSessionRate)
				r.Post("/{id}/advance", s.handleSessionAdvance)
			})
		})

		r.Get("/courses/{id}/lessons", s.handleCourseLessons)
		r.Get("/lessons/{id}/questions", s.handleLessonQuestions)
		r.Post("/lessons/{id}/quiz", s.handleSubmitQuiz)
	})

	return r
}
