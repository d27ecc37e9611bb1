package api

import (
	"database/sql"

	"github.com/hihsk/hihsk/internal/services"
	"github.com/hihsk/hihsk/internal/worker"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	DB         *sql.DB
	WordSvc    services.WordService
	ReviewSvc  services.ReviewService
	SessionSvc services.SessionService
	QuizSvc    services.QuizService
	ImportPool *worker.Pool
}
