package api

import (
	"net/http"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
)

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	filter := models.WordFilter{
		HSKLevel: queryInt(r, "hsk_level", 0),
		LessonID: int64(queryInt(r, "lesson_id", 0)),
		Search:   r.URL.Query().Get("search"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	words, total, err := s.WordSvc.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("listed %d of %d words", len(words), total)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"words":    words,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordSvc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, word)
}

// handleImportWords accepts a CSV upload (multipart field "file" or the
// raw request body) and queues the import on the worker pool.
func (s *Server) handleImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	source := "upload"
	body := r.Body
	if err := r.ParseMultipartForm(8 << 20); err == nil {
		file, header, err := r.FormFile("file")
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("multipart field 'file' required"))
			return
		}
		defer file.Close()
		body = file
		source = header.Filename
	}

	queued, err := s.WordSvc.ImportCSV(r.Context(), body, source, s.ImportPool)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("word import accepted: source=%s, words=%d", source, queued)
	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"queued": queued,
		"source": source,
	})
}
