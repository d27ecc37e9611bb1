package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
	"github.com/hihsk/hihsk/internal/worker"
)

// WordService handles vocabulary listing and import business logic
type WordService interface {
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error)
	Get(ctx context.Context, id int64) (*models.Word, error)
	ImportCSV(ctx context.Context, r io.Reader, source string, pool *worker.Pool) (int, error)
}

type wordService struct {
	wordRepo repository.WordRepository
}

// NewWordService creates a new WordService
func NewWordService(wordRepo repository.WordRepository) WordService {
	return &wordService{wordRepo: wordRepo}
}

func (s *wordService) List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing words: hsk_level=%d, lesson_id=%d, search=%q", filter.HSKLevel, filter.LessonID, filter.Search)

	words, err := s.wordRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.wordRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return words, total, nil
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	word, err := s.wordRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

// ImportCSV parses a vocabulary CSV and queues the insert on the worker
// pool. Expected columns: character, pinyin, meaning, hsk_level, and
// optionally lesson_id, audio_url, example_sentence. A header row is
// detected and skipped. Returns the number of words queued.
func (s *wordService) ImportCSV(ctx context.Context, r io.Reader, source string, pool *worker.Pool) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("parsing word import: source=%s", source)

	words, err := parseWordCSV(r)
	if err != nil {
		return 0, errors.NewValidationError("file", err.Error())
	}
	if len(words) == 0 {
		return 0, errors.NewValidationError("file", "no words found")
	}

	pool.Submit(&worker.WordImportJob{
		WordRepo: s.wordRepo,
		Words:    words,
		Source:   source,
	})
	log.Info("queued import of %d words from %s", len(words), source)
	return len(words), nil
}

func parseWordCSV(r io.Reader) ([]models.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var words []models.Word
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line+1, err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "character") {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(record))
		}

		level, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || level < 1 || level > 6 {
			return nil, fmt.Errorf("line %d: invalid hsk_level %q", line, record[3])
		}

		w := models.Word{
			Character: strings.TrimSpace(record[0]),
			Pinyin:    strings.TrimSpace(record[1]),
			Meaning:   strings.TrimSpace(record[2]),
			HSKLevel:  level,
		}
		if w.Character == "" || w.Meaning == "" {
			return nil, fmt.Errorf("line %d: character and meaning are required", line)
		}
		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			lessonID, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid lesson_id %q", line, record[4])
			}
			w.LessonID = &lessonID
		}
		if len(record) > 5 {
			w.AudioURL = strings.TrimSpace(record[5])
		}
		if len(record) > 6 {
			w.ExampleSentence = strings.TrimSpace(record[6])
		}
		words = append(words, w)
	}
	return words, nil
}
