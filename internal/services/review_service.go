package services

import (
	"context"
	"time"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
	"github.com/hihsk/hihsk/internal/srs"
)

// ReviewService handles spaced-repetition review business logic
type ReviewService interface {
	DueWords(ctx context.Context, userID string, limit int) ([]models.DueWord, error)
	StartLesson(ctx context.Context, userID string, lessonID int64) error
	RateWord(ctx context.Context, userID string, wordID int64, rating models.Rating) (*models.WordProgress, error)
	Stats(ctx context.Context, userID string) (*models.ReviewStats, error)
}

type reviewService struct {
	progressRepo repository.ProgressRepository
	wordRepo     repository.WordRepository
	scheduler    *srs.Scheduler
	now          func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(progressRepo repository.ProgressRepository, wordRepo repository.WordRepository, scheduler *srs.Scheduler) ReviewService {
	return &reviewService{
		progressRepo: progressRepo,
		wordRepo:     wordRepo,
		scheduler:    scheduler,
		now:          time.Now,
	}
}

// DueWords returns the words due for review, oldest due date first.
func (s *reviewService) DueWords(ctx context.Context, userID string, limit int) ([]models.DueWord, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching due words: user_id=%s, limit=%d", userID, limit)

	words, err := s.progressRepo.DueWords(ctx, userID, s.now(), limit)
	if err != nil {
		log.Error("failed to fetch due words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("found %d due words for user %s", len(words), userID)
	return words, nil
}

// StartLesson seeds a New progress record for every word of the lesson
// the user has no record for yet. New words are due immediately.
func (s *reviewService) StartLesson(ctx context.Context, userID string, lessonID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("seeding lesson progress: user_id=%s, lesson_id=%d", userID, lessonID)

	if err := s.progressRepo.EnsureForLesson(ctx, userID, lessonID, s.now()); err != nil {
		log.Error("failed to seed lesson progress: %v", err)
		return errors.NewPersistenceError(err)
	}
	return nil
}

// RateWord applies one rating to one word. The progress is re-read from
// the store first so a stale client copy can never be written back.
func (s *reviewService) RateWord(ctx context.Context, userID string, wordID int64, rating models.Rating) (*models.WordProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("rating word: user_id=%s, word_id=%d, rating=%s", userID, wordID, rating)

	if !rating.Valid() {
		return nil, errors.NewInvalidRatingError(string(rating))
	}

	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	progress, err := s.progressRepo.Get(ctx, userID, wordID)
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	if progress == nil {
		fresh := srs.NewProgress(userID, wordID, now)
		progress = &fresh
	}

	updated, err := s.scheduler.ApplyRating(progress, rating, now)
	if err != nil {
		return nil, err
	}
	updated.UserID = userID
	updated.WordID = wordID

	persisted, err := s.progressRepo.Upsert(ctx, updated)
	if err != nil {
		log.Error("failed to persist progress: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	// History is an audit trail, not part of the review contract.
	if err := s.progressRepo.InsertReviewHistory(ctx, userID, wordID, rating); err != nil {
		log.Warn("failed to record review history: %v", err)
	}

	log.Info("word rated: user_id=%s, word_id=%d, rating=%s, status=%s, next_review=%s",
		userID, wordID, rating, persisted.Status, persisted.NextReviewDate.Format(time.RFC3339))
	return persisted, nil
}

func (s *reviewService) Stats(ctx context.Context, userID string) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing review stats: user_id=%s", userID)

	stats := models.ReviewStats{}
	counts := []struct {
		status models.Status
		dest   *int
	}{
		{models.StatusNew, &stats.NewWords},
		{models.StatusLearning, &stats.LearningWords},
		{models.StatusReviewing, &stats.ReviewingWords},
		{models.StatusMastered, &stats.MasteredWords},
	}
	for _, c := range counts {
		n, err := s.progressRepo.CountByStatus(ctx, userID, c.status)
		if err != nil {
			log.Error("failed to count %s words: %v", c.status, err)
			return nil, errors.NewInternalError(err)
		}
		*c.dest = n
	}
	stats.TotalWords = stats.NewWords + stats.LearningWords + stats.ReviewingWords + stats.MasteredWords

	due, err := s.progressRepo.CountDue(ctx, userID, s.now())
	if err != nil {
		log.Error("failed to count due words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats.DueToday = due

	return &stats, nil
}
