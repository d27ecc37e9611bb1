package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/services"
	"github.com/hihsk/hihsk/internal/srs"
	"github.com/hihsk/hihsk/internal/testutil/mocks"
)

func newReviewService(progressRepo *mocks.MockProgressRepository, wordRepo *mocks.MockWordRepository) services.ReviewService {
	return services.NewReviewService(progressRepo, wordRepo, srs.New(srs.DefaultPolicy()))
}

func TestRateWordNewWord(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	wordRepo := new(mocks.MockWordRepository)
	svc := newReviewService(progressRepo, wordRepo)
	ctx := context.Background()

	wordRepo.On("Get", ctx, int64(7)).Return(&models.Word{ID: 7, Character: "好"}, nil)
	progressRepo.On("Get", ctx, "u1", int64(7)).Return(nil, nil)
	progressRepo.On("Upsert", ctx, mock.MatchedBy(func(p models.WordProgress) bool {
		return p.UserID == "u1" && p.WordID == 7 &&
			p.ReviewCount == 1 && p.CorrectCount == 1 &&
			p.Status == models.StatusLearning
	})).Return(&models.WordProgress{ID: 1, UserID: "u1", WordID: 7, Status: models.StatusLearning, ReviewCount: 1, CorrectCount: 1}, nil)
	progressRepo.On("InsertReviewHistory", ctx, "u1", int64(7), models.RatingEasy).Return(nil)

	progress, err := svc.RateWord(ctx, "u1", 7, models.RatingEasy)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLearning, progress.Status)
	progressRepo.AssertExpectations(t)
	wordRepo.AssertExpectations(t)
}

func TestRateWordUnknownWord(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	wordRepo := new(mocks.MockWordRepository)
	svc := newReviewService(progressRepo, wordRepo)
	ctx := context.Background()

	wordRepo.On("Get", ctx, int64(404)).Return(nil, nil)

	_, err := svc.RateWord(ctx, "u1", 404, models.RatingEasy)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Code: errors.ErrCodeNotFound})
}

func TestRateWordInvalidRating(t *testing.T) {
	svc := newReviewService(new(mocks.MockProgressRepository), new(mocks.MockWordRepository))

	_, err := svc.RateWord(context.Background(), "u1", 7, models.Rating("medium"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Code: errors.ErrCodeInvalidRating})
}

func TestRateWordPersistFailure(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	wordRepo := new(mocks.MockWordRepository)
	svc := newReviewService(progressRepo, wordRepo)
	ctx := context.Background()

	wordRepo.On("Get", ctx, int64(7)).Return(&models.Word{ID: 7}, nil)
	progressRepo.On("Get", ctx, "u1", int64(7)).Return(nil, nil)
	progressRepo.On("Upsert", ctx, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.RateWord(ctx, "u1", 7, models.RatingEasy)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Code: errors.ErrCodePersistenceFailure})
}

func TestRateWordHistoryFailureIsNonFatal(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	wordRepo := new(mocks.MockWordRepository)
	svc := newReviewService(progressRepo, wordRepo)
	ctx := context.Background()

	wordRepo.On("Get", ctx, int64(7)).Return(&models.Word{ID: 7}, nil)
	progressRepo.On("Get", ctx, "u1", int64(7)).Return(nil, nil)
	progressRepo.On("Upsert", ctx, mock.Anything).
		Return(&models.WordProgress{UserID: "u1", WordID: 7, ReviewCount: 1, CorrectCount: 1}, nil)
	progressRepo.On("InsertReviewHistory", ctx, "u1", int64(7), models.RatingEasy).Return(assert.AnError)

	_, err := svc.RateWord(ctx, "u1", 7, models.RatingEasy)
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := newReviewService(progressRepo, new(mocks.MockWordRepository))
	ctx := context.Background()

	progressRepo.On("CountByStatus", ctx, "u1", models.StatusNew).Return(4, nil)
	progressRepo.On("CountByStatus", ctx, "u1", models.StatusLearning).Return(3, nil)
	progressRepo.On("CountByStatus", ctx, "u1", models.StatusReviewing).Return(2, nil)
	progressRepo.On("CountByStatus", ctx, "u1", models.StatusMastered).Return(1, nil)
	progressRepo.On("CountDue", ctx, "u1", mock.AnythingOfType("time.Time")).Return(5, nil)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalWords)
	assert.Equal(t, 4, stats.NewWords)
	assert.Equal(t, 1, stats.MasteredWords)
	assert.Equal(t, 5, stats.DueToday)
}

func TestDueWords(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := newReviewService(progressRepo, new(mocks.MockWordRepository))
	ctx := context.Background()

	due := []models.DueWord{
		{Word: models.Word{ID: 1, Character: "一"}},
		{Word: models.Word{ID: 2, Character: "二"}},
	}
	progressRepo.On("DueWords", ctx, "u1", mock.AnythingOfType("time.Time"), 10).Return(due, nil)

	words, err := svc.DueWords(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}
