package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hihsk/hihsk/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, wordID int64) (*models.WordProgress, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress models.WordProgress) (*models.WordProgress, error) {
	args := m.Called(ctx, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) DueWords(ctx context.Context, userID string, now time.Time, limit int) ([]models.DueWord, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueWord), args.Error(1)
}

func (m *MockProgressRepository) EnsureForLesson(ctx context.Context, userID string, lessonID int64, now time.Time) error {
	args := m.Called(ctx, userID, lessonID, now)
	return args.Error(0)
}

func (m *MockProgressRepository) CountByStatus(ctx context.Context, userID string, status models.Status) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) CountDue(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) InsertReviewHistory(ctx context.Context, userID string, wordID int64, rating models.Rating) error {
	args := m.Called(ctx, userID, wordID, rating)
	return args.Error(0)
}

func (m *MockProgressRepository) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProgressRepository) UserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
