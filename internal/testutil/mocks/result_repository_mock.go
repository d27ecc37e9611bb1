package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hihsk/hihsk/internal/models"
)

// MockResultRepository is a mock implementation of repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) InsertQuizResult(ctx context.Context, progress models.LessonProgress) (int64, error) {
	args := m.Called(ctx, progress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResultRepository) UpsertLessonStatus(ctx context.Context, userID string, lessonID int64, status string, percent int) error {
	args := m.Called(ctx, userID, lessonID, status, percent)
	return args.Error(0)
}

func (m *MockResultRepository) UpsertCourseStatus(ctx context.Context, userID string, courseID int64, status string, percent int) error {
	args := m.Called(ctx, userID, courseID, status, percent)
	return args.Error(0)
}

func (m *MockResultRepository) LessonStatuses(ctx context.Context, userID string, courseID int64) (map[int64]models.LessonWithStatus, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.LessonWithStatus), args.Error(1)
}

func (m *MockResultRepository) CompletedLessonCount(ctx context.Context, userID string, courseID int64) (int, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockResultRepository) SnapshotDailyStats(ctx context.Context, stats models.DailyStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockResultRepository) DailyStats(ctx context.Context, userID string, from, to time.Time) ([]models.DailyStats, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyStats), args.Error(1)
}
