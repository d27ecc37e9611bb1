package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hihsk/hihsk/internal/models"
)

// MockLessonRepository is a mock implementation of repository.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Get(ctx context.Context, id int64) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) NextLesson(ctx context.Context, courseID int64, lessonIndex int) (*models.Lesson, error) {
	args := m.Called(ctx, courseID, lessonIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}
