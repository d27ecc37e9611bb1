package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hihsk/hihsk/internal/models"
)

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) QuestionsForLesson(ctx context.Context, lessonID int64) ([]models.Question, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}
