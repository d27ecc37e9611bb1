package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/quiz"
)

func choiceQuestion(id int64, points int, correctOptionID int64) models.Question {
	return models.Question{
		ID:           id,
		QuestionType: models.QuestionChooseMeaning,
		Points:       points,
		Explanation:  "because",
		Options: []models.QuestionOption{
			{ID: correctOptionID, QuestionID: id, IsCorrect: true},
			{ID: correctOptionID + 1, QuestionID: id},
			{ID: correctOptionID + 2, QuestionID: id},
		},
	}
}

func pick(questionID, optionID int64) models.QuizAnswer {
	return models.QuizAnswer{QuestionID: questionID, SelectedOptionID: &optionID}
}

func TestEvaluateMixedAnswers(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{
		choiceQuestion(1, 1, 5),
		choiceQuestion(2, 1, 8),
		choiceQuestion(3, 1, 12),
	}
	answers := []models.QuizAnswer{
		pick(1, 5),  // correct
		pick(2, 9),  // wrong
		pick(3, 12), // correct
	}

	result, unknown := e.Evaluate(questions, answers)
	assert.Empty(t, unknown)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.TotalPoints)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.False(t, result.LessonCompleted, "2/3 is below the 0.7 threshold")

	require.Len(t, result.QuestionResults, 3)
	assert.True(t, result.QuestionResults[0].IsCorrect)
	assert.False(t, result.QuestionResults[1].IsCorrect)
	assert.Equal(t, "because", result.QuestionResults[1].Explanation)
	assert.Empty(t, result.QuestionResults[0].Explanation, "correct answers carry no explanation")
}

func TestEvaluateUnansweredQuestionsAreWrong(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{
		choiceQuestion(1, 2, 5),
		choiceQuestion(2, 3, 8),
	}

	result, unknown := e.Evaluate(questions, nil)
	assert.Empty(t, unknown)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 5, result.TotalPoints, "unanswered questions still count toward the total")
	assert.Equal(t, 2, result.WrongAnswers)
	assert.False(t, result.LessonCompleted)
	require.Len(t, result.QuestionResults, 2)
	for _, qr := range result.QuestionResults {
		assert.False(t, qr.IsCorrect)
		assert.Zero(t, qr.PointsEarned)
	}
}

func TestEvaluateIgnoresUnknownQuestions(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{choiceQuestion(1, 1, 5)}
	answers := []models.QuizAnswer{
		pick(1, 5),
		pick(99, 1),
	}

	result, unknown := e.Evaluate(questions, answers)
	assert.Equal(t, []int64{99}, unknown)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.True(t, result.LessonCompleted)
}

func TestEvaluateDuplicateAnswersFirstWins(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{choiceQuestion(1, 1, 5)}
	answers := []models.QuizAnswer{
		pick(1, 6), // wrong, first
		pick(1, 5), // correct, ignored
	}

	result, _ := e.Evaluate(questions, answers)
	assert.Equal(t, 0, result.Score)
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{
		choiceQuestion(1, 7, 5),
		choiceQuestion(2, 3, 8),
	}

	// 7 of 10 points is exactly the threshold.
	result, _ := e.Evaluate(questions, []models.QuizAnswer{pick(1, 5)})
	assert.Equal(t, 7, result.Score)
	assert.True(t, result.LessonCompleted)
}

func TestEvaluateFreeTextDefaultsToIncorrect(t *testing.T) {
	e := quiz.New(0.7, nil)
	questions := []models.Question{{
		ID:           1,
		QuestionType: models.QuestionFillBlank,
		Points:       1,
		Options: []models.QuestionOption{
			{ID: 10, QuestionID: 1, OptionText: "你好", IsCorrect: true},
		},
	}}
	answers := []models.QuizAnswer{{QuestionID: 1, AnswerText: "你好"}}

	result, _ := e.Evaluate(questions, answers)
	assert.Equal(t, 0, result.Score, "no text-matching policy is active by default")
}

func TestEvaluateFreeTextWithExactMatcher(t *testing.T) {
	e := quiz.New(0.7, quiz.ExactMatch{})
	questions := []models.Question{{
		ID:           1,
		QuestionType: models.QuestionWriting,
		Points:       1,
		Options: []models.QuestionOption{
			{ID: 10, QuestionID: 1, OptionText: "你好", IsCorrect: true},
		},
	}}

	result, _ := e.Evaluate(questions, []models.QuizAnswer{{QuestionID: 1, AnswerText: " 你好 "}})
	assert.Equal(t, 1, result.Score)

	result, _ = e.Evaluate(questions, []models.QuizAnswer{{QuestionID: 1, AnswerText: "再见"}})
	assert.Equal(t, 0, result.Score)
}

func TestEvaluateEmptyQuestionSet(t *testing.T) {
	e := quiz.New(0.7, nil)

	result, unknown := e.Evaluate(nil, []models.QuizAnswer{pick(1, 5)})
	assert.Equal(t, []int64{1}, unknown)
	assert.Zero(t, result.TotalPoints)
	assert.False(t, result.LessonCompleted, "an empty quiz can never be completed")
}
