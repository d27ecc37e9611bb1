package quiz

import (
	"strings"

	"github.com/hihsk/hihsk/internal/models"
)

// TextMatcher decides whether a free-text answer is correct. Grading
// policy for FILL_BLANK/WRITING questions is an external concern, so it
// stays behind this seam.
type TextMatcher interface {
	Match(question models.Question, answerText string) bool
}

// NeverMatch marks every free-text answer incorrect. This mirrors the
// current product behavior: no text-matching policy has been approved.
type NeverMatch struct{}

func (NeverMatch) Match(models.Question, string) bool { return false }

// ExactMatch accepts a free-text answer equal to the question's single
// correct option text, ignoring surrounding whitespace.
type ExactMatch struct{}

func (ExactMatch) Match(q models.Question, answerText string) bool {
	for _, opt := range q.Options {
		if opt.IsCorrect && strings.TrimSpace(answerText) == strings.TrimSpace(opt.OptionText) {
			return true
		}
	}
	return false
}

// Evaluator scores quiz submissions. It has no side effects: persistence
// and unlock propagation belong to the caller.
type Evaluator struct {
	passThreshold float64
	matcher       TextMatcher
}

// New creates an Evaluator. passThreshold is the fraction of total
// points required to complete the lesson.
func New(passThreshold float64, matcher TextMatcher) *Evaluator {
	if matcher == nil {
		matcher = NeverMatch{}
	}
	return &Evaluator{passThreshold: passThreshold, matcher: matcher}
}

// Evaluate grades the answers against the question set. Every question
// produces a QuestionResult; unanswered questions are incorrect and earn
// no points. Answers referencing questions outside the set are skipped
// and reported in the second return value so the caller can warn about
// stale client state.
func (e *Evaluator) Evaluate(questions []models.Question, answers []models.QuizAnswer) (models.QuizResult, []int64) {
	byQuestion := make(map[int64]models.QuizAnswer, len(answers))
	known := make(map[int64]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	var unknown []int64
	for _, a := range answers {
		if !known[a.QuestionID] {
			unknown = append(unknown, a.QuestionID)
			continue
		}
		if _, dup := byQuestion[a.QuestionID]; !dup {
			byQuestion[a.QuestionID] = a
		}
	}

	result := models.QuizResult{
		TotalQuestions:  len(questions),
		QuestionResults: make([]models.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		result.TotalPoints += q.Points

		answer, answered := byQuestion[q.ID]
		correct := answered && e.isCorrect(q, answer)

		qr := models.QuestionResult{
			QuestionID: q.ID,
			IsCorrect:  correct,
		}
		if answered {
			qr.SelectedOptionID = answer.SelectedOptionID
		}
		if correct {
			qr.PointsEarned = q.Points
			result.Score += q.Points
			result.CorrectAnswers++
		} else {
			result.WrongAnswers++
			qr.Explanation = q.Explanation
		}
		result.QuestionResults = append(result.QuestionResults, qr)
	}

	result.LessonCompleted = result.TotalPoints > 0 &&
		float64(result.Score) >= float64(result.TotalPoints)*e.passThreshold
	return result, unknown
}

func (e *Evaluator) isCorrect(q models.Question, answer models.QuizAnswer) bool {
	if q.QuestionType.Choice() {
		if answer.SelectedOptionID == nil {
			return false
		}
		for _, opt := range q.Options {
			if opt.ID == *answer.SelectedOptionID {
				return opt.IsCorrect
			}
		}
		return false
	}
	if answer.AnswerText == "" {
		return false
	}
	return e.matcher.Match(q, answer.AnswerText)
}
