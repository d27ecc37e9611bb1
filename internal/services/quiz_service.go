package services

import (
	"context"
	"time"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/quiz"
	"github.com/hihsk/hihsk/internal/repository"
)

// QuizService handles lesson quiz business logic
type QuizService interface {
	LessonQuestions(ctx context.Context, userID string, lessonID int64) ([]models.Question, error)
	SubmitQuiz(ctx context.Context, userID string, lessonID int64, answers []models.QuizAnswer) (*models.QuizResult, error)
	CourseLessons(ctx context.Context, userID string, courseID int64) ([]models.LessonWithStatus, error)
}

type quizService struct {
	lessonRepo   repository.LessonRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	reviewSvc    ReviewService
	evaluator    *quiz.Evaluator
	now          func() time.Time
}

// NewQuizService creates a new QuizService
func NewQuizService(lessonRepo repository.LessonRepository, questionRepo repository.QuestionRepository, resultRepo repository.ResultRepository, reviewSvc ReviewService, evaluator *quiz.Evaluator) QuizService {
	return &quizService{
		lessonRepo:   lessonRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		reviewSvc:    reviewSvc,
		evaluator:    evaluator,
		now:          time.Now,
	}
}

// LessonQuestions returns the quiz questions for a lesson with the
// correct-answer flags stripped. Fetching the quiz also seeds the
// lesson's vocabulary into the user's review queue.
func (s *quizService) LessonQuestions(ctx context.Context, userID string, lessonID int64) ([]models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading lesson questions: user_id=%s, lesson_id=%d", userID, lessonID)

	lesson, err := s.lessonRepo.Get(ctx, lessonID)
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", lessonID)
	}

	if err := s.reviewSvc.StartLesson(ctx, userID, lessonID); err != nil {
		log.Warn("failed to seed lesson words into review queue: %v", err)
	}

	questions, err := s.questionRepo.QuestionsForLesson(ctx, lessonID)
	if err != nil {
		log.Error("failed to load questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	for i := range questions {
		questions[i].Explanation = ""
		for j := range questions[i].Options {
			questions[i].Options[j].IsCorrect = false
		}
	}
	return questions, nil
}

// SubmitQuiz grades a submission, records the attempt, and rolls the
// outcome up into lesson and course progress.
func (s *quizService) SubmitQuiz(ctx context.Context, userID string, lessonID int64, answers []models.QuizAnswer) (*models.QuizResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting quiz: user_id=%s, lesson_id=%d, answers=%d", userID, lessonID, len(answers))

	lesson, err := s.lessonRepo.Get(ctx, lessonID)
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", lessonID)
	}

	questions, err := s.questionRepo.QuestionsForLesson(ctx, lessonID)
	if err != nil {
		log.Error("failed to load questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(questions) == 0 {
		return nil, errors.NewValidationError("lesson", "lesson has no quiz questions")
	}

	result, unknown := s.evaluator.Evaluate(questions, answers)
	for _, id := range unknown {
		log.Warn("ignoring answer for question %d: not part of lesson %d", id, lessonID)
	}

	attempt := models.LessonProgress{
		UserID:         userID,
		LessonID:       lessonID,
		Score:          result.Score,
		TotalPoints:    result.TotalPoints,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		WrongAnswers:   result.WrongAnswers,
		CompletedAt:    s.now(),
	}
	if _, err := s.resultRepo.InsertQuizResult(ctx, attempt); err != nil {
		log.Error("failed to record quiz attempt: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	status := models.LessonInProgress
	percent := 0
	if result.TotalPoints > 0 {
		percent = result.Score * 100 / result.TotalPoints
	}
	if result.LessonCompleted {
		status = models.LessonCompleted
		percent = 100
	}
	if err := s.resultRepo.UpsertLessonStatus(ctx, userID, lessonID, status, percent); err != nil {
		log.Error("failed to update lesson status: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	if result.LessonCompleted {
		next, err := s.lessonRepo.NextLesson(ctx, lesson.CourseID, lesson.LessonIndex)
		if err != nil {
			log.Error("failed to look up next lesson: %v", err)
		} else if next != nil {
			result.NextLessonUnlocked = true
			result.NextLessonID = &next.ID
		}
	}

	if err := s.updateCourseProgress(ctx, userID, lesson.CourseID); err != nil {
		log.Warn("failed to update course progress: %v", err)
	}

	log.Info("quiz submitted: user_id=%s, lesson_id=%d, score=%d/%d, completed=%v",
		userID, lessonID, result.Score, result.TotalPoints, result.LessonCompleted)
	return &result, nil
}

// CourseLessons lists a course's lessons annotated with status and
// locking: the first lesson is always open, each later lesson opens
// when the one before it is completed.
func (s *quizService) CourseLessons(ctx context.Context, userID string, courseID int64) ([]models.LessonWithStatus, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing course lessons: user_id=%s, course_id=%d", userID, courseID)

	statuses, err := s.resultRepo.LessonStatuses(ctx, userID, courseID)
	if err != nil {
		log.Error("failed to load lesson statuses: %v", err)
		return nil, errors.NewInternalError(err)
	}

	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := make([]models.LessonWithStatus, 0, len(lessons))
	prevCompleted := true
	for _, l := range lessons {
		ls, ok := statuses[l.ID]
		if !ok {
			ls = models.LessonWithStatus{Lesson: l, Status: models.LessonNotStarted}
		}
		ls.Locked = !prevCompleted
		prevCompleted = ls.Status == models.LessonCompleted
		out = append(out, ls)
	}
	return out, nil
}

func (s *quizService) updateCourseProgress(ctx context.Context, userID string, courseID int64) error {
	completed, err := s.resultRepo.CompletedLessonCount(ctx, userID, courseID)
	if err != nil {
		return err
	}
	total, err := s.lessonRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return err
	}

	status := models.LessonInProgress
	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}
	switch {
	case completed == 0:
		status = models.LessonNotStarted
	case total > 0 && completed >= total:
		status = models.LessonCompleted
	}
	return s.resultRepo.UpsertCourseStatus(ctx, userID, courseID, status, percent)
}
