package repository

import (
	"context"
	"time"

	"github.com/hihsk/hihsk/internal/models"
)

// ProgressRepository is the progress store: per-user, per-word learning
// state. It owns the canonical copy; callers never cache one across
// sessions.
type ProgressRepository interface {
	Get(ctx context.Context, userID string, wordID int64) (*models.WordProgress, error)
	Upsert(ctx context.Context, progress models.WordProgress) (*models.WordProgress, error)
	DueWords(ctx context.Context, userID string, now time.Time, limit int) ([]models.DueWord, error)
	EnsureForLesson(ctx context.Context, userID string, lessonID int64, now time.Time) error
	CountByStatus(ctx context.Context, userID string, status models.Status) (int, error)
	CountDue(ctx context.Context, userID string, now time.Time) (int, error)
	InsertReviewHistory(ctx context.Context, userID string, wordID int64, rating models.Rating) error
	CountReviewsSince(ctx context.Context, userID string, since time.Time) (total int, correct int, err error)
	UserIDs(ctx context.Context) ([]string, error)
}

// WordRepository handles vocabulary data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	InsertBatch(ctx context.Context, words []models.Word) ([]int64, error)
}

// LessonRepository handles course/lesson data access
type LessonRepository interface {
	Get(ctx context.Context, id int64) (*models.Lesson, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error)
	NextLesson(ctx context.Context, courseID int64, lessonIndex int) (*models.Lesson, error)
	CountByCourse(ctx context.Context, courseID int64) (int, error)
}

// QuestionRepository handles quiz question data access
type QuestionRepository interface {
	QuestionsForLesson(ctx context.Context, lessonID int64) ([]models.Question, error)
}

// ResultRepository persists quiz outcomes and progress rollups.
type ResultRepository interface {
	InsertQuizResult(ctx context.Context, progress models.LessonProgress) (int64, error)
	UpsertLessonStatus(ctx context.Context, userID string, lessonID int64, status string, percent int) error
	UpsertCourseStatus(ctx context.Context, userID string, courseID int64, status string, percent int) error
	LessonStatuses(ctx context.Context, userID string, courseID int64) (map[int64]models.LessonWithStatus, error)
	CompletedLessonCount(ctx context.Context, userID string, courseID int64) (int, error)
	SnapshotDailyStats(ctx context.Context, stats models.DailyStats) error
	DailyStats(ctx context.Context, userID string, from, to time.Time) ([]models.DailyStats, error)
}
