package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

type resultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository implementation
func NewResultRepository(db *sql.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) InsertQuizResult(ctx context.Context, progress models.LessonProgress) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting quiz result: user_id=%s, lesson_id=%d, score=%d/%d",
		progress.UserID, progress.LessonID, progress.Score, progress.TotalPoints)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_lesson_progress (user_id, lesson_id, score, total_points, total_questions, correct_answers, wrong_answers, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, progress.UserID, progress.LessonID, progress.Score, progress.TotalPoints,
		progress.TotalQuestions, progress.CorrectAnswers, progress.WrongAnswers, progress.CompletedAt)
	if err != nil {
		log.Error("failed to insert quiz result: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get quiz result id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *resultRepository) UpsertLessonStatus(ctx context.Context, userID string, lessonID int64, status string, percent int) error {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("upserting lesson status: user_id=%s, lesson_id=%d, status=%s, percent=%d",
		userID, lessonID, status, percent)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_lesson_status (user_id, lesson_id, status, progress_percent, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, lesson_id) DO UPDATE SET
    status = excluded.status,
    progress_percent = excluded.progress_percent,
    updated_at = CURRENT_TIMESTAMP
`, userID, lessonID, status, percent)
	if err != nil {
		log.Error("failed to upsert lesson status: %v", err)
	}
	return err
}

func (r *resultRepository) UpsertCourseStatus(ctx context.Context, userID string, courseID int64, status string, percent int) error {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("upserting course status: user_id=%s, course_id=%d, status=%s, percent=%d",
		userID, courseID, status, percent)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_course_status (user_id, course_id, status, progress_percent, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, course_id) DO UPDATE SET
    status = excluded.status,
    progress_percent = excluded.progress_percent,
    updated_at = CURRENT_TIMESTAMP
`, userID, courseID, status, percent)
	if err != nil {
		log.Error("failed to upsert course status: %v", err)
	}
	return err
}

// LessonStatuses returns every lesson of a course annotated with the
// user's status. Lessons the user never touched come back NotStarted.
func (r *resultRepository) LessonStatuses(ctx context.Context, userID string, courseID int64) (map[int64]models.LessonWithStatus, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("loading lesson statuses: user_id=%s, course_id=%d", userID, courseID)

	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.course_id, l.lesson_index, l.title, l.description, l.created_at,
       COALESCE(s.status, 'NotStarted'), COALESCE(s.progress_percent, 0)
FROM lessons l
LEFT JOIN user_lesson_status s ON s.lesson_id = l.id AND s.user_id = ?
WHERE l.course_id = ?
ORDER BY l.lesson_index ASC
`, userID, courseID)
	if err != nil {
		log.Error("failed to query lesson statuses: %v", err)
		return nil, err
	}
	defer rows.Close()

	statuses := map[int64]models.LessonWithStatus{}
	for rows.Next() {
		var ls models.LessonWithStatus
		if err := rows.Scan(&ls.ID, &ls.CourseID, &ls.LessonIndex, &ls.Title, &ls.Description,
			&ls.CreatedAt, &ls.Status, &ls.ProgressPercent); err != nil {
			log.Error("failed to scan lesson status row: %v", err)
			return nil, err
		}
		statuses[ls.ID] = ls
	}
	return statuses, rows.Err()
}

func (r *resultRepository) CompletedLessonCount(ctx context.Context, userID string, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM user_lesson_status s
JOIN lessons l ON l.id = s.lesson_id
WHERE s.user_id = ? AND l.course_id = ? AND s.status = 'Completed'
`, userID, courseID).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("result_repo").Error("failed to count completed lessons: %v", err)
		return 0, err
	}
	return count, nil
}

// SnapshotDailyStats records one (user, day) row, replacing any earlier
// snapshot for the same day.
func (r *resultRepository) SnapshotDailyStats(ctx context.Context, stats models.DailyStats) error {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("snapshotting daily stats: user_id=%s, day=%s", stats.UserID, stats.Day.Format("2006-01-02"))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_daily_stats (user_id, day, reviews, correct_reviews, mastered_words)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, day) DO UPDATE SET
    reviews = excluded.reviews,
    correct_reviews = excluded.correct_reviews,
    mastered_words = excluded.mastered_words
`, stats.UserID, stats.Day.Format("2006-01-02"), stats.Reviews, stats.CorrectReviews, stats.MasteredWords)
	if err != nil {
		log.Error("failed to snapshot daily stats: %v", err)
	}
	return err
}

func (r *resultRepository) DailyStats(ctx context.Context, userID string, from, to time.Time) ([]models.DailyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("loading daily stats: user_id=%s, from=%s, to=%s",
		userID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, day, reviews, correct_reviews, mastered_words
FROM user_daily_stats
WHERE user_id = ? AND day >= ? AND day <= ?
ORDER BY day ASC
`, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		log.Error("failed to query daily stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyStats
	for rows.Next() {
		var s models.DailyStats
		var day string
		if err := rows.Scan(&s.ID, &s.UserID, &day, &s.Reviews, &s.CorrectReviews, &s.MasteredWords); err != nil {
			log.Error("failed to scan daily stats row: %v", err)
			return nil, err
		}
		if d, err := time.Parse("2006-01-02", day); err == nil {
			s.Day = d
		} else if d, err := time.Parse(time.RFC3339, day); err == nil {
			s.Day = d
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
