package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Get(ctx context.Context, id int64) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%d", id)

	var l models.Lesson
	err := r.db.QueryRowContext(ctx, `
SELECT id, course_id, lesson_index, title, description, created_at
FROM lessons
WHERE id = ?
`, id).Scan(&l.ID, &l.CourseID, &l.LessonIndex, &l.Title, &l.Description, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lessons: course_id=%d", courseID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, course_id, lesson_index, title, description, created_at
FROM lessons
WHERE course_id = ?
ORDER BY lesson_index ASC
`, courseID)
	if err != nil {
		log.Error("failed to query lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.LessonIndex, &l.Title, &l.Description, &l.CreatedAt); err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, l)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

func (r *lessonRepository) NextLesson(ctx context.Context, courseID int64, lessonIndex int) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting next lesson: course_id=%d, after_index=%d", courseID, lessonIndex)

	var l models.Lesson
	err := r.db.QueryRowContext(ctx, `
SELECT id, course_id, lesson_index, title, description, created_at
FROM lessons
WHERE course_id = ? AND lesson_index > ?
ORDER BY lesson_index ASC
LIMIT 1
`, courseID, lessonIndex).Scan(&l.ID, &l.CourseID, &l.LessonIndex, &l.Title, &l.Description, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no next lesson after index %d", lessonIndex)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get next lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM lessons
WHERE course_id = ?
`, courseID).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("lesson_repo").Error("failed to count lessons: %v", err)
		return 0, err
	}
	return count, nil
}
