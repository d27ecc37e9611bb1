package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID string, wordID int64) (*models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, word_id=%d", userID, wordID)

	var p models.WordProgress
	var lastReviewed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, word_id, status, next_review_date, review_count, correct_count, wrong_count, last_reviewed_at
FROM user_word_progress
WHERE user_id = ? AND word_id = ?
`, userID, wordID).Scan(&p.ID, &p.UserID, &p.WordID, &p.Status, &p.NextReviewDate, &p.ReviewCount, &p.CorrectCount, &p.WrongCount, &lastReviewed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress record: user_id=%s, word_id=%d", userID, wordID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	if lastReviewed.Valid {
		p.LastReviewedAt = &lastReviewed.Time
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.WordProgress) (*models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, word_id=%d, status=%s", p.UserID, p.WordID, p.Status)

	var lastReviewed interface{}
	if p.LastReviewedAt != nil {
		lastReviewed = *p.LastReviewedAt
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_word_progress (user_id, word_id, status, next_review_date, review_count, correct_count, wrong_count, last_reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, word_id) DO UPDATE SET
    status = excluded.status,
    next_review_date = excluded.next_review_date,
    review_count = excluded.review_count,
    correct_count = excluded.correct_count,
    wrong_count = excluded.wrong_count,
    last_reviewed_at = excluded.last_reviewed_at
`, p.UserID, p.WordID, p.Status, p.NextReviewDate, p.ReviewCount, p.CorrectCount, p.WrongCount, lastReviewed)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
		return nil, err
	}
	return r.Get(ctx, p.UserID, p.WordID)
}

func (r *progressRepository) DueWords(ctx context.Context, userID string, now time.Time, limit int) ([]models.DueWord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching due words: user_id=%s, limit=%d", userID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT w.id, w.lesson_id, w.character, w.pinyin, w.meaning, w.audio_url, w.example_sentence, w.hsk_level, w.created_at,
       p.id, p.user_id, p.word_id, p.status, p.next_review_date, p.review_count, p.correct_count, p.wrong_count, p.last_reviewed_at
FROM user_word_progress p
JOIN words w ON w.id = p.word_id
WHERE p.user_id = ? AND p.next_review_date <= ?
ORDER BY p.next_review_date ASC, p.word_id ASC
LIMIT ?
`, userID, now, limit)
	if err != nil {
		log.Error("failed to query due words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var due []models.DueWord
	for rows.Next() {
		var d models.DueWord
		var p models.WordProgress
		var lessonID sql.NullInt64
		var lastReviewed sql.NullTime
		if err := rows.Scan(&d.Word.ID, &lessonID, &d.Character, &d.Pinyin, &d.Meaning, &d.AudioURL, &d.ExampleSentence, &d.HSKLevel, &d.CreatedAt,
			&p.ID, &p.UserID, &p.WordID, &p.Status, &p.NextReviewDate, &p.ReviewCount, &p.CorrectCount, &p.WrongCount, &lastReviewed); err != nil {
			log.Error("failed to scan due word row: %v", err)
			return nil, err
		}
		if lessonID.Valid {
			d.LessonID = &lessonID.Int64
		}
		if lastReviewed.Valid {
			p.LastReviewedAt = &lastReviewed.Time
		}
		d.Progress = &p
		due = append(due, d)
	}
	log.Debug("found %d due words", len(due))
	return due, rows.Err()
}

func (r *progressRepository) EnsureForLesson(ctx context.Context, userID string, lessonID int64, now time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("seeding progress for lesson: user_id=%s, lesson_id=%d", userID, lessonID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_word_progress (user_id, word_id, status, next_review_date)
SELECT ?, w.id, 'New', ?
FROM words w
WHERE w.lesson_id = ?
ON CONFLICT (user_id, word_id) DO NOTHING
`, userID, now, lessonID)
	if err != nil {
		log.Error("failed to seed lesson progress: %v", err)
	}
	return err
}

func (r *progressRepository) CountByStatus(ctx context.Context, userID string, status models.Status) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM user_word_progress
WHERE user_id = ? AND status = ?
`, userID, status).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("progress_repo").Error("failed to count by status: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *progressRepository) CountDue(ctx context.Context, userID string, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM user_word_progress
WHERE user_id = ? AND next_review_date <= ?
`, userID, now).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("progress_repo").Error("failed to count due words: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *progressRepository) InsertReviewHistory(ctx context.Context, userID string, wordID int64, rating models.Rating) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting review history: user_id=%s, word_id=%d, rating=%s", userID, wordID, rating)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (user_id, word_id, rating)
VALUES (?, ?, ?)
`, userID, wordID, rating)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func (r *progressRepository) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var total, correct int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN rating != 'forgot' THEN 1 ELSE 0 END), 0)
FROM review_history
WHERE user_id = ? AND reviewed_at >= ?
`, userID, since).Scan(&total, &correct)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return 0, 0, err
	}
	return total, correct, nil
}

func (r *progressRepository) UserIDs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM user_word_progress`)
	if err != nil {
		log.Error("failed to list user ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan user id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
