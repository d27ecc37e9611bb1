package sqlite

import (
	"context"
	"database/sql"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

// QuestionsForLesson loads all questions for a lesson with their options
// attached, ordered by question id then option id.
func (r *questionRepository) QuestionsForLesson(ctx context.Context, lessonID int64) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("loading questions: lesson_id=%d", lessonID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, lesson_id, question_text, question_type, audio_url, points, explanation, created_at
FROM questions
WHERE lesson_id = ?
ORDER BY id ASC
`, lessonID)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	index := map[int64]int{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.LessonID, &q.QuestionText, &q.QuestionType, &q.AudioURL, &q.Points, &q.Explanation, &q.CreatedAt); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		log.Debug("no questions for lesson %d", lessonID)
		return nil, nil
	}

	optRows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.question_id, o.option_text, o.option_label, o.is_correct
FROM question_options o
JOIN questions q ON q.id = o.question_id
WHERE q.lesson_id = ?
ORDER BY o.question_id ASC, o.id ASC
`, lessonID)
	if err != nil {
		log.Error("failed to query question options: %v", err)
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o models.QuestionOption
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.OptionLabel, &o.IsCorrect); err != nil {
			log.Error("failed to scan option row: %v", err)
			return nil, err
		}
		if i, ok := index[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("loaded %d questions for lesson %d", len(questions), lessonID)
	return questions, nil
}
