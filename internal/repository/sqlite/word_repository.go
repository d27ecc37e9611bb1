package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

const wordColumns = "id, lesson_id, character, pinyin, meaning, audio_url, example_sentence, hsk_level, created_at"

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+wordColumns+`
FROM words
WHERE id = ?
`, id)
	w, err := scanWord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: hsk_level=%d, lesson_id=%d, search=%q", filter.HSKLevel, filter.LessonID, filter.Search)

	query := sqlBuilder.Select(wordColumns).From("words")
	query = applyWordFilter(query, filter)
	query = query.OrderBy("hsk_level ASC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build word query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows.Scan)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, *w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := sqlBuilder.Select("COUNT(*)").From("words")
	query = applyWordFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build word count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: character=%s", w.Character)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (lesson_id, character, pinyin, meaning, audio_url, example_sentence, hsk_level)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, w.LessonID, w.Character, w.Pinyin, w.Meaning, w.AudioURL, w.ExampleSentence, w.HSKLevel)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get word id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting %d words", len(words))

	ids := make([]int64, 0, len(words))
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO words (lesson_id, character, pinyin, meaning, audio_url, example_sentence, hsk_level)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, w := range words {
			res, err := stmt.ExecContext(ctx, w.LessonID, w.Character, w.Pinyin, w.Meaning, w.AudioURL, w.ExampleSentence, w.HSKLevel)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert word batch: %v", err)
		return nil, err
	}
	log.Debug("inserted %d words", len(ids))
	return ids, nil
}

func applyWordFilter(query squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.HSKLevel > 0 {
		query = query.Where(squirrel.Eq{"hsk_level": filter.HSKLevel})
	}
	if filter.LessonID > 0 {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"character": like},
			squirrel.Like{"pinyin": like},
			squirrel.Like{"meaning": like},
		})
	}
	return query
}

func scanWord(scan func(dest ...any) error) (*models.Word, error) {
	var w models.Word
	var lessonID sql.NullInt64
	if err := scan(&w.ID, &lessonID, &w.Character, &w.Pinyin, &w.Meaning, &w.AudioURL, &w.ExampleSentence, &w.HSKLevel, &w.CreatedAt); err != nil {
		return nil, err
	}
	if lessonID.Valid {
		w.LessonID = &lessonID.Int64
	}
	return &w, nil
}
