package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
	"github.com/hihsk/hihsk/internal/repository/sqlite"
	"github.com/hihsk/hihsk/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) insertWord(character string, lessonID any) int64 {
	res, err := s.db.Exec(`
		INSERT INTO words (lesson_id, character, pinyin, meaning, hsk_level)
		VALUES (?, ?, ?, ?, 1)
	`, lessonID, character, "pinyin", "meaning")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ProgressRepositorySuite) insertLesson() int64 {
	_, err := s.db.Exec(`INSERT INTO courses (title, hsk_level) VALUES ('HSK1', 1)`)
	s.Require().NoError(err)
	res, err := s.db.Exec(`INSERT INTO lessons (course_id, lesson_index, title) VALUES (1, 1, 'Greetings')`)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	progress, err := s.repo.Get(context.Background(), "u1", 999)
	s.Require().NoError(err)
	s.Nil(progress)
}

func (s *ProgressRepositorySuite) TestUpsertRoundTrip() {
	ctx := context.Background()
	wordID := s.insertWord("好", nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	inserted, err := s.repo.Upsert(ctx, models.WordProgress{
		UserID:         "u1",
		WordID:         wordID,
		Status:         models.StatusNew,
		NextReviewDate: now,
	})
	s.Require().NoError(err)
	s.Equal(models.StatusNew, inserted.Status)
	s.Equal(0, inserted.ReviewCount)
	s.Nil(inserted.LastReviewedAt)

	reviewedAt := now.Add(time.Hour)
	updated, err := s.repo.Upsert(ctx, models.WordProgress{
		UserID:         "u1",
		WordID:         wordID,
		Status:         models.StatusLearning,
		NextReviewDate: now.Add(24 * time.Hour),
		ReviewCount:    1,
		CorrectCount:   1,
		LastReviewedAt: &reviewedAt,
	})
	s.Require().NoError(err)
	s.Equal(inserted.ID, updated.ID, "upsert updates in place")
	s.Equal(models.StatusLearning, updated.Status)
	s.Equal(1, updated.ReviewCount)
	s.Require().NotNil(updated.LastReviewedAt)
	s.True(updated.LastReviewedAt.Equal(reviewedAt))
}

func (s *ProgressRepositorySuite) TestDueWordsOrderingAndLimit() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	w1 := s.insertWord("一", nil)
	w2 := s.insertWord("二", nil)
	w3 := s.insertWord("三", nil)

	// w2 due earliest, w1 ties with w3 on date, w3 not yet due.
	for _, row := range []struct {
		wordID int64
		due    time.Time
	}{
		{w1, now.Add(-time.Hour)},
		{w2, now.Add(-2 * time.Hour)},
		{w3, now.Add(time.Hour)},
	} {
		_, err := s.repo.Upsert(ctx, models.WordProgress{
			UserID: "u1", WordID: row.wordID,
			Status: models.StatusLearning, NextReviewDate: row.due,
			ReviewCount: 1, CorrectCount: 1,
		})
		s.Require().NoError(err)
	}

	due, err := s.repo.DueWords(ctx, "u1", now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Equal(w2, due[0].ID)
	s.Equal(w1, due[1].ID)
	s.Require().NotNil(due[0].Progress)
	s.Equal(models.StatusLearning, due[0].Progress.Status)

	limited, err := s.repo.DueWords(ctx, "u1", now, 1)
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal(w2, limited[0].ID)
}

func (s *ProgressRepositorySuite) TestDueWordsTieBreaksOnWordID() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	w1 := s.insertWord("一", nil)
	w2 := s.insertWord("二", nil)
	for _, wordID := range []int64{w2, w1} {
		_, err := s.repo.Upsert(ctx, models.WordProgress{
			UserID: "u1", WordID: wordID,
			Status: models.StatusNew, NextReviewDate: now,
		})
		s.Require().NoError(err)
	}

	due, err := s.repo.DueWords(ctx, "u1", now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Equal(w1, due[0].ID)
	s.Equal(w2, due[1].ID)
}

func (s *ProgressRepositorySuite) TestEnsureForLessonIsIdempotent() {
	ctx := context.Background()
	lessonID := s.insertLesson()
	s.insertWord("你", lessonID)
	s.insertWord("好", lessonID)
	s.insertWord("再", nil) // not in the lesson
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.EnsureForLesson(ctx, "u1", lessonID, now))

	count, err := s.repo.CountByStatus(ctx, "u1", models.StatusNew)
	s.Require().NoError(err)
	s.Equal(2, count)

	// Rating one word then re-seeding must not reset it.
	due, err := s.repo.DueWords(ctx, "u1", now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	_, err = s.repo.Upsert(ctx, models.WordProgress{
		UserID: "u1", WordID: due[0].ID,
		Status: models.StatusLearning, NextReviewDate: now.Add(24 * time.Hour),
		ReviewCount: 1, CorrectCount: 1,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.EnsureForLesson(ctx, "u1", lessonID, now))
	progress, err := s.repo.Get(ctx, "u1", due[0].ID)
	s.Require().NoError(err)
	s.Equal(models.StatusLearning, progress.Status)
	s.Equal(1, progress.ReviewCount)
}

func (s *ProgressRepositorySuite) TestCountDue() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w1 := s.insertWord("一", nil)
	w2 := s.insertWord("二", nil)

	for _, row := range []struct {
		wordID int64
		due    time.Time
	}{
		{w1, now},
		{w2, now.Add(time.Minute)},
	} {
		_, err := s.repo.Upsert(ctx, models.WordProgress{
			UserID: "u1", WordID: row.wordID,
			Status: models.StatusNew, NextReviewDate: row.due,
		})
		s.Require().NoError(err)
	}

	count, err := s.repo.CountDue(ctx, "u1", now)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ProgressRepositorySuite) TestReviewHistoryCounts() {
	ctx := context.Background()
	wordID := s.insertWord("好", nil)
	since := time.Now().UTC().Add(-time.Hour)

	s.Require().NoError(s.repo.InsertReviewHistory(ctx, "u1", wordID, models.RatingEasy))
	s.Require().NoError(s.repo.InsertReviewHistory(ctx, "u1", wordID, models.RatingHard))
	s.Require().NoError(s.repo.InsertReviewHistory(ctx, "u1", wordID, models.RatingForgot))
	s.Require().NoError(s.repo.InsertReviewHistory(ctx, "u2", wordID, models.RatingEasy))

	total, correct, err := s.repo.CountReviewsSince(ctx, "u1", since)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Equal(2, correct, "easy and hard both count as correct")
}

func (s *ProgressRepositorySuite) TestUserIDs() {
	ctx := context.Background()
	now := time.Now().UTC()
	w1 := s.insertWord("一", nil)

	for _, userID := range []string{"u1", "u2"} {
		_, err := s.repo.Upsert(ctx, models.WordProgress{
			UserID: userID, WordID: w1,
			Status: models.StatusNew, NextReviewDate: now,
		})
		s.Require().NoError(err)
	}

	ids, err := s.repo.UserIDs(ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u1", "u2"}, ids)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
