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

type ResultRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ResultRepository
}

func (s *ResultRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewResultRepository(s.db)
}

func (s *ResultRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ResultRepositorySuite) seedCourse(lessonCount int) (int64, []int64) {
	res, err := s.db.Exec(`INSERT INTO courses (title, hsk_level) VALUES ('HSK1', 1)`)
	s.Require().NoError(err)
	courseID, err := res.LastInsertId()
	s.Require().NoError(err)

	var lessonIDs []int64
	for i := 1; i <= lessonCount; i++ {
		res, err := s.db.Exec(`INSERT INTO lessons (course_id, lesson_index, title) VALUES (?, ?, ?)`,
			courseID, i, "Lesson")
		s.Require().NoError(err)
		id, err := res.LastInsertId()
		s.Require().NoError(err)
		lessonIDs = append(lessonIDs, id)
	}
	return courseID, lessonIDs
}

func (s *ResultRepositorySuite) TestInsertQuizResult() {
	ctx := context.Background()
	_, lessons := s.seedCourse(1)

	id, err := s.repo.InsertQuizResult(ctx, models.LessonProgress{
		UserID:         "u1",
		LessonID:       lessons[0],
		Score:          7,
		TotalPoints:    10,
		TotalQuestions: 10,
		CorrectAnswers: 7,
		WrongAnswers:   3,
		CompletedAt:    time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Positive(id)

	// A second attempt is a separate row.
	id2, err := s.repo.InsertQuizResult(ctx, models.LessonProgress{
		UserID: "u1", LessonID: lessons[0], Score: 9, TotalPoints: 10,
		TotalQuestions: 10, CorrectAnswers: 9, WrongAnswers: 1,
		CompletedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.NotEqual(id, id2)
}

func (s *ResultRepositorySuite) TestUpsertLessonStatusOverwrites() {
	ctx := context.Background()
	courseID, lessons := s.seedCourse(2)

	s.Require().NoError(s.repo.UpsertLessonStatus(ctx, "u1", lessons[0], models.LessonInProgress, 40))
	s.Require().NoError(s.repo.UpsertLessonStatus(ctx, "u1", lessons[0], models.LessonCompleted, 100))

	statuses, err := s.repo.LessonStatuses(ctx, "u1", courseID)
	s.Require().NoError(err)
	s.Require().Len(statuses, 2)
	s.Equal(models.LessonCompleted, statuses[lessons[0]].Status)
	s.Equal(100, statuses[lessons[0]].ProgressPercent)
	s.Equal(models.LessonNotStarted, statuses[lessons[1]].Status, "untouched lessons default to NotStarted")
}

func (s *ResultRepositorySuite) TestCompletedLessonCount() {
	ctx := context.Background()
	courseID, lessons := s.seedCourse(3)

	s.Require().NoError(s.repo.UpsertLessonStatus(ctx, "u1", lessons[0], models.LessonCompleted, 100))
	s.Require().NoError(s.repo.UpsertLessonStatus(ctx, "u1", lessons[1], models.LessonInProgress, 50))
	s.Require().NoError(s.repo.UpsertLessonStatus(ctx, "u2", lessons[1], models.LessonCompleted, 100))

	count, err := s.repo.CompletedLessonCount(ctx, "u1", courseID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ResultRepositorySuite) TestDailyStatsSnapshotUpserts() {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.SnapshotDailyStats(ctx, models.DailyStats{
		UserID: "u1", Day: day, Reviews: 10, CorrectReviews: 8, MasteredWords: 3,
	}))
	// Re-snapshotting the same day replaces the row.
	s.Require().NoError(s.repo.SnapshotDailyStats(ctx, models.DailyStats{
		UserID: "u1", Day: day, Reviews: 12, CorrectReviews: 9, MasteredWords: 4,
	}))
	s.Require().NoError(s.repo.SnapshotDailyStats(ctx, models.DailyStats{
		UserID: "u1", Day: day.AddDate(0, 0, 1), Reviews: 5, CorrectReviews: 5, MasteredWords: 4,
	}))

	stats, err := s.repo.DailyStats(ctx, "u1", day, day.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Require().Len(stats, 2)
	s.Equal(12, stats[0].Reviews)
	s.Equal(9, stats[0].CorrectReviews)
	s.True(stats[0].Day.Equal(day))
	s.Equal(5, stats[1].Reviews)
}

func TestResultRepositorySuite(t *testing.T) {
	suite.Run(t, new(ResultRepositorySuite))
}
