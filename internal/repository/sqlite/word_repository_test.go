package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
	"github.com/hihsk/hihsk/internal/repository/sqlite"
	"github.com/hihsk/hihsk/internal/testutil"
)

type WordRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.WordRepository
}

func (s *WordRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWordRepository(s.db)
}

func (s *WordRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *WordRepositorySuite) seedWords() {
	ctx := context.Background()
	words := []models.Word{
		{Character: "你好", Pinyin: "nǐ hǎo", Meaning: "hello", HSKLevel: 1},
		{Character: "谢谢", Pinyin: "xièxie", Meaning: "thanks", HSKLevel: 1},
		{Character: "朋友", Pinyin: "péngyou", Meaning: "friend", HSKLevel: 2},
	}
	for _, w := range words {
		_, err := s.repo.Insert(ctx, w)
		s.Require().NoError(err)
	}
}

func (s *WordRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Word{
		Character:       "学习",
		Pinyin:          "xuéxí",
		Meaning:         "to study",
		ExampleSentence: "我学习中文。",
		HSKLevel:        1,
	})
	s.Require().NoError(err)

	word, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(word)
	s.Equal("学习", word.Character)
	s.Equal("我学习中文。", word.ExampleSentence)
	s.Nil(word.LessonID)

	missing, err := s.repo.Get(ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *WordRepositorySuite) TestListFilters() {
	s.seedWords()
	ctx := context.Background()

	all, err := s.repo.List(ctx, models.WordFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	level1, err := s.repo.List(ctx, models.WordFilter{HSKLevel: 1})
	s.Require().NoError(err)
	s.Len(level1, 2)

	search, err := s.repo.List(ctx, models.WordFilter{Search: "friend"})
	s.Require().NoError(err)
	s.Require().Len(search, 1)
	s.Equal("朋友", search[0].Character)

	count, err := s.repo.Count(ctx, models.WordFilter{HSKLevel: 1})
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *WordRepositorySuite) TestListPagination() {
	s.seedWords()
	ctx := context.Background()

	page1, err := s.repo.List(ctx, models.WordFilter{Limit: 2})
	s.Require().NoError(err)
	s.Len(page1, 2)

	page2, err := s.repo.List(ctx, models.WordFilter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Len(page2, 1)
	s.NotEqual(page1[0].ID, page2[0].ID)
}

func (s *WordRepositorySuite) TestInsertBatch() {
	ctx := context.Background()

	ids, err := s.repo.InsertBatch(ctx, []models.Word{
		{Character: "一", Pinyin: "yī", Meaning: "one", HSKLevel: 1},
		{Character: "二", Pinyin: "èr", Meaning: "two", HSKLevel: 1},
	})
	s.Require().NoError(err)
	s.Len(ids, 2)

	count, err := s.repo.Count(ctx, models.WordFilter{})
	s.Require().NoError(err)
	s.Equal(2, count)
}

func TestWordRepositorySuite(t *testing.T) {
	suite.Run(t, new(WordRepositorySuite))
}
