package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stretchr/testify/suite"

	"github.com/graceware/prayerserver"
	"github.com/graceware/prayerserver/prayerservertest"
)

var (
	testNow = time.Now().UTC().Truncate(time.Millisecond)
	gen     = prayerservertest.New(testNow.UnixNano(), testNow)
)

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite
	db      *sql.DB
	adapter *Adapter
}

func (s *StoreTestSuite) SetupTest() {
	// Fresh in-memory database per test, migrated to the latest schema
	db, err := sql.Open("sqlite3", ":memory:")
	s.Require().NoError(err)
	s.db = db

	migrationsPath, err := filepath.Abs("../../db/migrations")
	s.Require().NoError(err)
	s.Require().NoError(prayerserver.Migrate(s.db, migrationsPath))

	s.adapter = New(s.db)
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}

func (s *StoreTestSuite) TestSaveVerses_Upsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		verse1 = gen.Verse(0)
		verse2 = gen.Verse(1)
	)

	s.Require().NoError(s.adapter.SaveVerses(ctx, verse1, verse2), "error saving verses")

	verses, err := s.adapter.ListVerses(ctx)
	s.Require().NoError(err)
	s.Require().Len(verses, 2)
	s.Equal(verse1, verses[0])
	s.Equal(verse2, verses[1])

	// Save again with changed text to cause an upsert
	verse1.Text = "For God so loved the world"
	verse1.TextLength = len(verse1.Text)

	s.Require().NoError(s.adapter.SaveVerses(ctx, verse1, verse2), "error saving verses")

	verses, err = s.adapter.ListVerses(ctx)
	s.Require().NoError(err)
	s.Require().Len(verses, 2)
	s.Equal(verse1, verses[0])
	s.Equal("For God so loved the world", verses[0].Text)

	count, err := s.adapter.CountVerses(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StoreTestSuite) TestListVerses_OrderedByIndex() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		verse1 = gen.Verse(2)
		verse2 = gen.Verse(0)
		verse3 = gen.Verse(1)
	)

	s.Require().NoError(s.adapter.SaveVerses(ctx, verse1, verse2, verse3), "error saving verses")

	verses, err := s.adapter.ListVerses(ctx)
	s.Require().NoError(err)
	s.Require().Len(verses, 3)
	s.Equal(0, verses[0].Index)
	s.Equal(1, verses[1].Index)
	s.Equal(2, verses[2].Index)
}

func (s *StoreTestSuite) TestSaveVerses_Empty() {
	ctx, cancel := testContext()
	defer cancel()

	s.Require().NoError(s.adapter.SaveVerses(ctx))

	count, err := s.adapter.CountVerses(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *StoreTestSuite) TestSaveTechniques_Upsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		technique1 = gen.Technique(1)
		technique2 = gen.Technique(2)
	)

	s.Require().NoError(s.adapter.SaveTechniques(ctx, technique1, technique2), "error saving techniques")

	techniques, err := s.adapter.ListTechniques(ctx)
	s.Require().NoError(err)
	s.Require().Len(techniques, 2)
	s.Equal(technique1, techniques[0])
	s.Equal(technique2, techniques[1])

	// Save again with changed content to cause an upsert
	technique2.Content = "Practice slow breathing for five minutes."

	s.Require().NoError(s.adapter.SaveTechniques(ctx, technique1, technique2), "error saving techniques")

	techniques, err = s.adapter.ListTechniques(ctx)
	s.Require().NoError(err)
	s.Require().Len(techniques, 2)
	s.Equal(technique2, techniques[1])

	count, err := s.adapter.CountTechniques(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StoreTestSuite) TestCounts_EmptyDatabase() {
	ctx, cancel := testContext()
	defer cancel()

	verseCount, err := s.adapter.CountVerses(ctx)
	s.Require().NoError(err)
	s.Equal(0, verseCount)

	techniqueCount, err := s.adapter.CountTechniques(ctx)
	s.Require().NoError(err)
	s.Equal(0, techniqueCount)
}
