package redis

import (
	"math/rand/v2"

	"github.com/graceware/prayerserver"
)

func (s *RedisTestSuite) TestSearchVerses() {
	ctx, cancel := testContext()
	defer cancel()

	embeddings := []prayerserver.VerseEmbedding{
		{
			ID:        "john_3_16",
			Vector:    testVector(s.adapter.vectorDim, 0, 100),
			Text:      "For God so loved the world",
			Reference: "John 3:16",
			BookName:  "John",
			Chapter:   3,
			Verse:     16,
		},
		{
			ID:        "psalms_23_1",
			Vector:    testVector(s.adapter.vectorDim, 0, 2),
			Text:      "The Lord is my shepherd",
			Reference: "Psalms 23:1",
			BookName:  "Psalms",
			Chapter:   23,
			Verse:     1,
		},
		{
			ID:        "philippians_4_13",
			Vector:    testVector(s.adapter.vectorDim, 0, 20),
			Text:      "I can do all things through Christ",
			Reference: "Philippians 4:13",
			BookName:  "Philippians",
			Chapter:   4,
			Verse:     13,
		},
	}

	err := s.adapter.SaveVerseEmbeddings(ctx, embeddings)
	s.Require().NoError(err)

	searchVector := testVector(s.adapter.vectorDim, 0, 5)

	results, err := s.adapter.SearchVerses(ctx, searchVector, 25)
	s.Require().NoError(err)
	s.Require().Len(results, 3)
	for _, result := range results {
		s.Empty(result.Vector)
	}

	ids := make([]string, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.ID)
	}
	s.Contains(ids, "john_3_16")
	s.Contains(ids, "psalms_23_1")
	s.Contains(ids, "philippians_4_13")
}

func (s *RedisTestSuite) TestCountVerseEmbeddings() {
	ctx, cancel := testContext()
	defer cancel()

	count, err := s.adapter.CountVerseEmbeddings(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	embeddings := []prayerserver.VerseEmbedding{
		{
			ID:        "john_3_16",
			Vector:    testVector(s.adapter.vectorDim, 0, 1),
			Text:      "For God so loved the world",
			Reference: "John 3:16",
			BookName:  "John",
			Chapter:   3,
			Verse:     16,
		},
	}
	s.Require().NoError(s.adapter.SaveVerseEmbeddings(ctx, embeddings))

	count, err = s.adapter.CountVerseEmbeddings(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func testVector(dim int, min, max float32) prayerserver.Vector {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = min + rand.Float32()*(max-min)
	}
	return vec
}
