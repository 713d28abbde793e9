package redis

import (
	"github.com/graceware/prayerserver"
)

func (s *RedisTestSuite) TestSearchTechniques() {
	ctx, cancel := testContext()
	defer cancel()

	embeddings := []prayerserver.TechniqueEmbedding{
		{
			ID:      1,
			Vector:  testVector(s.adapter.vectorDim, 0, 100),
			Title:   "box-breathing",
			Content: "Breathe in for four counts, hold for four.",
			Page:    1,
		},
		{
			ID:      2,
			Vector:  testVector(s.adapter.vectorDim, 0, 2),
			Title:   "grounding",
			Content: "Name five things you can see around you.",
			Page:    2,
		},
	}

	err := s.adapter.SaveTechniqueEmbeddings(ctx, embeddings)
	s.Require().NoError(err)

	searchVector := testVector(s.adapter.vectorDim, 0, 5)

	results, err := s.adapter.SearchTechniques(ctx, searchVector, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)

	ids := make([]int, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.ID)
	}
	s.Contains(ids, 1)
	s.Contains(ids, 2)
}

func (s *RedisTestSuite) TestCountTechniqueEmbeddings() {
	ctx, cancel := testContext()
	defer cancel()

	count, err := s.adapter.CountTechniqueEmbeddings(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	embeddings := []prayerserver.TechniqueEmbedding{
		{
			ID:      1,
			Vector:  testVector(s.adapter.vectorDim, 0, 1),
			Title:   "box-breathing",
			Content: "Breathe in for four counts, hold for four.",
			Page:    1,
		},
	}
	s.Require().NoError(s.adapter.SaveTechniqueEmbeddings(ctx, embeddings))

	count, err = s.adapter.CountTechniqueEmbeddings(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}
