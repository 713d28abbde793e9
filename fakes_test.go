package prayerserver

import (
	"context"
	"fmt"
	"io"
)

type fakeStore struct {
	verses       []*Verse
	techniques   []*Technique
	verseBatches []int
	saveErr      error
}

func (s *fakeStore) SaveVerses(ctx context.Context, verses ...*Verse) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.verseBatches = append(s.verseBatches, len(verses))
	s.verses = append(s.verses, verses...)
	return nil
}

func (s *fakeStore) SaveTechniques(ctx context.Context, techniques ...*Technique) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.techniques = append(s.techniques, techniques...)
	return nil
}

func (s *fakeStore) ListVerses(ctx context.Context) ([]*Verse, error) {
	return s.verses, nil
}

func (s *fakeStore) ListTechniques(ctx context.Context) ([]*Technique, error) {
	return s.techniques, nil
}

func (s *fakeStore) CountVerses(ctx context.Context) (int, error) {
	return len(s.verses), nil
}

func (s *fakeStore) CountTechniques(ctx context.Context) (int, error) {
	return len(s.techniques), nil
}

type fakeEmbedder struct {
	textsEmbedded int
	batchCalls    int
	contentCalls  int
}

func (e *fakeEmbedder) Name() string { return "fake" }

func (e *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]Vector, error) {
	e.batchCalls++
	e.textsEmbedded += len(texts)
	vectors := make([]Vector, len(texts))
	for i := range vectors {
		vectors[i] = make(Vector, VectorDim)
	}
	return vectors, nil
}

func (e *fakeEmbedder) EmbedContent(ctx context.Context, content string) (Vector, error) {
	e.contentCalls++
	return make(Vector, VectorDim), nil
}

type fakeRetriever struct {
	verseEmbeddings     []VerseEmbedding
	techniqueEmbeddings []TechniqueEmbedding
	verseSearches       int
	techniqueSearches   int
	verseResults        []VerseEmbedding
	techniqueResults    []TechniqueEmbedding
}

func (r *fakeRetriever) Name() string { return "fake" }

func (r *fakeRetriever) SaveVerseEmbeddings(ctx context.Context, embeddings []VerseEmbedding) error {
	r.verseEmbeddings = append(r.verseEmbeddings, embeddings...)
	return nil
}

func (r *fakeRetriever) SaveTechniqueEmbeddings(ctx context.Context, embeddings []TechniqueEmbedding) error {
	r.techniqueEmbeddings = append(r.techniqueEmbeddings, embeddings...)
	return nil
}

func (r *fakeRetriever) CountVerseEmbeddings(ctx context.Context) (int, error) {
	return len(r.verseEmbeddings), nil
}

func (r *fakeRetriever) CountTechniqueEmbeddings(ctx context.Context) (int, error) {
	return len(r.techniqueEmbeddings), nil
}

func (r *fakeRetriever) SearchVerses(ctx context.Context, vector Vector, limit int) ([]VerseEmbedding, error) {
	r.verseSearches++
	if limit < len(r.verseResults) {
		return r.verseResults[:limit], nil
	}
	return r.verseResults, nil
}

func (r *fakeRetriever) SearchTechniques(ctx context.Context, vector Vector, limit int) ([]TechniqueEmbedding, error) {
	r.techniqueSearches++
	if limit < len(r.techniqueResults) {
		return r.techniqueResults[:limit], nil
	}
	return r.techniqueResults, nil
}

type fakeGenerative struct {
	response string
	err      error
	prompts  []Prompt
}

func (g *fakeGenerative) Generate(ctx context.Context, prompt Prompt) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type fakeClassifier struct {
	sentiment Sentiment
	calls     int
}

func (c *fakeClassifier) Classify(ctx context.Context, content string) (Sentiment, error) {
	c.calls++
	return c.sentiment, nil
}

type fakeExtractor struct {
	pages []Page
	err   error
}

func (e *fakeExtractor) Extract(ctx context.Context, contents io.ReadSeeker) ([]Page, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.pages, nil
}

type fakeCache struct {
	verses     []VerseEmbedding
	techniques []TechniqueEmbedding
	verseHits  int
	verseSaves int
}

func (c *fakeCache) LoadVerseEmbeddings(ctx context.Context, sourceCount int) ([]VerseEmbedding, bool, error) {
	if len(c.verses) == 0 || len(c.verses) != sourceCount {
		return nil, false, nil
	}
	c.verseHits++
	return c.verses, true, nil
}

func (c *fakeCache) SaveVerseEmbeddings(ctx context.Context, embeddings []VerseEmbedding) error {
	c.verseSaves++
	c.verses = embeddings
	return nil
}

func (c *fakeCache) LoadTechniqueEmbeddings(ctx context.Context, sourceCount int) ([]TechniqueEmbedding, bool, error) {
	if len(c.techniques) == 0 || len(c.techniques) != sourceCount {
		return nil, false, nil
	}
	return c.techniques, true, nil
}

func (c *fakeCache) SaveTechniqueEmbeddings(ctx context.Context, embeddings []TechniqueEmbedding) error {
	c.techniques = embeddings
	return nil
}

func testVerses(n int) []*Verse {
	verses := make([]*Verse, 0, n)
	for i := 0; i < n; i++ {
		verses = append(verses, NewVerse(RawVerse{
			BookName: "Psalms",
			Chapter:  i/10 + 1,
			Verse:    i%10 + 1,
			Text:     fmt.Sprintf("Verse text number %d.", i),
		}, i, testNow))
	}
	return verses
}
