package prayerserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTechniques(n int) []*Technique {
	techniques := make([]*Technique, 0, n)
	for i := 0; i < n; i++ {
		techniques = append(techniques, NewTechnique(i+1, Page{
			Number: i + 1,
			Text:   "Technique\nSome therapeutic content.",
		}, testNow))
	}
	return techniques
}

func newTestServer(store *fakeStore, embedder *fakeEmbedder, retriever *fakeRetriever, options ...Option) *prayerServer {
	options = append([]Option{WithEmbedBatchPause(time.Millisecond)}, options...)
	return New(embedder, &fakeClassifier{}, retriever, &fakeGenerative{}, &fakeExtractor{}, store, options...)
}

func TestSetupEmbeddings(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{verses: testVerses(120), techniques: testTechniques(7)}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		ps        = newTestServer(store, embedder, retriever)
	)

	result, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.AlreadyComplete)
	assert.Equal(t, 120, result.Verses)
	assert.Equal(t, 7, result.Techniques)

	assert.Len(t, retriever.verseEmbeddings, 120)
	assert.Len(t, retriever.techniqueEmbeddings, 7)

	// 120 verses in batches of 50 plus a single technique batch.
	assert.Equal(t, 4, embedder.batchCalls)
	assert.Equal(t, 127, embedder.textsEmbedded)
}

func TestSetupEmbeddings_Idempotent(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{verses: testVerses(30), techniques: testTechniques(3)}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		ps        = newTestServer(store, embedder, retriever)
	)

	_, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, retriever.verseEmbeddings, 30)

	firstRunBatchCalls := embedder.batchCalls

	result, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, result.AlreadyComplete)

	// Second run is a no-op, no new vectors and no embedding calls.
	assert.Len(t, retriever.verseEmbeddings, 30)
	assert.Len(t, retriever.techniqueEmbeddings, 3)
	assert.Equal(t, firstRunBatchCalls, embedder.batchCalls)
}

func TestSetupEmbeddings_ForceAppends(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{verses: testVerses(10), techniques: testTechniques(2)}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		ps        = newTestServer(store, embedder, retriever)
	)

	_, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)

	_, err = ps.SetupEmbeddings(context.Background(), true)
	require.NoError(t, err)

	// Force never diffs, it appends.
	assert.Len(t, retriever.verseEmbeddings, 20)
	assert.Len(t, retriever.techniqueEmbeddings, 4)
}

func TestSetupEmbeddings_CacheHitSkipsEmbedder(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{verses: testVerses(15), techniques: testTechniques(4)}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		cache     = &fakeCache{}
		ps        = newTestServer(store, embedder, retriever, WithEmbeddingCache(cache))
	)

	// First run populates the cache.
	_, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, cache.verseSaves)
	require.NotZero(t, embedder.batchCalls)

	// Rerun with force: source counts unchanged, cached set is reused
	// verbatim and the embedder is never invoked.
	embedder.batchCalls = 0
	embedder.textsEmbedded = 0

	_, err = ps.SetupEmbeddings(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.verseHits)
	assert.Zero(t, embedder.batchCalls)
	assert.Zero(t, embedder.textsEmbedded)
}

func TestSetupEmbeddings_CacheCountMismatchRecomputes(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{verses: testVerses(15), techniques: testTechniques(4)}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		cache     = &fakeCache{}
		ps        = newTestServer(store, embedder, retriever, WithEmbeddingCache(cache))
	)

	_, err := ps.SetupEmbeddings(context.Background(), false)
	require.NoError(t, err)

	// Source grew by one row, the cached set no longer matches.
	store.verses = testVerses(16)
	embedder.textsEmbedded = 0

	_, err = ps.SetupEmbeddings(context.Background(), true)
	require.NoError(t, err)
	assert.Zero(t, cache.verseHits)
	assert.Equal(t, 16+4, embedder.textsEmbedded)
}

func TestSetupEmbeddings_EmptyStore(t *testing.T) {
	t.Parallel()

	var (
		store     = &fakeStore{}
		embedder  = &fakeEmbedder{}
		retriever = &fakeRetriever{}
		ps        = newTestServer(store, embedder, retriever)
	)

	_, err := ps.SetupEmbeddings(context.Background(), false)
	require.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, retriever.verseEmbeddings)
}
