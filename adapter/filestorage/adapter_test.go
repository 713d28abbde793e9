package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graceware/prayerserver"
)

func TestVerseEmbeddingCache(t *testing.T) {
	t.Parallel()

	adapter, err := New(WithDir(t.TempDir()))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("Miss when nothing cached", func(t *testing.T) {
		embeddings, ok, err := adapter.LoadVerseEmbeddings(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, embeddings)
	})

	cached := []prayerserver.VerseEmbedding{
		{
			ID:        "john_3_16",
			Vector:    prayerserver.Vector{0.1, 0.2},
			Text:      "For God so loved the world",
			Reference: "John 3:16",
			BookName:  "John",
			Chapter:   3,
			Verse:     16,
		},
		{
			ID:        "psalms_23_1",
			Vector:    prayerserver.Vector{0.3, 0.4},
			Text:      "The Lord is my shepherd",
			Reference: "Psalms 23:1",
			BookName:  "Psalms",
			Chapter:   23,
			Verse:     1,
		},
	}
	require.NoError(t, adapter.SaveVerseEmbeddings(ctx, cached))

	t.Run("Hit when counts match", func(t *testing.T) {
		embeddings, ok, err := adapter.LoadVerseEmbeddings(ctx, 2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, cached, embeddings)
	})

	t.Run("Miss when counts differ", func(t *testing.T) {
		embeddings, ok, err := adapter.LoadVerseEmbeddings(ctx, 3)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, embeddings)
	})
}

func TestTechniqueEmbeddingCache(t *testing.T) {
	t.Parallel()

	adapter, err := New(WithDir(t.TempDir()))
	require.NoError(t, err)

	ctx := context.Background()

	cached := []prayerserver.TechniqueEmbedding{
		{
			ID:      1,
			Vector:  prayerserver.Vector{0.5, 0.6},
			Title:   "box-breathing",
			Content: "Breathe in for four counts, hold for four.",
			Page:    1,
		},
	}
	require.NoError(t, adapter.SaveTechniqueEmbeddings(ctx, cached))

	embeddings, ok, err := adapter.LoadTechniqueEmbeddings(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cached, embeddings)

	_, ok, err = adapter.LoadTechniqueEmbeddings(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	adapter, err := New(WithDir(dir))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "verse_embeddings.json"), []byte("{not json"), 0o644))

	_, ok, err := adapter.LoadVerseEmbeddings(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, ok)
}
