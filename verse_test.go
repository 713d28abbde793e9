package prayerserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Now().UTC()

func TestNewVerse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		raw               RawVerse
		expectedID        string
		expectedReference string
	}{
		{
			"single word book",
			RawVerse{BookName: "Genesis", BookNumber: 1, Chapter: 1, Verse: 1, Text: "In the beginning"},
			"genesis_1_1",
			"Genesis 1:1",
		},
		{
			"book name with space",
			RawVerse{BookName: "1 John", BookNumber: 62, Chapter: 4, Verse: 18, Text: "There is no fear in love"},
			"1john_4_18",
			"1 John 4:18",
		},
		{
			"book name with multiple spaces",
			RawVerse{BookName: "Song of Solomon", BookNumber: 22, Chapter: 2, Verse: 1, Text: "I am the rose of Sharon"},
			"songofsolomon_2_1",
			"Song of Solomon 2:1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			aVerse := NewVerse(tc.raw, 7, testNow)
			assert.Equal(t, tc.expectedID, aVerse.ID)
			assert.Equal(t, tc.expectedReference, aVerse.Reference)
			assert.Equal(t, tc.expectedID+"_vec", aVerse.EmbeddingID)
			assert.Equal(t, len(tc.raw.Text), aVerse.TextLength)
			assert.Equal(t, 7, aVerse.Index)
			assert.Equal(t, testNow, aVerse.Created)
		})
	}
}

func TestVerse_CleanText(t *testing.T) {
	t.Parallel()

	aVerse := &Verse{Text: "Jesus wept. (John 11:35)"}
	assert.Equal(t, "Jesus wept John 1135", aVerse.CleanText())
}

func TestVerse_Embedding(t *testing.T) {
	t.Parallel()

	aVerse := NewVerse(RawVerse{BookName: "John", Chapter: 3, Verse: 16, Text: "For God so loved the world"}, 0, testNow)
	vector := make(Vector, VectorDim)

	embedding := aVerse.Embedding(vector)
	assert.Equal(t, "john_3_16", embedding.ID)
	assert.Equal(t, aVerse.Text, embedding.Text)
	assert.Equal(t, aVerse.Reference, embedding.Reference)
	assert.Equal(t, aVerse.BookName, embedding.BookName)
	assert.Equal(t, 3, embedding.Chapter)
	assert.Equal(t, 16, embedding.Verse)
	assert.Len(t, embedding.Vector, VectorDim)
}
