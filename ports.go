package prayerserver

import (
	"context"
	"io"
)

// Embedder encodes text passages as fixed-length vectors.
type Embedder interface {
	Name() string
	EmbedTexts(ctx context.Context, texts []string) ([]Vector, error)
	EmbedContent(ctx context.Context, content string) (Vector, error)
}

// SentimentClassifier maps free text to a sentiment label with a confidence score.
type SentimentClassifier interface {
	Classify(ctx context.Context, content string) (Sentiment, error)
}

// Retriever stores embedding records per content category and returns the ones
// nearest to a query vector.
type Retriever interface {
	Name() string
	SaveVerseEmbeddings(ctx context.Context, embeddings []VerseEmbedding) error
	SaveTechniqueEmbeddings(ctx context.Context, embeddings []TechniqueEmbedding) error
	CountVerseEmbeddings(ctx context.Context) (int, error)
	CountTechniqueEmbeddings(ctx context.Context) (int, error)
	SearchVerses(ctx context.Context, vector Vector, limit int) ([]VerseEmbedding, error)
	SearchTechniques(ctx context.Context, vector Vector, limit int) ([]TechniqueEmbedding, error)
}

// GenerativeModel turns a composed prompt into generated text.
type GenerativeModel interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Extractor pulls per-page text out of a document.
type Extractor interface {
	Extract(ctx context.Context, contents io.ReadSeeker) ([]Page, error)
}

// Store is the relational source of truth for ingested records.
type Store interface {
	SaveVerses(ctx context.Context, verses ...*Verse) error
	SaveTechniques(ctx context.Context, techniques ...*Technique) error
	ListVerses(ctx context.Context) ([]*Verse, error)
	ListTechniques(ctx context.Context) ([]*Technique, error)
	CountVerses(ctx context.Context) (int, error)
	CountTechniques(ctx context.Context) (int, error)
}

// EmbeddingCache persists computed embedding sets locally so a setup rerun can
// skip the embedding model. A cached set is only valid when its record count
// exactly equals the current source row count.
type EmbeddingCache interface {
	LoadVerseEmbeddings(ctx context.Context, sourceCount int) ([]VerseEmbedding, bool, error)
	SaveVerseEmbeddings(ctx context.Context, embeddings []VerseEmbedding) error
	LoadTechniqueEmbeddings(ctx context.Context, sourceCount int) ([]TechniqueEmbedding, bool, error)
	SaveTechniqueEmbeddings(ctx context.Context, embeddings []TechniqueEmbedding) error
}
