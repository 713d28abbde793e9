package prayerserver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultEmbedBatchSize  = 50
	defaultEmbedBatchPause = 500 * time.Millisecond
)

type SetupResult struct {
	AlreadyComplete bool `json:"already_complete"`
	Verses          int  `json:"verses"`
	Techniques      int  `json:"techniques"`
}

// SetupEmbeddings populates the vector store from the relational store. It is
// idempotent: when every collection already holds at least one row the run is
// a no-op, unless force is set, in which case new rows are appended. The two
// content categories fail independently.
func (ps *prayerServer) SetupEmbeddings(ctx context.Context, force bool) (SetupResult, error) {
	verseCount, err := ps.retriever.CountVerseEmbeddings(ctx)
	if err != nil {
		return SetupResult{}, fmt.Errorf("counting verse embeddings: %w", err)
	}
	techniqueCount, err := ps.retriever.CountTechniqueEmbeddings(ctx)
	if err != nil {
		return SetupResult{}, fmt.Errorf("counting technique embeddings: %w", err)
	}

	if verseCount > 0 && techniqueCount > 0 && !force {
		ps.logger.Sugar().Infof("found %d verse and %d technique embeddings, setup already complete", verseCount, techniqueCount)
		return SetupResult{AlreadyComplete: true}, nil
	}

	var (
		result = SetupResult{}
		errs   []error
	)

	if verseCount == 0 || force {
		n, err := ps.setupVerseEmbeddings(ctx)
		if err != nil {
			ps.logger.Sugar().With("error", err).Error("error setting up verse embeddings")
			errs = append(errs, fmt.Errorf("verse embeddings: %w", err))
		} else {
			result.Verses = n
		}
	}

	if techniqueCount == 0 || force {
		n, err := ps.setupTechniqueEmbeddings(ctx)
		if err != nil {
			ps.logger.Sugar().With("error", err).Error("error setting up technique embeddings")
			errs = append(errs, fmt.Errorf("technique embeddings: %w", err))
		} else {
			result.Techniques = n
		}
	}

	return result, errors.Join(errs...)
}

func (ps *prayerServer) setupVerseEmbeddings(ctx context.Context) (int, error) {
	verses, err := ps.store.ListVerses(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing verses: %w", err)
	}
	if len(verses) == 0 {
		return 0, fmt.Errorf("no verses ingested: %w", ErrNotReady)
	}

	var embeddings []VerseEmbedding
	if ps.cache != nil {
		cached, ok, err := ps.cache.LoadVerseEmbeddings(ctx, len(verses))
		if err != nil {
			return 0, fmt.Errorf("loading cached verse embeddings: %w", err)
		}
		if ok {
			ps.logger.Sugar().Infof("reusing %d cached verse embeddings", len(cached))
			embeddings = cached
		}
	}

	if embeddings == nil {
		embeddings, err = ps.embedVerses(ctx, verses)
		if err != nil {
			return 0, err
		}
		if ps.cache != nil {
			if err := ps.cache.SaveVerseEmbeddings(ctx, embeddings); err != nil {
				ps.logger.Sugar().With("error", err).Warn("error caching verse embeddings")
			}
		}
	}

	if err := ps.retriever.SaveVerseEmbeddings(ctx, embeddings); err != nil {
		return 0, fmt.Errorf("saving verse embeddings: %w", err)
	}

	return len(embeddings), nil
}

func (ps *prayerServer) setupTechniqueEmbeddings(ctx context.Context) (int, error) {
	techniques, err := ps.store.ListTechniques(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing techniques: %w", err)
	}
	if len(techniques) == 0 {
		return 0, fmt.Errorf("no techniques ingested: %w", ErrNotReady)
	}

	var embeddings []TechniqueEmbedding
	if ps.cache != nil {
		cached, ok, err := ps.cache.LoadTechniqueEmbeddings(ctx, len(techniques))
		if err != nil {
			return 0, fmt.Errorf("loading cached technique embeddings: %w", err)
		}
		if ok {
			ps.logger.Sugar().Infof("reusing %d cached technique embeddings", len(cached))
			embeddings = cached
		}
	}

	if embeddings == nil {
		embeddings, err = ps.embedTechniques(ctx, techniques)
		if err != nil {
			return 0, err
		}
		if ps.cache != nil {
			if err := ps.cache.SaveTechniqueEmbeddings(ctx, embeddings); err != nil {
				ps.logger.Sugar().With("error", err).Warn("error caching technique embeddings")
			}
		}
	}

	if err := ps.retriever.SaveTechniqueEmbeddings(ctx, embeddings); err != nil {
		return 0, fmt.Errorf("saving technique embeddings: %w", err)
	}

	return len(embeddings), nil
}

// embedVerses embeds verses in fixed-size batches with a short pause between
// batches to bound pressure on the embedding backend.
func (ps *prayerServer) embedVerses(ctx context.Context, verses []*Verse) ([]VerseEmbedding, error) {
	embeddings := make([]VerseEmbedding, 0, len(verses))

	for start := 0; start < len(verses); start += ps.embedBatchSize {
		end := min(start+ps.embedBatchSize, len(verses))
		batch := verses[start:end]

		texts := make([]string, 0, len(batch))
		for _, aVerse := range batch {
			texts = append(texts, aVerse.CleanText())
		}

		vectors, err := ps.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding verses: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedded batch size mismatch")
		}

		for i, aVerse := range batch {
			embeddings = append(embeddings, aVerse.Embedding(vectors[i]))
		}

		ps.logger.Sugar().Infof("embedded %d/%d verses", end, len(verses))

		if end < len(verses) {
			if err := pause(ctx, ps.embedBatchPause); err != nil {
				return nil, err
			}
		}
	}

	return embeddings, nil
}

func (ps *prayerServer) embedTechniques(ctx context.Context, techniques []*Technique) ([]TechniqueEmbedding, error) {
	embeddings := make([]TechniqueEmbedding, 0, len(techniques))

	for start := 0; start < len(techniques); start += ps.embedBatchSize {
		end := min(start+ps.embedBatchSize, len(techniques))
		batch := techniques[start:end]

		texts := make([]string, 0, len(batch))
		for _, aTechnique := range batch {
			texts = append(texts, aTechnique.Content)
		}

		vectors, err := ps.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding techniques: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedded batch size mismatch")
		}

		for i, aTechnique := range batch {
			embeddings = append(embeddings, aTechnique.Embedding(vectors[i]))
		}

		ps.logger.Sugar().Infof("embedded %d/%d techniques", end, len(techniques))

		if end < len(techniques) {
			if err := pause(ctx, ps.embedBatchPause); err != nil {
				return nil, err
			}
		}
	}

	return embeddings, nil
}

func pause(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
