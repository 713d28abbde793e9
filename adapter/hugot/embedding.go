package hugot

import (
	"context"
	"fmt"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) EmbedTexts(ctx context.Context, texts []string) ([]prayerserver.Vector, error) {
	embeddingResult, err := a.embedding.RunPipeline(texts)
	if err != nil {
		return nil, err
	}

	embeddings := embeddingResult.Embeddings

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedded batch size mismatch")
	}

	vectors := make([]prayerserver.Vector, 0, len(embeddings))

	for i := range embeddings {
		vectors = append(vectors, embeddings[i])
	}

	return vectors, nil
}

func (a *Adapter) EmbedContent(ctx context.Context, content string) (prayerserver.Vector, error) {
	embeddingResult, err := a.embedding.RunPipeline([]string{content})
	if err != nil {
		return prayerserver.Vector{}, err
	}
	return firstVector(embeddingResult.Embeddings)
}

func firstVector(embeddings [][]float32) (prayerserver.Vector, error) {
	if len(embeddings) == 0 {
		return prayerserver.Vector{}, fmt.Errorf("no embedding returned")
	}
	return embeddings[0], nil
}
