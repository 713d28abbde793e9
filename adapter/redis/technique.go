package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveTechniqueEmbeddings(ctx context.Context, embeddings []prayerserver.TechniqueEmbedding) error {
	for _, embedding := range embeddings {
		if len(embedding.Vector) != a.vectorDim {
			return fmt.Errorf("technique %d: expected vector of %d dimensions, got %d",
				embedding.ID, a.vectorDim, len(embedding.Vector))
		}
		key := fmt.Sprintf("%s%d", a.techniqueIndexPrefix, embedding.ID)
		fields, err := a.client.HSet(ctx,
			key,
			map[string]any{
				"title":     embedding.Title,
				"content":   embedding.Content,
				"page":      embedding.Page,
				"embedding": floatsToBytes(embedding.Vector),
			},
		).Result()
		if err != nil {
			return err
		}
		if fields == 0 {
			return fmt.Errorf("no fields were added to redis")
		}
	}

	return nil
}

func (a *Adapter) CountTechniqueEmbeddings(ctx context.Context) (int, error) {
	return a.countIndexed(ctx, a.techniqueIndexName)
}

func (a *Adapter) SearchTechniques(ctx context.Context, vector prayerserver.Vector, limit int) ([]prayerserver.TechniqueEmbedding, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required for searching techniques")
	}

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS vector_distance]", limit)

	results, err := a.client.FTSearchWithArgs(ctx,
		a.techniqueIndexName,
		query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "vector_distance"},
				{FieldName: "title"},
				{FieldName: "content"},
				{FieldName: "page"},
			},
			DialectVersion: a.dialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(vector),
			},
			SortBy: []redis.FTSearchSortBy{{FieldName: "vector_distance", Asc: true}},
			Limit:  limit,
		},
	).Result()
	if err != nil {
		return nil, err
	}

	return mapRedisTechniques(a.techniqueIndexPrefix, results.Docs)
}

func mapRedisTechniques(prefix string, rds []redis.Document) ([]prayerserver.TechniqueEmbedding, error) {
	techniques := make([]prayerserver.TechniqueEmbedding, 0, len(rds))

	for _, rd := range rds {
		aTechnique, err := mapRedisTechnique(prefix, rd)
		if err != nil {
			return nil, err
		}
		techniques = append(techniques, aTechnique)
	}

	return techniques, nil
}

func mapRedisTechnique(prefix string, rd redis.Document) (prayerserver.TechniqueEmbedding, error) {
	content, ok := rd.Fields["content"]
	if !ok {
		return prayerserver.TechniqueEmbedding{}, fmt.Errorf("missing content field in technique")
	}

	id, err := strconv.Atoi(rd.ID[len(prefix):])
	if err != nil {
		return prayerserver.TechniqueEmbedding{}, fmt.Errorf("invalid technique key %q: %v", rd.ID, err)
	}

	page, err := strconv.Atoi(rd.Fields["page"])
	if err != nil {
		return prayerserver.TechniqueEmbedding{}, fmt.Errorf("invalid page number: %v", err)
	}

	return prayerserver.TechniqueEmbedding{
		ID:      id,
		Title:   rd.Fields["title"],
		Content: content,
		Page:    page,
	}, nil
}
