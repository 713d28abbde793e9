package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveTechniqueEmbeddings(ctx context.Context, embeddings []prayerserver.TechniqueEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	objects := make([]*models.Object, len(embeddings))
	for i, embedding := range embeddings {
		if len(embedding.Vector) != prayerserver.VectorDim {
			return fmt.Errorf("technique %d: expected vector of %d dimensions, got %d",
				embedding.ID, prayerserver.VectorDim, len(embedding.Vector))
		}
		objects[i] = &models.Object{
			Class: techniqueClassName,
			Properties: map[string]any{
				"technique_id": embedding.ID,
				"title":        embedding.Title,
				"content":      embedding.Content,
				"page":         embedding.Page,
			},
			Vector: models.C11yVector(embedding.Vector),
		}
	}

	if _, err := a.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx); err != nil {
		return err
	}

	a.logger.Sugar().With("count", len(objects)).Info("stored technique embeddings in weaviate")
	return nil
}

func (a *Adapter) CountTechniqueEmbeddings(ctx context.Context) (int, error) {
	return a.countObjects(ctx, techniqueClassName)
}

func (a *Adapter) SearchTechniques(ctx context.Context, vector prayerserver.Vector, limit int) ([]prayerserver.TechniqueEmbedding, error) {
	gql := a.client.GraphQL()
	nearVector := gql.NearVectorArgBuilder().WithVector([]float32(vector))

	graphqlResponse, err := gql.Get().
		WithNearVector(nearVector).
		WithClassName(techniqueClassName).
		WithFields(
			graphql.Field{Name: "technique_id"},
			graphql.Field{Name: "title"},
			graphql.Field{Name: "content"},
			graphql.Field{Name: "page"},
		).
		WithLimit(limit).
		Do(ctx)
	if err := combinedWeaviateError(graphqlResponse, err); err != nil {
		return nil, err
	}

	return decodeGetTechniqueResults(graphqlResponse)
}

func decodeGetTechniqueResults(graphqlResponse *models.GraphQLResponse) ([]prayerserver.TechniqueEmbedding, error) {
	data, ok := graphqlResponse.Data["Get"]
	if !ok {
		return nil, fmt.Errorf("get key not found in result")
	}
	get, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get key unexpected type")
	}
	slc, ok := get[techniqueClassName].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list of results", techniqueClassName)
	}

	var out []prayerserver.TechniqueEmbedding
	for _, s := range slc {
		smap, ok := s.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid element in list of techniques")
		}
		id, ok := smap["technique_id"].(float64)
		if !ok {
			return nil, fmt.Errorf("expected technique_id in technique")
		}
		title, ok := smap["title"].(string)
		if !ok {
			return nil, fmt.Errorf("expected title in technique")
		}
		content, ok := smap["content"].(string)
		if !ok {
			return nil, fmt.Errorf("expected content in technique")
		}
		page, ok := smap["page"].(float64)
		if !ok {
			return nil, fmt.Errorf("expected page in technique")
		}
		out = append(out, prayerserver.TechniqueEmbedding{
			ID:      int(id),
			Title:   title,
			Content: content,
			Page:    int(page),
		})
	}
	return out, nil
}
