package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveVerseEmbeddings(ctx context.Context, embeddings []prayerserver.VerseEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	// Convert the embeddings into types used by the Weaviate client library.
	objects := make([]*models.Object, len(embeddings))
	for i, embedding := range embeddings {
		if len(embedding.Vector) != prayerserver.VectorDim {
			return fmt.Errorf("verse %s: expected vector of %d dimensions, got %d",
				embedding.ID, prayerserver.VectorDim, len(embedding.Vector))
		}
		objects[i] = &models.Object{
			Class: verseClassName,
			Properties: map[string]any{
				"verse_id":  embedding.ID,
				"text":      embedding.Text,
				"reference": embedding.Reference,
				"book_name": embedding.BookName,
				"chapter":   embedding.Chapter,
				"verse":     embedding.Verse,
			},
			Vector: models.C11yVector(embedding.Vector),
		}
	}

	if _, err := a.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx); err != nil {
		return err
	}

	a.logger.Sugar().With("count", len(objects)).Info("stored verse embeddings in weaviate")
	return nil
}

func (a *Adapter) CountVerseEmbeddings(ctx context.Context) (int, error) {
	return a.countObjects(ctx, verseClassName)
}

func (a *Adapter) SearchVerses(ctx context.Context, vector prayerserver.Vector, limit int) ([]prayerserver.VerseEmbedding, error) {
	gql := a.client.GraphQL()
	nearVector := gql.NearVectorArgBuilder().WithVector([]float32(vector))

	graphqlResponse, err := gql.Get().
		WithNearVector(nearVector).
		WithClassName(verseClassName).
		WithFields(
			graphql.Field{Name: "verse_id"},
			graphql.Field{Name: "text"},
			graphql.Field{Name: "reference"},
			graphql.Field{Name: "book_name"},
			graphql.Field{Name: "chapter"},
			graphql.Field{Name: "verse"},
		).
		WithLimit(limit).
		Do(ctx)
	if err := combinedWeaviateError(graphqlResponse, err); err != nil {
		return nil, err
	}

	return decodeGetVerseResults(graphqlResponse)
}

// decodeGetVerseResults decodes the result returned by Weaviate's GraphQL Get
// query; these are returned as a nested map[string]any (just like JSON
// unmarshaled into a map[string]any).
func decodeGetVerseResults(graphqlResponse *models.GraphQLResponse) ([]prayerserver.VerseEmbedding, error) {
	data, ok := graphqlResponse.Data["Get"]
	if !ok {
		return nil, fmt.Errorf("get key not found in result")
	}
	get, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get key unexpected type")
	}
	slc, ok := get[verseClassName].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list of results", verseClassName)
	}

	var out []prayerserver.VerseEmbedding
	for _, s := range slc {
		smap, ok := s.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid element in list of verses")
		}
		id, ok := smap["verse_id"].(string)
		if !ok {
			return nil, fmt.Errorf("expected verse_id in verse")
		}
		text, ok := smap["text"].(string)
		if !ok {
			return nil, fmt.Errorf("expected text in verse")
		}
		reference, ok := smap["reference"].(string)
		if !ok {
			return nil, fmt.Errorf("expected reference in verse")
		}
		bookName, ok := smap["book_name"].(string)
		if !ok {
			return nil, fmt.Errorf("expected book_name in verse")
		}
		chapter, ok := smap["chapter"].(float64)
		if !ok {
			return nil, fmt.Errorf("expected chapter in verse")
		}
		verse, ok := smap["verse"].(float64)
		if !ok {
			return nil, fmt.Errorf("expected verse in verse")
		}
		out = append(out, prayerserver.VerseEmbedding{
			ID:        id,
			Text:      text,
			Reference: reference,
			BookName:  bookName,
			Chapter:   int(chapter),
			Verse:     int(verse),
		})
	}
	return out, nil
}
