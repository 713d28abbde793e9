package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"
)

type Adapter struct {
	client *weaviate.Client
	logger *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(ctx context.Context, client *weaviate.Client, options ...Option) (*Adapter, error) {
	a := &Adapter{
		client: client,
		logger: zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a, a.init(ctx)
}

func (a *Adapter) Name() string {
	return "weaviate"
}

const (
	verseClassName     = "VerseEmbedding"
	techniqueClassName = "TechniqueEmbedding"
)

func (a *Adapter) init(ctx context.Context) error {
	// Create classes (collections) in weaviate if they don't exist yet.
	// Vectors are computed on our side, hence no vectorizer.
	classes := []*models.Class{
		{
			Class:      verseClassName,
			Vectorizer: "none",
			Properties: []*models.Property{
				{Name: "verse_id", DataType: []string{"text"}},
				{Name: "text", DataType: []string{"text"}},
				{Name: "reference", DataType: []string{"text"}},
				{Name: "book_name", DataType: []string{"text"}},
				{Name: "chapter", DataType: []string{"int"}},
				{Name: "verse", DataType: []string{"int"}},
			},
		},
		{
			Class:      techniqueClassName,
			Vectorizer: "none",
			Properties: []*models.Property{
				{Name: "technique_id", DataType: []string{"int"}},
				{Name: "title", DataType: []string{"text"}},
				{Name: "content", DataType: []string{"text"}},
				{Name: "page", DataType: []string{"int"}},
			},
		},
	}

	for _, cls := range classes {
		exists, err := a.client.Schema().ClassExistenceChecker().WithClassName(cls.Class).Do(ctx)
		if err != nil {
			return fmt.Errorf("weaviate error: %w", err)
		}
		if exists {
			continue
		}
		if err := a.client.Schema().ClassCreator().WithClass(cls).Do(ctx); err != nil {
			return fmt.Errorf("weaviate error: %w", err)
		}
	}

	return nil
}

func (a *Adapter) countObjects(ctx context.Context, className string) (int, error) {
	graphqlResponse, err := a.client.GraphQL().Aggregate().
		WithClassName(className).
		WithFields(graphql.Field{
			Name:   "meta",
			Fields: []graphql.Field{{Name: "count"}},
		}).
		Do(ctx)
	if err := combinedWeaviateError(graphqlResponse, err); err != nil {
		return 0, err
	}

	return decodeAggregateCount(graphqlResponse, className)
}

func decodeAggregateCount(graphqlResponse *models.GraphQLResponse, className string) (int, error) {
	data, ok := graphqlResponse.Data["Aggregate"]
	if !ok {
		return 0, fmt.Errorf("aggregate key not found in result")
	}
	agg, ok := data.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("aggregate key unexpected type")
	}
	slc, ok := agg[className].([]any)
	if !ok || len(slc) == 0 {
		return 0, fmt.Errorf("%s is not a list of aggregate results", className)
	}
	smap, ok := slc[0].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("invalid element in list of aggregate results")
	}
	meta, ok := smap["meta"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("expected meta in aggregate result")
	}
	count, ok := meta["count"].(float64)
	if !ok {
		return 0, fmt.Errorf("expected count in aggregate result")
	}

	return int(count), nil
}

// combinedWeaviateError generates an error if err is non-nil or result has
// errors, and returns an error (or nil if there's no error). It's useful for
// the results of the Weaviate GraphQL API's "Do" calls.
func combinedWeaviateError(graphqlResponse *models.GraphQLResponse, err error) error {
	if err != nil {
		return err
	}
	if len(graphqlResponse.Errors) != 0 {
		var ss []string
		for _, e := range graphqlResponse.Errors {
			ss = append(ss, e.Message)
		}
		return fmt.Errorf("weaviate error: %v", ss)
	}
	return nil
}
