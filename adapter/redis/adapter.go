package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/graceware/prayerserver"
)

type Adapter struct {
	client               *redis.Client
	logger               *zap.Logger
	verseIndexName       string
	verseIndexPrefix     string
	techniqueIndexName   string
	techniqueIndexPrefix string
	dialectVersion       int
	vectorDim            int
	vectorDistanceMetric string
}

type Option func(*Adapter)

const (
	defaultVerseIndexName       = "verse-idx"
	defaultVerseIndexPrefix     = "verse:"
	defaultTechniqueIndexName   = "technique-idx"
	defaultTechniqueIndexPrefix = "technique:"
	defaultDialectVersion       = 2
	defaultVectorDistanceMetric = "COSINE"
)

func New(ctx context.Context, client *redis.Client, options ...Option) (*Adapter, error) {
	a := &Adapter{
		client:               client,
		logger:               zap.NewNop(),
		verseIndexName:       defaultVerseIndexName,
		verseIndexPrefix:     defaultVerseIndexPrefix,
		techniqueIndexName:   defaultTechniqueIndexName,
		techniqueIndexPrefix: defaultTechniqueIndexPrefix,
		dialectVersion:       defaultDialectVersion,
		vectorDim:            prayerserver.VectorDim,
		vectorDistanceMetric: defaultVectorDistanceMetric,
	}

	for _, o := range options {
		o(a)
	}

	// Append vector dim to index names to allow multiple indexes with
	// different dimensions, e.g. all-MiniLM-L6-v2 maps sentences to a
	// 384 dimensional dense vector space.
	a.verseIndexName = fmt.Sprintf("%s_dim%d", a.verseIndexName, a.vectorDim)
	a.techniqueIndexName = fmt.Sprintf("%s_dim%d", a.techniqueIndexName, a.vectorDim)

	a.logger.Sugar().With(
		"verse_index", a.verseIndexName,
		"technique_index", a.techniqueIndexName,
		"dialect_version", a.dialectVersion,
		"vector_dim", a.vectorDim,
		"vector_distance_metric", a.vectorDistanceMetric,
	).Info("init redis adapter")

	return a, a.init(ctx)
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func WithVerseIndexName(indexName string) Option {
	return func(a *Adapter) {
		a.verseIndexName = indexName
	}
}

func WithTechniqueIndexName(indexName string) Option {
	return func(a *Adapter) {
		a.techniqueIndexName = indexName
	}
}

func WithDialectVersion(version int) Option {
	return func(a *Adapter) {
		a.dialectVersion = version
	}
}

func WithVectorDim(dim int) Option {
	return func(a *Adapter) {
		a.vectorDim = dim
	}
}

func WithVectorDistanceMetric(metric string) Option {
	return func(a *Adapter) {
		a.vectorDistanceMetric = metric
	}
}

const adapterName = "redis"

func (a *Adapter) Name() string {
	return adapterName
}

func (a *Adapter) init(ctx context.Context) error {
	indexes, err := a.client.FT_List(ctx).Result()
	if err != nil {
		return err
	}
	existing := make(map[string]struct{}, len(indexes))
	for _, existingIndex := range indexes {
		existing[existingIndex] = struct{}{}
	}

	if _, ok := existing[a.verseIndexName]; !ok {
		if err := a.createVerseIndex(ctx); err != nil {
			return err
		}
	}
	if _, ok := existing[a.techniqueIndexName]; !ok {
		if err := a.createTechniqueIndex(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (a *Adapter) createVerseIndex(ctx context.Context) error {
	_, err := a.client.FTCreate(ctx,
		a.verseIndexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{a.verseIndexPrefix},
		},
		&redis.FieldSchema{
			FieldName: "text",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "reference",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "book_name",
			FieldType: redis.SearchFieldTypeTag,
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Dim:            a.vectorDim,
					DistanceMetric: a.vectorDistanceMetric, // "COSINE", "IP", "L2"
					Type:           "FLOAT32",
				},
			},
		},
	).Result()
	if err != nil {
		return fmt.Errorf("error creating redis verse index: %v", err)
	}
	a.logger.Sugar().With("index", a.verseIndexName).Info("created redis index")
	return nil
}

func (a *Adapter) createTechniqueIndex(ctx context.Context) error {
	_, err := a.client.FTCreate(ctx,
		a.techniqueIndexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{a.techniqueIndexPrefix},
		},
		&redis.FieldSchema{
			FieldName: "title",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "content",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Dim:            a.vectorDim,
					DistanceMetric: a.vectorDistanceMetric,
					Type:           "FLOAT32",
				},
			},
		},
	).Result()
	if err != nil {
		return fmt.Errorf("error creating redis technique index: %v", err)
	}
	a.logger.Sugar().With("index", a.techniqueIndexName).Info("created redis index")
	return nil
}

func (a *Adapter) countIndexed(ctx context.Context, indexName string) (int, error) {
	info, err := a.client.FTInfo(ctx, indexName).Result()
	if err != nil {
		return 0, err
	}
	return info.NumDocs, nil
}

// helper function to convert []float32 to []byte
func floatsToBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)

	for i, f := range fs {
		u := math.Float32bits(f)
		binary.NativeEndian.PutUint32(buf[i*4:], u)
	}

	return buf
}
