package prayerserver

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNotReady = errors.New("not ready")
)

// VectorDim is fixed by the embedding model and must match the vector
// store's declared schema.
const VectorDim = 384

type clock func() time.Time

type prayerServer struct {
	embedder   Embedder
	classifier SentimentClassifier
	retriever  Retriever
	generative GenerativeModel
	extractor  Extractor
	store      Store
	cache      EmbeddingCache
	logger     *zap.Logger
	now        clock

	bibleDataPath     string
	therapyManualPath string
	embedBatchSize    int
	embedBatchPause   time.Duration
}

type Option func(*prayerServer)

func WithLogger(logger *zap.Logger) Option {
	return func(ps *prayerServer) {
		ps.logger = logger
	}
}

// WithEmbeddingCache enables the local embedding cache. Without it every
// setup run recomputes all vectors.
func WithEmbeddingCache(cache EmbeddingCache) Option {
	return func(ps *prayerServer) {
		ps.cache = cache
	}
}

func WithBibleDataPath(path string) Option {
	return func(ps *prayerServer) {
		ps.bibleDataPath = path
	}
}

func WithTherapyManualPath(path string) Option {
	return func(ps *prayerServer) {
		ps.therapyManualPath = path
	}
}

func WithEmbedBatchSize(size int) Option {
	return func(ps *prayerServer) {
		ps.embedBatchSize = size
	}
}

func WithEmbedBatchPause(pause time.Duration) Option {
	return func(ps *prayerServer) {
		ps.embedBatchPause = pause
	}
}

const (
	defaultBibleDataPath     = "data/bible_data.json"
	defaultTherapyManualPath = "data/therapy_manual.pdf"
)

func New(embedder Embedder, classifier SentimentClassifier, retriever Retriever, gm GenerativeModel, extractor Extractor, storeAdapter Store, options ...Option) *prayerServer {
	ps := &prayerServer{
		embedder:          embedder,
		classifier:        classifier,
		retriever:         retriever,
		generative:        gm,
		extractor:         extractor,
		store:             storeAdapter,
		logger:            zap.NewNop(),
		now:               func() time.Time { return time.Now().UTC() },
		bibleDataPath:     defaultBibleDataPath,
		therapyManualPath: defaultTherapyManualPath,
		embedBatchSize:    defaultEmbedBatchSize,
		embedBatchPause:   defaultEmbedBatchPause,
	}

	for _, o := range options {
		o(ps)
	}

	return ps
}
